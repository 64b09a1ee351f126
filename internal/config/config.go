// Package config handles terragen configuration loading and management.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Faultbox/terragen/internal/engine/mesh"
	"github.com/Faultbox/terragen/pkg/noise"
	"github.com/Faultbox/terragen/pkg/terrain"
)

// Config holds all generator settings.
type Config struct {
	Tile       TileConfig       `yaml:"tile"`
	Generation GenerationConfig `yaml:"generation"`
	Layers     LayersConfig     `yaml:"layers"`
	Presets    PresetsConfig    `yaml:"presets"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TileConfig holds grid and splatmap resolution.
type TileConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	SplatWidth  int `yaml:"splat_width"`  // 0 = same as width
	SplatHeight int `yaml:"splat_height"` // 0 = same as height
}

// GenerationConfig selects the preset and pipeline behavior. Pointer fields
// override the preset defaults when set.
type GenerationConfig struct {
	Preset     string `yaml:"preset"`
	Seed       int64  `yaml:"seed"`
	RandomSeed bool   `yaml:"random_seed"`

	Scale      *float64 `yaml:"scale,omitempty"`
	Depth      *float64 `yaml:"depth,omitempty"`
	WaterLevel *float64 `yaml:"water_level,omitempty"`
	Lakes      *int     `yaml:"lakes,omitempty"`
	LakeRadius *int     `yaml:"lake_radius,omitempty"`

	Noise              string  `yaml:"noise"`
	Octaves            int     `yaml:"octaves"`
	Smoothing          string  `yaml:"smoothing"`
	SteepnessThreshold float64 `yaml:"steepness_threshold"`
	ShorelineBias      bool    `yaml:"shoreline_bias"`
	Painting           string  `yaml:"painting"`
	SlopeSource        string  `yaml:"slope_source"` // grid or mesh, hard painting only
	Workers            int     `yaml:"workers"`
}

// LayersConfig names the splat channels.
type LayersConfig struct {
	Water string            `yaml:"water"`
	Cliff string            `yaml:"cliff"` // empty disables the cliff channel
	Base  map[string]string `yaml:"base,omitempty"`
}

// PresetsConfig points at an optional preset catalog.
type PresetsConfig struct {
	Source string `yaml:"source"` // local path or go-getter URL
}

// OutputConfig controls exported artifacts.
type OutputConfig struct {
	Dir          string   `yaml:"dir"`
	Formats      []string `yaml:"formats"`
	Zoom         float32  `yaml:"zoom"`
	WaterPadding float32  `yaml:"water_padding"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tile: TileConfig{
			Width:  512,
			Height: 512,
		},
		Generation: GenerationConfig{
			Preset:             terrain.Grasslands.String(),
			Noise:              noise.KindPerlin.String(),
			Octaves:            1,
			Smoothing:          terrain.SmoothMean.String(),
			SteepnessThreshold: terrain.DefaultSteepnessThreshold,
			Painting:           terrain.PaintSmooth.String(),
			SlopeSource:        SlopeGrid,
			Workers:            runtime.GOMAXPROCS(0),
		},
		Layers: LayersConfig{
			Water: terrain.WaterLayer,
			Cliff: terrain.CliffLayer,
		},
		Output: OutputConfig{
			Dir:     "out",
			Formats: []string{"png", "bmp"},
			Zoom:    10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Preset parses the configured preset name.
func (c *Config) Preset() (terrain.Preset, error) {
	return terrain.ParsePreset(c.Generation.Preset)
}

// Dimensions returns the tile size. Depth comes from the preset.
func (c *Config) Dimensions() terrain.Dimensions {
	return terrain.Dimensions{Width: c.Tile.Width, Height: c.Tile.Height}
}

// ApplyOverrides writes the explicitly configured parameters over the preset
// defaults already in dims and params.
func (c *Config) ApplyOverrides(dims *terrain.Dimensions, params *terrain.Parameters) {
	g := c.Generation
	if g.Scale != nil {
		params.Scale = *g.Scale
	}
	if g.Depth != nil {
		dims.Depth = *g.Depth
	}
	if g.WaterLevel != nil {
		params.WaterLevel = *g.WaterLevel
	}
	if g.Lakes != nil {
		params.Lakes = *g.Lakes
	}
	if g.LakeRadius != nil {
		params.LakeRadius = *g.LakeRadius
	}
}

// Options builds pipeline options from the generation and tile sections.
func (c *Config) Options() (terrain.Options, error) {
	g := c.Generation
	kind, err := noise.ParseKind(g.Noise)
	if err != nil {
		return terrain.Options{}, fmt.Errorf("generation.noise: %w", err)
	}
	smoothing, err := terrain.ParseSmoothingPolicy(g.Smoothing)
	if err != nil {
		return terrain.Options{}, fmt.Errorf("generation.smoothing: %w", err)
	}
	painting, err := terrain.ParsePaintPolicy(g.Painting)
	if err != nil {
		return terrain.Options{}, fmt.Errorf("generation.painting: %w", err)
	}
	surface, err := slopeSurface(g.SlopeSource)
	if err != nil {
		return terrain.Options{}, fmt.Errorf("generation.slope_source: %w", err)
	}

	return terrain.Options{
		Noise:              kind,
		Octaves:            g.Octaves,
		Smoothing:          smoothing,
		SteepnessThreshold: g.SteepnessThreshold,
		ShorelineBias:      g.ShorelineBias,
		Painting:           painting,
		SplatWidth:         c.Tile.SplatWidth,
		SplatHeight:        c.Tile.SplatHeight,
		Surface:            surface,
		Workers:            g.Workers,
	}, nil
}

// Slope sources for hard painting.
const (
	SlopeGrid = "grid" // central differences on the height grid
	SlopeMesh = "mesh" // smoothed normals of the exported terrain mesh
)

// slopeSurface maps a slope source name to a surface builder. Grid returns
// nil, which the pipeline treats as terrain.NewGridSurface.
func slopeSurface(name string) (terrain.SurfaceFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SlopeGrid:
		return nil, nil
	case SlopeMesh:
		return mesh.NewSurface, nil
	default:
		return nil, fmt.Errorf("%w: unknown slope source %q", terrain.ErrInvalidParameters, name)
	}
}

// BaseLayer returns the configured base layer name for p, or fallback.
func (c *Config) BaseLayer(p terrain.Preset, fallback string) string {
	if name := c.Layers.Base[p.String()]; name != "" {
		return name
	}
	return fallback
}
