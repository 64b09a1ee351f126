// Package export writes generated tiles to disk in image, map and mesh
// formats.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terragen/internal/editor"
	"github.com/Faultbox/terragen/internal/engine/water"
	"github.com/Faultbox/terragen/pkg/formats"
	"github.com/Faultbox/terragen/pkg/terrain"
)

// ErrUnknownFormat is returned for unsupported export format names.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export artifact type.
type Format string

// Supported formats.
const (
	FormatPNG Format = "png" // 16-bit grayscale heightmap
	FormatBMP Format = "bmp" // splat control map
	FormatGAT Format = "gat"
	FormatGND Format = "gnd"
	FormatOBJ Format = "obj" // terrain mesh plus water plane
)

// Formats lists every supported format.
var Formats = []Format{FormatPNG, FormatBMP, FormatGAT, FormatGND, FormatOBJ}

// MetadataFile is written next to every export.
const MetadataFile = "tile.yaml"

// ParseFormats validates format names. Duplicates are dropped.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimSpace(name)))
		valid := false
		for _, known := range Formats {
			if f == known {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Metadata is the tile.yaml document.
type Metadata struct {
	RunID      string    `yaml:"run_id,omitempty"`
	Generated  time.Time `yaml:"generated"`
	Preset     string    `yaml:"preset"`
	Seed       int64     `yaml:"seed"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Depth      float64   `yaml:"depth"`
	Scale      float64   `yaml:"scale"`
	WaterLevel float64   `yaml:"water_level"`
	Lakes      int       `yaml:"lakes,omitempty"`
	LakeRadius int       `yaml:"lake_radius,omitempty"`
	Noise      string    `yaml:"noise"`
	Smoothing  string    `yaml:"smoothing"`
	Painting   string    `yaml:"painting"`
	Layers     []string  `yaml:"layers"`
	SplatSize  [2]int    `yaml:"splat_size,flow"`
	MinHeight  float64   `yaml:"min_height"`
	MaxHeight  float64   `yaml:"max_height"`
	WaterCover float64   `yaml:"water_coverage"`
	Files      []string  `yaml:"files"`
}

// FileSink writes every replacement to Dir. It implements terrain.Sink and
// editor.RunObserver; without a run description it exports with unit depth
// and zero water level.
type FileSink struct {
	Dir          string
	Name         string // base file name, "terrain" when empty
	Formats      []Format
	Zoom         float32 // GND cell size
	WaterPadding float32

	info    editor.RunInfo
	hasInfo bool
	written []string
}

// NewFileSink creates a sink writing formats into dir.
func NewFileSink(dir string, formats []Format) *FileSink {
	return &FileSink{Dir: dir, Formats: formats}
}

// BeginRun records the run the next Replace belongs to.
func (s *FileSink) BeginRun(info editor.RunInfo) {
	s.info = info
	s.hasInfo = true
}

// Written returns the paths produced by the last Replace.
func (s *FileSink) Written() []string {
	return s.written
}

func (s *FileSink) name() string {
	if s.Name == "" {
		return "terrain"
	}
	return s.Name
}

func (s *FileSink) depth() float64 {
	if s.hasInfo && s.info.Dimensions.Depth > 0 {
		return s.info.Dimensions.Depth
	}
	return 1
}

// Replace writes the configured formats and the metadata file.
func (s *FileSink) Replace(heights *terrain.Heightfield, weights *terrain.BlendWeights, layers terrain.LayerBinding) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	s.written = s.written[:0]

	depth := s.depth()
	waterLevel := s.info.Params.WaterLevel
	base := filepath.Join(s.Dir, s.name())

	for _, f := range s.Formats {
		var path string
		var err error
		switch f {
		case FormatPNG:
			path = base + ".png"
			err = WriteHeightmapPNG(path, heights)
		case FormatBMP:
			path = base + "_splat.bmp"
			err = WriteSplatBMP(path, weights)
		case FormatGAT:
			path = base + ".gat"
			var gat *formats.GAT
			if gat, err = formats.GATFromTile(heights, weights, layers, depth); err == nil {
				err = formats.WriteGATFile(path, gat)
			}
		case FormatGND:
			path = base + ".gnd"
			var gnd *formats.GND
			if gnd, err = formats.GNDFromTile(heights, weights, layers, depth, s.Zoom); err == nil {
				err = formats.WriteGNDFile(path, gnd)
			}
		case FormatOBJ:
			path = base + ".obj"
			err = WriteOBJ(path, heights, weights, depth, waterLevel, s.WaterPadding)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
		if err != nil {
			return fmt.Errorf("exporting %s: %w", f, err)
		}
		s.written = append(s.written, path)
	}

	meta := s.metadata(heights, weights, layers, waterLevel)
	path := filepath.Join(s.Dir, MetadataFile)
	if err := WriteMetadata(path, meta); err != nil {
		return err
	}
	s.written = append(s.written, path)
	return nil
}

func (s *FileSink) metadata(heights *terrain.Heightfield, weights *terrain.BlendWeights, layers terrain.LayerBinding, waterLevel float64) Metadata {
	lo, hi := heights.Range()
	meta := Metadata{
		Generated:  time.Now().UTC(),
		Width:      heights.Width,
		Height:     heights.Height,
		Depth:      s.depth(),
		WaterLevel: waterLevel,
		Layers:     append([]string(nil), layers.Channels...),
		SplatSize:  [2]int{weights.Width, weights.Height},
		MinHeight:  lo,
		MaxHeight:  hi,
		WaterCover: water.Coverage(heights, waterLevel),
	}
	for _, p := range s.written {
		meta.Files = append(meta.Files, filepath.Base(p))
	}
	if s.hasInfo {
		i := s.info
		meta.RunID = i.ID
		meta.Generated = i.Started.UTC()
		meta.Preset = i.Preset.String()
		meta.Seed = i.Params.Seed
		meta.Scale = i.Params.Scale
		meta.Noise = i.Options.Noise.String()
		meta.Smoothing = i.Options.Smoothing.String()
		meta.Painting = i.Options.Painting.String()
		if i.Preset == terrain.Lake {
			meta.Lakes = i.Params.Lakes
			meta.LakeRadius = i.Params.LakeRadius
		}
	}
	return meta
}

// WriteMetadata encodes meta as YAML.
func WriteMetadata(path string, meta Metadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// ReadMetadata decodes a tile.yaml file.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decoding metadata: %w", err)
	}
	return &meta, nil
}
