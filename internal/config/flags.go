package config

import (
	"flag"
	"strings"
)

// Flags are registered on a dedicated set so subcommands can parse their own
// arguments.
var flags = flag.NewFlagSet("terragen", flag.ContinueOnError)

var (
	flagConfig     = flags.String("config", "", "Path to config file")
	flagDebug      = flags.Bool("debug", false, "Enable debug logging")
	flagPreset     = flags.String("preset", "", "Terrain preset (grasslands, desert, mountainous, lake, canyons)")
	flagSeed       = flags.Int64("seed", -1, "Noise seed (negative keeps the configured seed)")
	flagRandomSeed = flags.Bool("random-seed", false, "Draw a fresh seed for every run")
	flagWidth      = flags.Int("width", 0, "Tile width in texels")
	flagHeight     = flags.Int("height", 0, "Tile height in texels")
	flagScale      = flags.Float64("scale", 0, "Noise scale override")
	flagWaterLevel = flags.Float64("water-level", -1, "Normalized water level override")
	flagNoise      = flags.String("noise", "", "Noise kind (perlin, simplex)")
	flagPainting   = flags.String("painting", "", "Splat painting (smooth, hard)")
	flagSlope      = flags.String("slope-source", "", "Slope source for hard painting (grid, mesh)")
	flagOut        = flags.String("out", "", "Output directory")
	flagFormats    = flags.String("formats", "", "Comma-separated export formats (png,bmp,gat,gnd,obj)")
	flagWorkers    = flags.Int("workers", 0, "Row workers")
)

// ParseFlags parses command-line flags. Call this early in each subcommand.
func ParseFlags(args []string) error {
	return flags.Parse(args)
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flags.Args()
}

// PrintDefaults writes flag usage to the flag set's output.
func PrintDefaults() {
	flags.PrintDefaults()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPreset != "" {
		cfg.Generation.Preset = *flagPreset
	}
	if *flagSeed >= 0 {
		cfg.Generation.Seed = *flagSeed
		cfg.Generation.RandomSeed = false
	}
	if *flagRandomSeed {
		cfg.Generation.RandomSeed = true
	}
	if *flagWidth > 0 {
		cfg.Tile.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Tile.Height = *flagHeight
	}
	if *flagScale > 0 {
		scale := *flagScale
		cfg.Generation.Scale = &scale
	}
	if *flagWaterLevel >= 0 {
		level := *flagWaterLevel
		cfg.Generation.WaterLevel = &level
	}
	if *flagNoise != "" {
		cfg.Generation.Noise = *flagNoise
	}
	if *flagPainting != "" {
		cfg.Generation.Painting = *flagPainting
	}
	if *flagSlope != "" {
		cfg.Generation.SlopeSource = *flagSlope
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagFormats != "" {
		cfg.Output.Formats = splitList(*flagFormats)
	}
	if *flagWorkers > 0 {
		cfg.Generation.Workers = *flagWorkers
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
