// terragen generates procedural terrain tiles and inspects the maps it
// writes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/catalog"
	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/editor"
	"github.com/Faultbox/terragen/internal/export"
	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/pkg/formats"
	"github.com/Faultbox/terragen/pkg/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "presets":
		cmdPresets(args)
	case "inspect":
		cmdInspect(args)
	case "fetch-presets":
		cmdFetchPresets(args)
	case "init-config":
		cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terragen - procedural terrain tile generator

Usage:
  terragen <command> [options]

Commands:
  generate [flags]                   Generate a tile and export it
  presets [flags]                    List preset defaults
  inspect <file.gat|file.gnd>        Show map file information
  fetch-presets <source> [dir]       Download a preset catalog
  init-config [flags] [path]         Write the effective config to a file

Examples:
  terragen generate -preset lake -seed 42 -formats png,gat,gnd
  terragen generate -preset canyons -random-seed -out ./tiles
  terragen presets -config terragen.yaml
  terragen inspect out/terrain.gat
  terragen fetch-presets https://example.com/presets.yaml
  terragen init-config -preset mountainous -painting hard -slope-source mesh`)
	fmt.Println()
	fmt.Println("Flags:")
	config.PrintDefaults()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadConfig parses shared flags, loads the config and starts logging.
func loadConfig(args []string) *config.Config {
	if err := config.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func resolveCatalog(ctx context.Context, cfg *config.Config) terrain.Catalog {
	cat, err := catalog.Resolve(ctx, cfg.Presets.Source, config.ConfigDir())
	if err != nil {
		logger.Error("failed to resolve preset catalog", zap.String("source", cfg.Presets.Source), zap.Error(err))
		fail(err)
	}
	return cat
}

func cmdGenerate(args []string) {
	cfg := loadConfig(args)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	preset, err := cfg.Preset()
	if err != nil {
		fail(err)
	}
	opts, err := cfg.Options()
	if err != nil {
		fail(err)
	}
	formatList, err := export.ParseFormats(cfg.Output.Formats)
	if err != nil {
		fail(err)
	}

	dims := cfg.Dimensions()
	session, err := editor.New(editor.Config{
		Catalog:    resolveCatalog(ctx, cfg),
		Preset:     preset,
		Width:      dims.Width,
		Height:     dims.Height,
		Seed:       cfg.Generation.Seed,
		RandomSeed: cfg.Generation.RandomSeed,
		WaterLayer: cfg.Layers.Water,
		CliffLayer: cfg.Layers.Cliff,
		BaseLayer:  cfg.BaseLayer,
		Options:    opts,
		Log:        logger.Log,
	})
	if err != nil {
		fail(err)
	}
	session.Edit(cfg.ApplyOverrides)

	sink := export.NewFileSink(cfg.Output.Dir, formatList)
	sink.Zoom = cfg.Output.Zoom
	sink.WaterPadding = cfg.Output.WaterPadding

	run, err := session.Generate(sink)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		fail(err)
	}

	fmt.Printf("Run:     %s\n", run.Info.ID)
	fmt.Printf("Preset:  %s\n", run.Info.Preset)
	fmt.Printf("Seed:    %d\n", run.Info.Params.Seed)
	fmt.Printf("Size:    %dx%d (depth %g)\n", run.Info.Dimensions.Width, run.Info.Dimensions.Height, run.Info.Dimensions.Depth)
	fmt.Printf("Elapsed: %s\n", run.Elapsed)
	for _, path := range sink.Written() {
		fmt.Printf("  %s\n", path)
	}
}

func cmdPresets(args []string) {
	cfg := loadConfig(args)
	defer logger.Sync()

	cat := resolveCatalog(context.Background(), cfg)

	fmt.Printf("%-12s %8s %6s %6s %6s %7s  %s\n", "PRESET", "SCALE", "DEPTH", "WATER", "LAKES", "RADIUS", "BASE")
	for _, p := range terrain.Presets {
		d, err := cat.Reset(p)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%-12s %8g %6g %6g %6d %7d  %s\n",
			p, d.Scale, d.Depth, d.WaterLevel, d.Lakes, d.LakeRadius, cfg.BaseLayer(p, d.BaseLayer))
	}
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terragen inspect <file.gat|file.gnd>")
		os.Exit(1)
	}

	path := args[0]
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gat":
		inspectGAT(path)
	case ".gnd":
		inspectGND(path)
	default:
		fail(fmt.Errorf("unsupported file type: %s", path))
	}
}

func inspectGAT(path string) {
	gat, err := formats.ParseGATFile(path)
	if err != nil {
		fail(err)
	}

	lo, hi := gat.GetAltitudeRange()
	fmt.Printf("File:     %s\n", path)
	fmt.Printf("Version:  %s\n", gat.Version)
	fmt.Printf("Size:     %dx%d\n", gat.Width, gat.Height)
	fmt.Printf("Altitude: %.2f to %.2f\n", lo, hi)
	fmt.Println()
	fmt.Println("Cells by type:")

	counts := gat.CountByType()
	types := make([]formats.GATCellType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Printf("  %-16s %d\n", t, counts[t])
	}
}

func inspectGND(path string) {
	gnd, err := formats.ParseGNDFile(path)
	if err != nil {
		fail(err)
	}

	lo, hi := gnd.GetAltitudeRange()
	fmt.Printf("File:      %s\n", path)
	fmt.Printf("Version:   %s\n", gnd.Version)
	fmt.Printf("Size:      %dx%d\n", gnd.Width, gnd.Height)
	fmt.Printf("Zoom:      %g\n", gnd.Zoom)
	fmt.Printf("Lightmaps: %d\n", gnd.LightmapCount)
	fmt.Printf("Surfaces:  %d\n", len(gnd.Surfaces))
	fmt.Printf("Altitude:  %.2f to %.2f\n", lo, hi)
	fmt.Println()
	fmt.Println("Surfaces by texture:")

	counts := gnd.CountSurfacesByTexture()
	for i, name := range gnd.Textures {
		fmt.Printf("  %-16s %d\n", name, counts[i])
	}
}

func cmdFetchPresets(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terragen fetch-presets <source> [dir]")
		os.Exit(1)
	}

	dir := config.ConfigDir()
	if len(args) > 1 {
		dir = args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path, err := catalog.Fetch(ctx, args[0], dir)
	if err != nil {
		fail(err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Saved %d presets to %s\n", len(cat), path)
	fmt.Printf("Set presets.source: %s in %s to use it\n", path, config.FileName)
}

func cmdInitConfig(args []string) {
	cfg := loadConfig(args)
	defer logger.Sync()

	var err error
	path := filepath.Join(config.ConfigDir(), config.FileName)
	if rest := config.Args(); len(rest) > 0 {
		path = rest[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", path)
}
