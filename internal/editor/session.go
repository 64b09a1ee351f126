// Package editor holds an interactive generation session: the selected
// preset, its parameters and the run history a property panel would drive.
package editor

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/terragen/pkg/terrain"
)

// MaxRandomSeed bounds drawn seeds to [0, MaxRandomSeed).
const MaxRandomSeed = 100000

// SeedSource draws a seed for runs with random seeds enabled.
type SeedSource func() int64

// RandomSeeds draws from r, or from the global generator when r is nil.
func RandomSeeds(r *rand.Rand) SeedSource {
	if r == nil {
		return func() int64 { return rand.Int64N(MaxRandomSeed) }
	}
	return func() int64 { return r.Int64N(MaxRandomSeed) }
}

// RunInfo describes one generation run.
type RunInfo struct {
	ID            string
	Preset        terrain.Preset
	PresetChanged bool
	Dimensions    terrain.Dimensions
	Params        terrain.Parameters
	Layers        []string
	Options       terrain.Options
	Started       time.Time
}

// RunObserver is implemented by sinks that want the run description before
// the grids arrive.
type RunObserver interface {
	BeginRun(info RunInfo)
}

// Run is a finished generation.
type Run struct {
	Info    RunInfo
	Result  *terrain.Result
	Elapsed time.Duration
}

// Config seeds a new session.
type Config struct {
	Catalog    terrain.Catalog // nil uses the built-in defaults
	Preset     terrain.Preset
	Width      int
	Height     int
	Seed       int64
	RandomSeed bool
	Seeds      SeedSource // nil draws from the global generator

	WaterLayer string
	CliffLayer string
	// BaseLayer overrides the catalog's base layer name for a preset.
	BaseLayer func(p terrain.Preset, fallback string) string

	Options terrain.Options
	Log     *zap.Logger
}

// Session tracks the preset and parameters between runs.
type Session struct {
	cfg Config

	preset     terrain.Preset
	lastRun    terrain.Preset
	hasRun     bool
	dims       terrain.Dimensions
	params     terrain.Parameters
	layers     terrain.LayerBinding
	randomSeed bool
	seeds      SeedSource
	log        *zap.Logger
}

// New creates a session with cfg.Preset selected.
func New(cfg Config) (*Session, error) {
	if cfg.Catalog == nil {
		cfg.Catalog = terrain.DefaultCatalog()
	}
	if cfg.Seeds == nil {
		cfg.Seeds = RandomSeeds(nil)
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	s := &Session{
		cfg:        cfg,
		dims:       terrain.Dimensions{Width: cfg.Width, Height: cfg.Height},
		params:     terrain.Parameters{Seed: cfg.Seed},
		randomSeed: cfg.RandomSeed,
		seeds:      cfg.Seeds,
		log:        cfg.Log,
	}
	if err := s.SelectPreset(cfg.Preset); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectPreset switches to p and resets depth, parameters and layers to p's
// defaults. The seed is kept. Selecting the current preset again also
// resets, discarding any edits.
func (s *Session) SelectPreset(p terrain.Preset) error {
	d, err := s.cfg.Catalog.Reset(p)
	if err != nil {
		return err
	}
	layers, err := s.cfg.Catalog.Layers(p, s.cfg.WaterLayer, s.cfg.CliffLayer)
	if err != nil {
		return err
	}
	if s.cfg.BaseLayer != nil {
		layers.Channels[layers.Base] = s.cfg.BaseLayer(p, layers.Channels[layers.Base])
	}

	d.Apply(&s.dims, &s.params)
	s.layers = layers
	s.log.Debug("preset reset",
		zap.Stringer("from", s.preset),
		zap.Stringer("to", p),
		zap.Float64("scale", s.params.Scale),
		zap.Float64("depth", s.dims.Depth),
		zap.Float64("water_level", s.params.WaterLevel))
	s.preset = p
	return nil
}

// Preset returns the selected preset.
func (s *Session) Preset() terrain.Preset { return s.preset }

// Dimensions returns the tile dimensions including depth.
func (s *Session) Dimensions() terrain.Dimensions { return s.dims }

// Params returns the current parameters.
func (s *Session) Params() terrain.Parameters { return s.params }

// Layers returns the current layer binding.
func (s *Session) Layers() terrain.LayerBinding { return s.layers }

// Edit applies fn to the current dimensions and parameters, as a property
// panel edit would. Edits last until the next SelectPreset.
func (s *Session) Edit(fn func(dims *terrain.Dimensions, params *terrain.Parameters)) {
	fn(&s.dims, &s.params)
}

// SetRandomSeed toggles drawing a fresh seed for every run.
func (s *Session) SetRandomSeed(on bool) { s.randomSeed = on }

// Request builds the generation request for the current state.
func (s *Session) Request() terrain.Request {
	return terrain.Request{
		Preset:     s.preset,
		Dimensions: s.dims,
		Params:     s.params,
		Layers:     s.layers,
		Options:    s.cfg.Options,
	}
}

// Generate runs the pipeline and delivers the result to sink. With random
// seeds enabled a new seed is drawn first and kept in the session.
func (s *Session) Generate(sink terrain.Sink) (*Run, error) {
	if s.randomSeed {
		s.params.Seed = s.seeds()
	}

	info := RunInfo{
		ID:            uuid.NewString(),
		Preset:        s.preset,
		PresetChanged: !s.hasRun || s.lastRun != s.preset,
		Dimensions:    s.dims,
		Params:        s.params,
		Layers:        append([]string(nil), s.layers.Channels...),
		Options:       s.cfg.Options,
		Started:       time.Now(),
	}
	log := s.log.With(zap.String("run", info.ID), zap.Stringer("preset", info.Preset))

	res, err := terrain.Generate(s.Request())
	if err != nil {
		log.Warn("generation rejected", zap.Error(err))
		return nil, err
	}

	if obs, ok := sink.(RunObserver); ok {
		obs.BeginRun(info)
	}
	if err := res.Deliver(sink); err != nil {
		log.Error("sink failed", zap.Error(err))
		return nil, err
	}

	s.lastRun = s.preset
	s.hasRun = true

	run := &Run{Info: info, Result: res, Elapsed: time.Since(info.Started)}
	log.Info("terrain generated",
		zap.Int64("seed", info.Params.Seed),
		zap.Int("width", info.Dimensions.Width),
		zap.Int("height", info.Dimensions.Height),
		zap.Float64("depth", info.Dimensions.Depth),
		zap.Bool("preset_changed", info.PresetChanged),
		zap.Duration("elapsed", run.Elapsed))
	return run, nil
}
