package terrain

import (
	"fmt"

	"github.com/Faultbox/terragen/pkg/noise"
)

// Options selects noise, smoothing and painting behavior. The zero value is
// Perlin noise, mean smoothing without shoreline bias, smooth painting at
// grid resolution on one worker.
type Options struct {
	Noise   noise.Kind
	Octaves int

	Smoothing          SmoothingPolicy
	SteepnessThreshold float64
	ShorelineBias      bool

	Painting    PaintPolicy
	SplatWidth  int
	SplatHeight int
	Surface     SurfaceFunc // Hard painting slope source; nil uses NewGridSurface

	Workers int
}

// Request is everything one generation run needs.
type Request struct {
	Preset     Preset
	Dimensions Dimensions
	Params     Parameters
	Layers     LayerBinding
	Options    Options
}

// Validate fails fast on inputs outside the generation contract.
func (r Request) Validate() error {
	if !r.Preset.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPreset, int(r.Preset))
	}
	if err := r.Dimensions.Validate(); err != nil {
		return err
	}
	if err := r.Params.Validate(r.Preset, r.Dimensions); err != nil {
		return err
	}
	if r.Options.SplatWidth < 0 || r.Options.SplatHeight < 0 {
		return fmt.Errorf("%w: splat resolution %dx%d",
			ErrInvalidDimensions, r.Options.SplatWidth, r.Options.SplatHeight)
	}
	return r.Layers.Validate()
}

// Result holds the outputs of one run.
type Result struct {
	Preset     Preset
	Dimensions Dimensions
	Params     Parameters
	Layers     LayerBinding
	Heights    *Heightfield
	Weights    *BlendWeights
}

// Sink receives finished tiles. Implementations own whatever they build from
// the grids; the generator never keeps a reference after Replace returns.
type Sink interface {
	Replace(heights *Heightfield, weights *BlendWeights, layers LayerBinding) error
}

// Deliver hands the result to sink.
func (r *Result) Deliver(sink Sink) error {
	return sink.Replace(r.Heights, r.Weights, r.Layers)
}

// Generate runs the full pipeline: synthesis, water carving for presets that
// use it, smoothing and painting. Identical requests produce identical grids.
func Generate(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	opts := req.Options
	field, err := noise.New(opts.Noise, req.Params.Seed, opts.Octaves)
	if err != nil {
		return nil, err
	}

	raw, err := BuildRaw(req.Preset, req.Dimensions, req.Params, field, opts.Workers)
	if err != nil {
		return nil, err
	}

	if req.Preset.CarvesWater() {
		CarveWater(raw)
	}

	heights := Smooth(raw, SmoothOptions{
		Policy:             opts.Smoothing,
		SteepnessThreshold: opts.SteepnessThreshold,
		ShorelineBias:      opts.ShorelineBias,
		WaterLevel:         req.Params.WaterLevel,
		Workers:            opts.Workers,
	})

	paint := PaintOptions{
		Policy:     opts.Painting,
		WaterLevel: req.Params.WaterLevel,
		Width:      opts.SplatWidth,
		Height:     opts.SplatHeight,
		Depth:      req.Dimensions.Depth,
		Workers:    opts.Workers,
	}
	if opts.Painting == PaintHard && opts.Surface != nil {
		paint.Surface = opts.Surface(heights, req.Dimensions.Depth)
	}

	weights, err := Paint(heights, paint, req.Layers)
	if err != nil {
		return nil, err
	}

	return &Result{
		Preset:     req.Preset,
		Dimensions: req.Dimensions,
		Params:     req.Params,
		Layers:     req.Layers,
		Heights:    heights,
		Weights:    weights,
	}, nil
}
