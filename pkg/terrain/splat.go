package terrain

import (
	"fmt"

	tmath "github.com/Faultbox/terragen/pkg/math"
)

// Painting constants.
const (
	ShoreBlendBand = 0.01
	CliffMinAngle  = 35.0
	CliffMaxAngle  = 90.0
)

// PaintPolicy selects how blend weights are derived from heights.
type PaintPolicy int

// Painting policies.
const (
	// PaintSmooth fades between base and water over a narrow band around the
	// water level.
	PaintSmooth PaintPolicy = iota
	// PaintHard assigns each texel to exactly one of water, cliff or base.
	PaintHard
)

// String returns the config name of the policy.
func (p PaintPolicy) String() string {
	switch p {
	case PaintSmooth:
		return "smooth"
	case PaintHard:
		return "hard"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParsePaintPolicy converts a config name. Empty selects PaintSmooth.
func ParsePaintPolicy(name string) (PaintPolicy, error) {
	switch name {
	case "", "smooth", "blend":
		return PaintSmooth, nil
	case "hard", "partition":
		return PaintHard, nil
	default:
		return 0, fmt.Errorf("%w: paint policy %q", ErrInvalidParameters, name)
	}
}

// PaintOptions configures Paint.
type PaintOptions struct {
	Policy     PaintPolicy
	WaterLevel float64
	Width      int          // Output texels along X; <= 0 uses the grid width
	Height     int          // Output texels along Z; <= 0 uses the grid height
	Surface    SlopeSampler // PaintHard only; nil uses a GridSurface
	Depth      float64      // Used to build the default GridSurface
	Workers    int
}

// Paint converts a finalized grid into blend weights over layers.
// Output texels map to source texels by nearest index.
func Paint(hf *Heightfield, opts PaintOptions, layers LayerBinding) (*BlendWeights, error) {
	if err := layers.Validate(); err != nil {
		return nil, err
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = hf.Width
	}
	if height <= 0 {
		height = hf.Height
	}

	surface := opts.Surface
	if opts.Policy == PaintHard && surface == nil {
		surface = NewGridSurface(hf, opts.Depth)
	}

	weights := NewBlendWeights(width, height, layers.Len())
	forEachRow(height, opts.Workers, func(z int) {
		sz := z * hf.Height / height
		for x := range width {
			sx := x * hf.Width / width
			h := hf.At(sx, sz)
			texel := weights.Texel(x, z)

			switch opts.Policy {
			case PaintHard:
				u := float64(x) / float64(width)
				v := float64(z) / float64(height)
				texel[hardChannel(h, opts.WaterLevel, surface, u, v, layers)] = 1
			default:
				blend := ShoreBlend(h, opts.WaterLevel)
				texel[layers.Base] = blend
				texel[layers.Water] = 1 - blend
			}
		}
	})

	return weights, nil
}

// ShoreBlend returns the base layer weight for height h: 0 at or below
// waterLevel-ShoreBlendBand, 1 at or above waterLevel+ShoreBlendBand.
func ShoreBlend(h, waterLevel float64) float64 {
	lower := waterLevel - ShoreBlendBand
	return tmath.Clamp01((h - lower) / (2 * ShoreBlendBand))
}

func hardChannel(h, waterLevel float64, surface SlopeSampler, u, v float64, layers LayerBinding) int {
	if h <= waterLevel {
		return layers.Water
	}
	if layers.HasCliff() {
		angle := surface.SlopeAt(u, v)
		if angle >= CliffMinAngle && angle <= CliffMaxAngle {
			return layers.Cliff
		}
	}
	return layers.Base
}
