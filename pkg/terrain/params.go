package terrain

import (
	"fmt"
	"math"
)

// MaxWaterLevel is the highest accepted normalized water level.
const MaxWaterLevel = 0.5

// SeedPeriod bounds the noise coordinate offset taken from the seed. It is a
// multiple of the Perlin lattice period so offsets land on whole cells.
const SeedPeriod = 1 << 16

// Parameters controls one generation run.
type Parameters struct {
	Scale      float64 // Noise frequency control
	Seed       int64   // Reproducibility key, also offsets noise coordinates (see Offset)
	WaterLevel float64 // Normalized submerged/exposed threshold in [0, MaxWaterLevel]
	Lakes      int     // Lake preset only
	LakeRadius int     // Lake preset only, in texels
}

// Offset returns the noise coordinate offset for the seed, in
// [0, SeedPeriod). The full seed still keys the noise permutation, so seeds
// sharing an offset sample different fields.
func (p Parameters) Offset() float64 {
	return float64(uint64(p.Seed) % SeedPeriod)
}

// Validate checks the parameters against the tile they will be used for.
func (p Parameters) Validate(preset Preset, dims Dimensions) error {
	if !(p.Scale > 0) || isInf(p.Scale) {
		return fmt.Errorf("%w: scale %v must be positive and finite", ErrInvalidParameters, p.Scale)
	}
	if !(p.WaterLevel >= 0 && p.WaterLevel <= MaxWaterLevel) {
		return fmt.Errorf("%w: water level %v outside [0, %v]", ErrInvalidParameters, p.WaterLevel, MaxWaterLevel)
	}
	if preset != Lake || p.Lakes == 0 {
		return nil
	}
	if p.Lakes < 0 {
		return fmt.Errorf("%w: %d lakes", ErrInvalidParameters, p.Lakes)
	}
	if p.LakeRadius <= 0 {
		return fmt.Errorf("%w: radius %d must be positive", ErrInvalidLakeRadius, p.LakeRadius)
	}
	if 2*p.LakeRadius >= dims.Width || 2*p.LakeRadius >= dims.Height {
		return fmt.Errorf("%w: radius %d does not fit a %dx%d tile",
			ErrInvalidLakeRadius, p.LakeRadius, dims.Width, dims.Height)
	}
	return nil
}

func isInf(v float64) bool { return math.IsInf(v, 0) }
