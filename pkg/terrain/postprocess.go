package terrain

import (
	"fmt"

	tmath "github.com/Faultbox/terragen/pkg/math"
)

// Water carving constants.
const (
	WaterThreshold   = 0.1
	WaterDepthFactor = 0.05
)

// Smoothing defaults.
const (
	DefaultSteepnessThreshold = 0.5
	ShorelineBand             = 0.02
	shorelinePull             = 0.5
)

// SmoothingPolicy selects how Smooth treats interior texels.
type SmoothingPolicy int

// Smoothing policies.
const (
	// SmoothMean replaces every interior texel with its 3×3 mean.
	SmoothMean SmoothingPolicy = iota
	// SmoothGated only averages texels whose forward-difference steepness is
	// below the threshold, so cliffs stay sharp.
	SmoothGated
)

// String returns the config name of the policy.
func (p SmoothingPolicy) String() string {
	switch p {
	case SmoothMean:
		return "mean"
	case SmoothGated:
		return "gated"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseSmoothingPolicy converts a config name. Empty selects SmoothMean.
func ParseSmoothingPolicy(name string) (SmoothingPolicy, error) {
	switch name {
	case "", "mean":
		return SmoothMean, nil
	case "gated":
		return SmoothGated, nil
	default:
		return 0, fmt.Errorf("%w: smoothing policy %q", ErrInvalidParameters, name)
	}
}

// SmoothOptions configures Smooth.
type SmoothOptions struct {
	Policy             SmoothingPolicy
	SteepnessThreshold float64 // SmoothGated only; <= 0 selects the default
	ShorelineBias      bool    // Pull texels near WaterLevel halfway onto it
	WaterLevel         float64
	Workers            int
}

// CarveWater sinks every texel below WaterThreshold to a flat basin floor.
// It mutates hf in place.
func CarveWater(hf *Heightfield) {
	for i, v := range hf.Values {
		if v < WaterThreshold {
			hf.Values[i] = v * WaterDepthFactor
		}
	}
}

// CarveLakes depresses every texel within radius of a center with a linear
// falloff. Overlapping basins multiply. It mutates hf in place.
func CarveLakes(hf *Heightfield, centers []tmath.Vec2, radius, workers int) {
	if len(centers) == 0 || radius <= 0 {
		return
	}
	r := float64(radius)

	forEachRow(hf.Height, workers, func(z int) {
		for x := range hf.Width {
			p := tmath.Vec2{X: float64(x), Z: float64(z)}
			h := hf.At(x, z)
			for _, c := range centers {
				d := p.Distance(c)
				if d < r {
					factor := (r - d) / r
					h *= 1 - factor*LakeFalloff
				}
			}
			hf.Set(x, z, h)
		}
	})
}

// Smooth returns a smoothed copy of hf. The one texel border is copied
// unchanged and hf itself is never written.
func Smooth(hf *Heightfield, opts SmoothOptions) *Heightfield {
	out := hf.Clone()
	if hf.Width < 3 || hf.Height < 3 {
		return out
	}

	threshold := opts.SteepnessThreshold
	if threshold <= 0 {
		threshold = DefaultSteepnessThreshold
	}

	forEachRow(hf.Height-2, opts.Workers, func(row int) {
		z := row + 1
		for x := 1; x < hf.Width-1; x++ {
			current := hf.At(x, z)
			smoothed := current

			if opts.Policy != SmoothGated || Steepness(hf, x, z) < threshold {
				smoothed = boxMean(hf, x, z)
			}

			if opts.ShorelineBias && current <= opts.WaterLevel+ShorelineBand && current >= opts.WaterLevel-ShorelineBand {
				smoothed = tmath.Lerp(smoothed, opts.WaterLevel, shorelinePull)
			}

			out.Set(x, z, smoothed)
		}
	})

	return out
}

// Steepness is the sum of absolute forward differences at (x, z). It is
// measured in normalized height per texel, so its scale depends on the grid
// resolution. (x+1, z+1) must be in range.
func Steepness(hf *Heightfield, x, z int) float64 {
	h := hf.At(x, z)
	return abs(h-hf.At(x+1, z)) + abs(h-hf.At(x, z+1))
}

// boxMean averages the 3×3 neighborhood as offsets from the center texel,
// which keeps an already uniform neighborhood bit-exact.
func boxMean(hf *Heightfield, x, z int) float64 {
	center := hf.At(x, z)
	var offset float64
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			offset += hf.At(x+dx, z+dz) - center
		}
	}
	return center + offset/9
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
