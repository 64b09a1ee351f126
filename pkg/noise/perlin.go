package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Perlin gradient noise parameters. Alpha is the per-octave amplitude divisor,
// Beta the per-octave frequency multiplier.
const (
	PerlinAlpha = 2.0
	PerlinBeta  = 2.0
)

// PerlinPeriod is the lattice period of the permutation table. With an
// integer Beta every octave repeats on it.
const PerlinPeriod = perlin.B

// Perlin samples classic gradient noise from aquilax/go-perlin.
type Perlin struct {
	gen       *perlin.Perlin
	seed      int64
	octaves   int32
	amplitude float64
}

// NewPerlin creates a Perlin field. The permutation table is derived from seed,
// so two fields with the same seed and octave count sample identically.
func NewPerlin(seed int64, octaves int) *Perlin {
	if octaves < 1 {
		octaves = 1
	}

	// A unit-gradient 2D octave peaks at sqrt(1/2); octave i is weighted 1/Alpha^i.
	amplitude, weight := 0.0, 1.0
	for range octaves {
		amplitude += weight
		weight /= PerlinAlpha
	}

	return &Perlin{
		gen:       perlin.NewPerlin(PerlinAlpha, PerlinBeta, int32(octaves), seed),
		seed:      seed,
		octaves:   int32(octaves),
		amplitude: amplitude * math.Sqrt2 / 2,
	}
}

// Sample returns the noise value at (x, z) remapped from the generator's
// amplitude to [0,1]. Coordinates are wrapped into one lattice period, which
// leaves the field unchanged and keeps the generator's integer lattice lookup
// in range for any finite input.
func (p *Perlin) Sample(x, z float64) float64 {
	v := p.gen.Noise2D(wrapPeriod(x), wrapPeriod(z))
	return clamp01((v/p.amplitude + 1) * 0.5)
}

// Seed returns the seed the permutation table was built from.
func (p *Perlin) Seed() int64 { return p.seed }

// Octaves returns the number of summed octaves.
func (p *Perlin) Octaves() int { return int(p.octaves) }

func wrapPeriod(v float64) float64 {
	v = math.Mod(v, PerlinPeriod)
	if v < 0 {
		v += PerlinPeriod
	}
	return v
}
