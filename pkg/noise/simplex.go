package noise

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Simplex samples OpenSimplex noise, already normalized to [0,1).
type Simplex struct {
	gen  opensimplex.Noise
	seed int64
}

// NewSimplex creates an OpenSimplex field for seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{
		gen:  opensimplex.NewNormalized(seed),
		seed: seed,
	}
}

// Sample returns the noise value at (x, z).
func (s *Simplex) Sample(x, z float64) float64 {
	return clamp01(s.gen.Eval2(x, z))
}

// Seed returns the seed the field was built from.
func (s *Simplex) Seed() int64 { return s.seed }
