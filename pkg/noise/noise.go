// Package noise provides seeded 2D coherent noise fields sampled in [0,1].
package noise

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a noise kind name is not recognized.
var ErrUnknownKind = errors.New("unknown noise kind")

// Field is a deterministic, continuous 2D noise function.
// Sample returns a value in [0,1] for any point on the plane.
type Field interface {
	Sample(x, z float64) float64
}

// Kind selects the noise algorithm backing a Field.
type Kind int

// Supported noise kinds.
const (
	KindPerlin Kind = iota
	KindSimplex
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPerlin:
		return "perlin"
	case KindSimplex:
		return "simplex"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseKind converts a config name to a Kind. Empty selects Perlin.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "perlin":
		return KindPerlin, nil
	case "simplex", "opensimplex":
		return KindSimplex, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// New creates a field of the given kind. Octaves only applies to Perlin;
// values below 1 are treated as 1.
func New(kind Kind, seed int64, octaves int) (Field, error) {
	switch kind {
	case KindPerlin:
		return NewPerlin(seed, octaves), nil
	case KindSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
