package terrain

import (
	tmath "github.com/Faultbox/terragen/pkg/math"
)

// SlopeSampler reports the surface slope angle in degrees at normalized
// tile coordinates u, v in [0,1].
type SlopeSampler interface {
	SlopeAt(u, v float64) float64
}

// SurfaceFunc builds the slope sampler used by hard-partition painting from
// the finalized grid.
type SurfaceFunc func(hf *Heightfield, depth float64) SlopeSampler

// GridSurface derives slopes from central differences of the depth-scaled
// grid, with texels one world unit apart.
type GridSurface struct {
	hf    *Heightfield
	depth float64
}

// NewGridSurface wraps hf. It keeps a reference, not a copy.
func NewGridSurface(hf *Heightfield, depth float64) SlopeSampler {
	return &GridSurface{hf: hf, depth: depth}
}

// SlopeAt returns the slope angle at the texel nearest to (u, v).
func (s *GridSurface) SlopeAt(u, v float64) float64 {
	x := clampIndex(int(u*float64(s.hf.Width)), s.hf.Width)
	z := clampIndex(int(v*float64(s.hf.Height)), s.hf.Height)
	return tmath.SlopeDegrees(s.Normal(x, z))
}

// Normal returns the surface normal at texel (x, z).
func (s *GridSurface) Normal(x, z int) tmath.Vec3 {
	dx := s.gradient(x, z, 1, 0)
	dz := s.gradient(x, z, 0, 1)
	return tmath.Vec3{X: -dx, Y: 1, Z: -dz}.Normalize()
}

// gradient is the world-space height change per world unit along (sx, sz),
// falling back to one-sided differences on the border.
func (s *GridSurface) gradient(x, z, sx, sz int) float64 {
	x0, z0 := x-sx, z-sz
	x1, z1 := x+sx, z+sz
	if !s.hf.InBounds(x0, z0) {
		x0, z0 = x, z
	}
	if !s.hf.InBounds(x1, z1) {
		x1, z1 = x, z
	}
	span := float64((x1 - x0) + (z1 - z0))
	if span == 0 {
		return 0
	}
	return (s.hf.At(x1, z1) - s.hf.At(x0, z0)) * s.depth / span
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
