package mesh

import (
	"github.com/Faultbox/terragen/pkg/terrain"
	tmath "github.com/Faultbox/terragen/pkg/math"
)

// HeightAt returns the bilinearly interpolated world height at a world
// position. Positions outside the grid clamp to the nearest edge.
func HeightAt(hf *terrain.Heightfield, depth, tileSize, worldX, worldZ float64) float64 {
	if hf.Width == 0 || hf.Height == 0 {
		return 0
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	cellX, fracX := cell(worldX/tileSize, hf.Width)
	cellZ, fracZ := cell(worldZ/tileSize, hf.Height)

	x1 := min(cellX+1, hf.Width-1)
	z1 := min(cellZ+1, hf.Height-1)

	// Lerp along X on both Z edges, then along Z
	south := tmath.Lerp(hf.At(cellX, cellZ), hf.At(x1, cellZ), fracX)
	north := tmath.Lerp(hf.At(cellX, z1), hf.At(x1, z1), fracX)
	return tmath.Lerp(south, north, fracZ) * depth
}

// cell splits a grid coordinate into a clamped cell index and the fraction
// within it.
func cell(f float64, n int) (int, float64) {
	if n < 2 || f <= 0 {
		return 0, 0
	}
	if f >= float64(n-1) {
		return n - 2, 1
	}
	i := int(f)
	return i, tmath.Clamp01(f - float64(i))
}

// Surface samples slopes from the smoothed mesh normals, interpolated
// between grid points.
type Surface struct {
	mesh *Mesh
}

// NewSurface builds a unit-spaced mesh over hf and wraps it. It satisfies
// terrain.SurfaceFunc.
func NewSurface(hf *terrain.Heightfield, depth float64) terrain.SlopeSampler {
	return SurfaceOf(BuildMesh(hf, nil, depth, DefaultTileSize))
}

// SurfaceOf wraps an already built mesh.
func SurfaceOf(m *Mesh) *Surface {
	return &Surface{mesh: m}
}

// NormalAt returns the interpolated normal at normalized coordinates.
func (s *Surface) NormalAt(u, v float64) tmath.Vec3 {
	m := s.mesh
	cellX, fracX := cell(u*float64(m.Columns-1), m.Columns)
	cellZ, fracZ := cell(v*float64(m.Rows-1), m.Rows)

	south := m.GridNormal(cellX, cellZ).Scale(1 - fracX).Add(m.GridNormal(cellX+1, cellZ).Scale(fracX))
	north := m.GridNormal(cellX, cellZ+1).Scale(1 - fracX).Add(m.GridNormal(cellX+1, cellZ+1).Scale(fracX))
	return south.Scale(1 - fracZ).Add(north.Scale(fracZ)).Normalize()
}

// SlopeAt returns the slope angle in degrees at normalized coordinates.
func (s *Surface) SlopeAt(u, v float64) float64 {
	if s.mesh.Columns < 2 || s.mesh.Rows < 2 {
		return 0
	}
	return tmath.SlopeDegrees(s.NormalAt(u, v))
}
