package mesh

import (
	"github.com/Faultbox/terragen/pkg/terrain"
	tmath "github.com/Faultbox/terragen/pkg/math"
)

// DefaultTileSize is the world distance between adjacent grid points.
const DefaultTileSize = 1.0

// BuildMesh creates a quad-per-cell mesh from a heightfield. Heights are
// scaled by depth; weights, when non-nil, color the vertices.
func BuildMesh(hf *terrain.Heightfield, weights *terrain.BlendWeights, depth, tileSize float64) *Mesh {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	cells := max(hf.Width-1, 0) * max(hf.Height-1, 0)
	vertices := make([]Vertex, 0, cells*4)
	indices := make([]uint32, 0, cells*6)

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	point := func(x, z int) tmath.Vec3 {
		return tmath.Vec3{X: float64(x) * tileSize, Y: hf.At(x, z) * depth, Z: float64(z) * tileSize}
	}

	for z := 0; z < hf.Height-1; z++ {
		for x := 0; x < hf.Width-1; x++ {
			// Corners: [0]=BL, [1]=BR, [2]=TL, [3]=TR
			grid := [4][2]int{{x, z + 1}, {x + 1, z + 1}, {x, z}, {x + 1, z}}
			var corners [4]tmath.Vec3
			for i, g := range grid {
				corners[i] = point(g[0], g[1])
				updateBounds(&bounds, corners[i].Float32())
			}

			normal := corners[1].Sub(corners[0]).Cross(corners[2].Sub(corners[0])).Normalize().Float32()

			baseIdx := uint32(len(vertices))
			for i, g := range grid {
				vertices = append(vertices, Vertex{
					Position: corners[i].Float32(),
					Normal:   normal,
					TexCoord: texCoord(g[0], g[1], hf),
					Color:    splatColor(weights, hf, g[0], g[1]),
				})
			}

			// Two triangles per quad, diagonal from BL to TR
			indices = append(indices,
				baseIdx, baseIdx+1, baseIdx+2,
				baseIdx+2, baseIdx+1, baseIdx+3,
			)
		}
	}

	if len(vertices) == 0 {
		bounds = Bounds{}
	}

	SmoothNormals(vertices)

	m := &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
		Columns:  hf.Width,
		Rows:     hf.Height,
		normals:  make([][3]float32, hf.Width*hf.Height),
	}
	for i := range m.normals {
		m.normals[i] = tmath.Up.Float32()
	}
	for i := 0; i < len(vertices); i += 4 {
		cell := i / 4
		x, z := cell%(hf.Width-1), cell/(hf.Width-1)
		m.normals[(z+1)*hf.Width+x] = vertices[i].Normal
		m.normals[(z+1)*hf.Width+x+1] = vertices[i+1].Normal
		m.normals[z*hf.Width+x] = vertices[i+2].Normal
		m.normals[z*hf.Width+x+1] = vertices[i+3].Normal
	}
	return m
}

// GridNormal returns the smoothed normal at grid point (x, z), clamped to
// the grid.
func (m *Mesh) GridNormal(x, z int) tmath.Vec3 {
	if m.Columns == 0 || m.Rows == 0 {
		return tmath.Up
	}
	x = clampInt(x, 0, m.Columns-1)
	z = clampInt(z, 0, m.Rows-1)
	n := m.normals[z*m.Columns+x]
	return tmath.Vec3{X: float64(n[0]), Y: float64(n[1]), Z: float64(n[2])}
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func texCoord(x, z int, hf *terrain.Heightfield) [2]float32 {
	var u, v float32
	if hf.Width > 1 {
		u = float32(x) / float32(hf.Width-1)
	}
	if hf.Height > 1 {
		v = float32(z) / float32(hf.Height-1)
	}
	return [2]float32{u, v}
}

func splatColor(weights *terrain.BlendWeights, hf *terrain.Heightfield, x, z int) [4]float32 {
	color := [4]float32{1, 1, 1, 1}
	if weights == nil {
		return color
	}
	sx := x * weights.Width / hf.Width
	sz := z * weights.Height / hf.Height
	for c := range min(weights.Layers, 3) {
		color[c] = float32(weights.At(sx, sz, c))
	}
	for c := weights.Layers; c < 3; c++ {
		color[c] = 0
	}
	return color
}

// SmoothNormals averages normals at shared vertex positions so adjacent
// quads shade continuously.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, group := range posMap {
		if len(group) < 2 {
			continue
		}

		var sum tmath.Vec3
		for _, idx := range group {
			n := vertices[idx].Normal
			sum = sum.Add(tmath.Vec3{X: float64(n[0]), Y: float64(n[1]), Z: float64(n[2])})
		}

		avg := sum.Normalize().Float32()
		for _, idx := range group {
			vertices[idx].Normal = avg
		}
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
