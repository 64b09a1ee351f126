// Package mesh turns generated heightfields into renderable triangle meshes
// and answers height and slope queries against them.
package mesh

// Vertex represents a terrain mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Color    [4]float32 // RGB carry splat channels 0..2
}

// Mesh holds the complete terrain mesh data ready for upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	// Grid dimensions the mesh was built from.
	Columns int
	Rows    int

	normals [][3]float32 // smoothed normal per grid point, row-major
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}
