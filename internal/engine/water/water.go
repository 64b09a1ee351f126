// Package water provides water plane geometry for generated tiles.
package water

import "github.com/Faultbox/terragen/pkg/terrain"

// SurfaceOffset keeps the plane just below the carved shoreline so the
// shore blend shows through.
const SurfaceOffset = 0.1

// DefaultPadding is the default padding to extend the plane beyond the tile.
const DefaultPadding = 0.0

// Plane holds water plane geometry ready for upload.
type Plane struct {
	Vertices []float32 // Flat array: x,y,z for each vertex (4 vertices)
	Level    float32   // Water Y level in world coordinates
}

// BuildPlane creates water plane vertices covering the specified bounds.
func BuildPlane(minX, maxX, minZ, maxZ, level float32) *Plane {
	// Order: BL, BR, TR, TL for triangle fan rendering
	vertices := []float32{
		minX, level, minZ,
		maxX, level, minZ,
		maxX, level, maxZ,
		minX, level, maxZ,
	}

	return &Plane{
		Vertices: vertices,
		Level:    level,
	}
}

// BuildPlaneWithPadding creates water plane vertices with padding around the bounds.
func BuildPlaneWithPadding(minX, maxX, minZ, maxZ, level, padding float32) *Plane {
	return BuildPlane(
		minX-padding,
		maxX+padding,
		minZ-padding,
		maxZ+padding,
		level,
	)
}

// Level returns the world height of the water surface for a tile.
func Level(waterLevel, depth float64) float32 {
	return float32(waterLevel*depth - SurfaceOffset)
}

// ForTile covers a tile of the given dimensions, with grid points tileSize
// apart, at the tile's water level.
func ForTile(dims terrain.Dimensions, waterLevel, tileSize float64, padding float32) *Plane {
	maxX := float32(float64(max(dims.Width-1, 0)) * tileSize)
	maxZ := float32(float64(max(dims.Height-1, 0)) * tileSize)
	return BuildPlaneWithPadding(0, maxX, 0, maxZ, Level(waterLevel, dims.Depth), padding)
}

// Coverage returns the fraction of texels at or below waterLevel.
func Coverage(hf *terrain.Heightfield, waterLevel float64) float64 {
	if len(hf.Values) == 0 {
		return 0
	}
	n := 0
	for _, v := range hf.Values {
		if v <= waterLevel {
			n++
		}
	}
	return float64(n) / float64(len(hf.Values))
}
