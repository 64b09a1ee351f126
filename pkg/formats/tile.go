package formats

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terragen/pkg/terrain"
)

// ErrTileTooSmall is returned when a grid has no cells to export.
var ErrTileTooSmall = errors.New("tile needs at least 2x2 texels")

// DefaultZoom is the GND world size of one cell.
const DefaultZoom = 10.0

// shoreCutoff is the water weight below which a shore texel counts as dry.
const shoreCutoff = 1e-6

// Cells between grid points: corner order bottom-left, bottom-right,
// top-left, top-right, with bottom at the higher row.
func cellCorners(x, z int) [4][2]int {
	return [4][2]int{{x, z + 1}, {x + 1, z + 1}, {x, z}, {x + 1, z}}
}

func altitudes(hf *terrain.Heightfield, depth float64, x, z int) [4]float32 {
	var out [4]float32
	for i, c := range cellCorners(x, z) {
		// RO altitudes grow downward
		out[i] = float32(-hf.At(c[0], c[1]) * depth)
	}
	return out
}

func checkTile(hf *terrain.Heightfield, weights *terrain.BlendWeights, layers terrain.LayerBinding) error {
	if hf.Width < 2 || hf.Height < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrTileTooSmall, hf.Width, hf.Height)
	}
	if weights.Layers != layers.Len() {
		return fmt.Errorf("%w: %d weight channels for %d layers", terrain.ErrInvalidLayers, weights.Layers, layers.Len())
	}
	return layers.Validate()
}

// splatTexel maps the top-left corner of cell (x, z) into splat space.
func splatTexel(hf *terrain.Heightfield, weights *terrain.BlendWeights, x, z int) (int, int) {
	return x * weights.Width / hf.Width, z * weights.Height / hf.Height
}

// CellType classifies a splat texel: the water channel dominating fully is
// water, any partial water is shore, a dominant cliff is snipeable and
// everything else walks.
func CellType(weights *terrain.BlendWeights, layers terrain.LayerBinding, x, z int) GATCellType {
	water := weights.At(x, z, layers.Water)
	dominant := weights.Dominant(x, z)
	switch {
	case dominant == layers.Water && water >= 1-shoreCutoff:
		return GATWater
	case water > shoreCutoff:
		return GATWalkableWater
	case layers.HasCliff() && dominant == layers.Cliff:
		return GATSnipeable
	default:
		return GATWalkable
	}
}

// GATFromTile builds a walkability table with one cell between each 2x2
// block of grid points.
func GATFromTile(hf *terrain.Heightfield, weights *terrain.BlendWeights, layers terrain.LayerBinding, depth float64) (*GAT, error) {
	if err := checkTile(hf, weights, layers); err != nil {
		return nil, err
	}

	w, h := hf.Width-1, hf.Height-1
	gat := &GAT{
		Version: GATVersion{Major: gatWriteMajor, Minor: gatWriteMinor},
		Width:   uint32(w),
		Height:  uint32(h),
		Cells:   make([]GATCell, w*h),
	}
	for z := range h {
		for x := range w {
			sx, sz := splatTexel(hf, weights, x, z)
			gat.Cells[z*w+x] = GATCell{
				Heights: altitudes(hf, depth, x, z),
				Type:    CellType(weights, layers, sx, sz),
			}
		}
	}
	return gat, nil
}

// GNDFromTile builds a ground mesh textured by the dominant splat channel.
// Textures are the layer names in channel order; each channel gets one
// shared top surface.
func GNDFromTile(hf *terrain.Heightfield, weights *terrain.BlendWeights, layers terrain.LayerBinding, depth float64, zoom float32) (*GND, error) {
	if err := checkTile(hf, weights, layers); err != nil {
		return nil, err
	}
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	w, h := hf.Width-1, hf.Height-1
	gnd := &GND{
		Version:  GNDVersion{Major: gndWriteMajor, Minor: gndWriteMinor},
		Width:    uint32(w),
		Height:   uint32(h),
		Zoom:     zoom,
		Textures: append([]string(nil), layers.Channels...),
		Tiles:    make([]GNDTile, w*h),
	}
	for i := range layers.Channels {
		gnd.Surfaces = append(gnd.Surfaces, GNDSurface{
			U:          [4]float32{0, 1, 0, 1},
			V:          [4]float32{0, 0, 1, 1},
			TextureID:  int16(i),
			LightmapID: -1,
			Color:      [4]uint8{255, 255, 255, 255},
		})
	}

	for z := range h {
		for x := range w {
			sx, sz := splatTexel(hf, weights, x, z)
			gnd.Tiles[z*w+x] = GNDTile{
				Altitude:     altitudes(hf, depth, x, z),
				TopSurface:   int32(weights.Dominant(sx, sz)),
				FrontSurface: NoSurface,
				RightSurface: NoSurface,
			}
		}
	}
	return gnd, nil
}
