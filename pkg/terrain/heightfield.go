// Package terrain synthesizes heightfields and splatmaps for a single terrain tile.
package terrain

import "fmt"

// Dimensions describes the grid resolution and vertical scale of one tile.
type Dimensions struct {
	Width  int     // Texels along X
	Height int     // Texels along Z
	Depth  float64 // World units per normalized height unit
}

// Validate checks that the dimensions describe a non-empty tile.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, d.Width, d.Height)
	}
	if !(d.Depth > 0) || isInf(d.Depth) {
		return fmt.Errorf("%w: depth %v", ErrInvalidDimensions, d.Depth)
	}
	return nil
}

// Heightfield is a Width×Height grid of normalized elevations.
// Values are stored row by row: index = z*Width + x.
type Heightfield struct {
	Width  int
	Height int
	Values []float64
}

// NewHeightfield allocates a zeroed grid.
func NewHeightfield(width, height int) *Heightfield {
	return &Heightfield{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the elevation at (x, z). Coordinates must be in range.
func (h *Heightfield) At(x, z int) float64 {
	return h.Values[z*h.Width+x]
}

// Set stores the elevation at (x, z).
func (h *Heightfield) Set(x, z int, v float64) {
	h.Values[z*h.Width+x] = v
}

// InBounds reports whether (x, z) addresses a texel.
func (h *Heightfield) InBounds(x, z int) bool {
	return x >= 0 && z >= 0 && x < h.Width && z < h.Height
}

// Clone returns a deep copy.
func (h *Heightfield) Clone() *Heightfield {
	c := &Heightfield{
		Width:  h.Width,
		Height: h.Height,
		Values: make([]float64, len(h.Values)),
	}
	copy(c.Values, h.Values)
	return c
}

// Range returns the minimum and maximum elevation in the grid.
func (h *Heightfield) Range() (min, max float64) {
	if len(h.Values) == 0 {
		return 0, 0
	}
	min, max = h.Values[0], h.Values[0]
	for _, v := range h.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// BlendWeights is a Width×Height×Layers grid of texture blend weights.
// Index = (z*Width + x)*Layers + layer.
type BlendWeights struct {
	Width  int
	Height int
	Layers int
	Data   []float64
}

// NewBlendWeights allocates a zeroed weight grid.
func NewBlendWeights(width, height, layers int) *BlendWeights {
	return &BlendWeights{
		Width:  width,
		Height: height,
		Layers: layers,
		Data:   make([]float64, width*height*layers),
	}
}

// At returns the weight of layer at texel (x, z).
func (b *BlendWeights) At(x, z, layer int) float64 {
	return b.Data[(z*b.Width+x)*b.Layers+layer]
}

// Set stores the weight of layer at texel (x, z).
func (b *BlendWeights) Set(x, z, layer int, v float64) {
	b.Data[(z*b.Width+x)*b.Layers+layer] = v
}

// Texel returns the weights of every layer at (x, z). The slice aliases the grid.
func (b *BlendWeights) Texel(x, z int) []float64 {
	i := (z*b.Width + x) * b.Layers
	return b.Data[i : i+b.Layers : i+b.Layers]
}

// Dominant returns the index of the heaviest layer at (x, z).
// Ties resolve to the lowest index.
func (b *BlendWeights) Dominant(x, z int) int {
	best := 0
	texel := b.Texel(x, z)
	for l := 1; l < len(texel); l++ {
		if texel[l] > texel[best] {
			best = l
		}
	}
	return best
}
