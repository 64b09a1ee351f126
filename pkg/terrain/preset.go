package terrain

import (
	"fmt"
	"strings"
)

// Preset selects a height synthesis algorithm and its default parameters.
type Preset int

// Terrain presets.
const (
	Grasslands Preset = iota
	Desert
	Mountainous
	Lake
	Canyons
)

// Presets lists every preset in declaration order.
var Presets = []Preset{Grasslands, Desert, Mountainous, Lake, Canyons}

// String returns the config name of the preset.
func (p Preset) String() string {
	switch p {
	case Grasslands:
		return "grasslands"
	case Desert:
		return "desert"
	case Mountainous:
		return "mountainous"
	case Lake:
		return "lake"
	case Canyons:
		return "canyons"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Valid reports whether p is one of the declared presets.
func (p Preset) Valid() bool {
	return p >= Grasslands && p <= Canyons
}

// CarvesWater reports whether the generic water-carving pass runs for p.
// Lake and Canyons shape their own water bodies and Desert has none.
func (p Preset) CarvesWater() bool {
	return p == Grasslands || p == Mountainous
}

// ParsePreset converts a config name to a Preset. Matching is case-insensitive
// and accepts "mountains" and "canyon" as aliases.
func ParsePreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grasslands", "grassland":
		return Grasslands, nil
	case "desert":
		return Desert, nil
	case "mountainous", "mountains", "mountain":
		return Mountainous, nil
	case "lake", "lakes":
		return Lake, nil
	case "canyons", "canyon":
		return Canyons, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Preset) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPreset, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preset) UnmarshalText(text []byte) error {
	v, err := ParsePreset(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Default channel names for layers shared by every preset.
const (
	WaterLayer = "water"
	CliffLayer = "cliff"
)

// LayerBinding is the ordered list of texture channels painted for a tile.
// Base, Water and Cliff index into Channels; Cliff is -1 when unbound.
type LayerBinding struct {
	Channels []string
	Base     int
	Water    int
	Cliff    int
}

// NewLayerBinding binds base and water channels, plus cliff when non-empty,
// in that order.
func NewLayerBinding(base, water, cliff string) LayerBinding {
	b := LayerBinding{
		Channels: []string{base, water},
		Base:     0,
		Water:    1,
		Cliff:    -1,
	}
	if cliff != "" {
		b.Channels = append(b.Channels, cliff)
		b.Cliff = 2
	}
	return b
}

// Len returns the number of bound channels.
func (b LayerBinding) Len() int {
	return len(b.Channels)
}

// HasCliff reports whether a cliff channel is bound.
func (b LayerBinding) HasCliff() bool {
	return b.Cliff >= 0
}

// Validate checks that the channel indices are distinct and in range.
func (b LayerBinding) Validate() error {
	n := len(b.Channels)
	if n < 2 {
		return fmt.Errorf("%w: need at least base and water channels, got %d", ErrInvalidLayers, n)
	}
	if b.Base < 0 || b.Base >= n || b.Water < 0 || b.Water >= n {
		return fmt.Errorf("%w: base %d / water %d out of range", ErrInvalidLayers, b.Base, b.Water)
	}
	if b.Base == b.Water {
		return fmt.Errorf("%w: base and water share channel %d", ErrInvalidLayers, b.Base)
	}
	if b.Cliff >= n || (b.Cliff >= 0 && (b.Cliff == b.Base || b.Cliff == b.Water)) {
		return fmt.Errorf("%w: cliff channel %d", ErrInvalidLayers, b.Cliff)
	}
	return nil
}
