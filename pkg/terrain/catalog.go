package terrain

import "fmt"

// Defaults is the parameter bundle a preset resets to when selected.
type Defaults struct {
	Scale      float64 `yaml:"scale"`
	Depth      float64 `yaml:"depth"`
	WaterLevel float64 `yaml:"water_level"`
	Lakes      int     `yaml:"lakes"`
	LakeRadius int     `yaml:"lake_radius"`
	BaseLayer  string  `yaml:"base_layer"`
}

// Apply overwrites depth and every generation parameter except the seed.
func (d Defaults) Apply(dims *Dimensions, params *Parameters) {
	dims.Depth = d.Depth
	params.Scale = d.Scale
	params.WaterLevel = d.WaterLevel
	params.Lakes = d.Lakes
	params.LakeRadius = d.LakeRadius
}

// Catalog maps presets to their defaults.
type Catalog map[Preset]Defaults

// DefaultCatalog returns the built-in preset defaults.
func DefaultCatalog() Catalog {
	return Catalog{
		Grasslands: {
			Scale:      15,
			Depth:      10,
			WaterLevel: 0.1,
			BaseLayer:  "grass",
		},
		Desert: {
			Scale:      150,
			Depth:      25,
			WaterLevel: 0,
			BaseLayer:  "sand",
		},
		Mountainous: {
			Scale:      25,
			Depth:      50,
			WaterLevel: 0.3,
			BaseLayer:  "rock",
		},
		Lake: {
			Scale:      15,
			Depth:      20,
			WaterLevel: 0.2,
			Lakes:      1,
			LakeRadius: 200,
			BaseLayer:  "lakeshore",
		},
		Canyons: {
			Scale:      10,
			Depth:      30,
			WaterLevel: 0.1,
			BaseLayer:  "canyon",
		},
	}
}

// Reset returns the defaults for p. Selecting a preset always discards the
// previous preset's values, so callers apply the result unconditionally.
func (c Catalog) Reset(p Preset) (Defaults, error) {
	d, ok := c[p]
	if !ok {
		return Defaults{}, fmt.Errorf("%w: %s not in catalog", ErrUnknownPreset, p)
	}
	return d, nil
}

// Merge returns a copy of c with every preset present in other replaced.
func (c Catalog) Merge(other Catalog) Catalog {
	out := make(Catalog, len(c))
	for p, d := range c {
		out[p] = d
	}
	for p, d := range other {
		out[p] = d
	}
	return out
}

// Layers returns the layer binding for p, using the catalog's base layer name.
// An empty cliff name leaves the cliff channel unbound.
func (c Catalog) Layers(p Preset, water, cliff string) (LayerBinding, error) {
	d, err := c.Reset(p)
	if err != nil {
		return LayerBinding{}, err
	}
	base := d.BaseLayer
	if base == "" {
		base = p.String()
	}
	if water == "" {
		water = WaterLayer
	}
	return NewLayerBinding(base, water, cliff), nil
}

// ResetForPreset returns the built-in defaults for p.
func ResetForPreset(p Preset) (Defaults, error) {
	return DefaultCatalog().Reset(p)
}
