// Package catalog loads preset defaults from YAML files, local or fetched.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terragen/pkg/terrain"
)

// ErrInvalidCatalog is returned for catalogs with out-of-range defaults.
var ErrInvalidCatalog = errors.New("invalid preset catalog")

// File is the on-disk catalog layout. Presets missing from the file, and
// fields missing from a preset, keep the built-in defaults.
type File struct {
	Presets map[string]yaml.Node `yaml:"presets"`
}

// Parse decodes a catalog and merges it over the built-in defaults.
func Parse(data []byte) (terrain.Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	cat := terrain.DefaultCatalog()
	for name, node := range f.Presets {
		p, err := terrain.ParsePreset(name)
		if err != nil {
			return nil, err
		}
		d := cat[p]
		if err := node.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: preset %s: %v", ErrInvalidCatalog, name, err)
		}
		if err := check(d); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		cat[p] = d
	}
	return cat, nil
}

// Load reads and parses a catalog file.
func Load(path string) (terrain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Marshal encodes cat in the file layout.
func Marshal(cat terrain.Catalog) ([]byte, error) {
	out := map[string]map[string]terrain.Defaults{"presets": {}}
	for p, d := range cat {
		out["presets"][p.String()] = d
	}
	return yaml.Marshal(out)
}

func check(d terrain.Defaults) error {
	switch {
	case !(d.Scale > 0) || math.IsInf(d.Scale, 0):
		return fmt.Errorf("%w: scale %v", ErrInvalidCatalog, d.Scale)
	case !(d.Depth > 0) || math.IsInf(d.Depth, 0):
		return fmt.Errorf("%w: depth %v", ErrInvalidCatalog, d.Depth)
	case !(d.WaterLevel >= 0 && d.WaterLevel <= terrain.MaxWaterLevel):
		return fmt.Errorf("%w: water level %v", ErrInvalidCatalog, d.WaterLevel)
	case d.Lakes < 0 || d.LakeRadius < 0:
		return fmt.Errorf("%w: lakes %d radius %d", ErrInvalidCatalog, d.Lakes, d.LakeRadius)
	case d.BaseLayer == "":
		return fmt.Errorf("%w: empty base layer", ErrInvalidCatalog)
	}
	return nil
}
