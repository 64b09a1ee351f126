package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/terragen/pkg/terrain"
)

const partialCatalog = `
presets:
  desert:
    scale: 120
    base_layer: dune
  lake:
    lakes: 3
    lake_radius: 40
`

func TestParseMergesDefaults(t *testing.T) {
	cat, err := Parse([]byte(partialCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	desert := cat[terrain.Desert]
	if desert.Scale != 120 || desert.BaseLayer != "dune" {
		t.Errorf("desert overrides not applied: %+v", desert)
	}
	if desert.Depth != 25 {
		t.Errorf("expected built-in desert depth 25, got %f", desert.Depth)
	}

	lake := cat[terrain.Lake]
	if lake.Lakes != 3 || lake.LakeRadius != 40 || lake.WaterLevel != 0.2 {
		t.Errorf("unexpected lake defaults: %+v", lake)
	}

	if cat[terrain.Canyons] != terrain.DefaultCatalog()[terrain.Canyons] {
		t.Error("presets absent from the file should keep built-in defaults")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"syntax", "presets: [", ErrInvalidCatalog},
		{"unknown preset", "presets:\n  tundra:\n    scale: 3\n", terrain.ErrUnknownPreset},
		{"bad field", "presets:\n  desert:\n    scale: wide\n", ErrInvalidCatalog},
		{"zero scale", "presets:\n  desert:\n    scale: 0\n", ErrInvalidCatalog},
		{"water too high", "presets:\n  lake:\n    water_level: 0.9\n", ErrInvalidCatalog},
		{"negative lakes", "presets:\n  lake:\n    lakes: -1\n", ErrInvalidCatalog},
		{"empty base", "presets:\n  grasslands:\n    base_layer: \"\"\n", ErrInvalidCatalog},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.data)); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	src := terrain.DefaultCatalog()
	d := src[terrain.Mountainous]
	d.Depth = 80
	src[terrain.Mountainous] = d

	data, err := Marshal(src)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	cat, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, p := range terrain.Presets {
		if cat[p] != src[p] {
			t.Errorf("%v: expected %+v, got %+v", p, src[p], cat[p])
		}
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cat, err := Resolve(ctx, "", dir)
	if err != nil || cat[terrain.Grasslands].Scale != 15 {
		t.Errorf("expected built-in catalog, got %v (%v)", cat, err)
	}

	path := filepath.Join(dir, "mine.yaml")
	if err := os.WriteFile(path, []byte(partialCatalog), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	cat, err = Resolve(ctx, path, filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cat[terrain.Desert].Scale != 120 {
		t.Errorf("expected desert scale 120, got %f", cat[terrain.Desert].Scale)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing catalog")
	}
}

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "remote.yaml")
	if err := os.WriteFile(src, []byte(partialCatalog), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	cacheDir := filepath.Join(dir, "cache")
	path, err := Fetch(context.Background(), src, cacheDir)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if path != filepath.Join(cacheDir, CacheName) {
		t.Errorf("unexpected cache path %s", path)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat[terrain.Lake].Lakes != 3 {
		t.Errorf("expected 3 lakes from fetched catalog, got %d", cat[terrain.Lake].Lakes)
	}
}
