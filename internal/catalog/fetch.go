package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/Faultbox/terragen/pkg/terrain"
)

// CacheName is the file a fetched catalog is stored under.
const CacheName = "presets.yaml"

// Fetch downloads a catalog from any go-getter source (https://, git::,
// s3::, local paths) into dir and returns the stored path.
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	// Local paths need to be absolute for the file getter
	if _, err := os.Stat(src); err == nil {
		if abs, err := filepath.Abs(src); err == nil {
			src = abs
		}
	}

	dst := filepath.Join(dir, CacheName)
	if err := get.GetFile(dst, src, get.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("fetching catalog %s: %w", src, err)
	}
	return dst, nil
}

// Resolve returns the catalog for source. Empty uses the built-in defaults,
// an existing file is read directly and anything else is fetched into
// cacheDir first.
func Resolve(ctx context.Context, source, cacheDir string) (terrain.Catalog, error) {
	if source == "" {
		return terrain.DefaultCatalog(), nil
	}
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		return Load(source)
	}

	path, err := Fetch(ctx, source, cacheDir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}
