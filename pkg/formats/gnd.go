package formats

import (
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/terragen/pkg/encoding"
)

// GND format errors.
var (
	ErrInvalidGNDMagic       = errors.New("invalid GND magic: expected 'GRGN'")
	ErrUnsupportedGNDVersion = errors.New("unsupported GND version")
	ErrTruncatedGNDData      = errors.New("truncated GND data")
	ErrInvalidGNDDimensions  = errors.New("invalid GND dimensions")
	ErrInvalidGNDReference   = errors.New("GND reference out of range")
)

const (
	gndMagic          = "GRGN"
	gndHeaderSize     = 18
	gndMaxDimension   = 1024
	gndTextureNameLen = 80
	gndWriteMajor     = 1
	gndWriteMinor     = 7

	// Written files carry an empty lightmap table of this shape.
	gndLightmapWidth  = 8
	gndLightmapHeight = 8
	gndLightmapCells  = 1
)

// NoSurface marks a tile face without geometry.
const NoSurface int32 = -1

// GNDVersion represents the GND file version.
type GNDVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GNDVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GNDSurface is a textured face with per-corner UVs.
type GNDSurface struct {
	U          [4]float32
	V          [4]float32
	TextureID  int16 // -1 = no texture
	LightmapID int16
	Color      [4]uint8 // BGRA vertex color
}

// GNDTile is one ground cell. Altitudes are negative up, corners ordered
// bottom-left, bottom-right, top-left, top-right.
type GNDTile struct {
	Altitude     [4]float32
	TopSurface   int32
	FrontSurface int32
	RightSurface int32
}

// GND is a ground mesh. Lightmap payloads are skipped on read; only their
// count is kept.
type GND struct {
	Version       GNDVersion
	Width         uint32
	Height        uint32
	Zoom          float32
	Textures      []string
	LightmapCount uint32
	Surfaces      []GNDSurface
	Tiles         []GNDTile
}

// GetTile returns the tile at the given coordinates, or nil when out of
// bounds.
func (g *GND) GetTile(x, y int) *GNDTile {
	if x < 0 || y < 0 || x >= int(g.Width) || y >= int(g.Height) {
		return nil
	}
	return &g.Tiles[y*int(g.Width)+x]
}

// GetAltitudeRange returns the minimum and maximum corner altitude.
func (g *GND) GetAltitudeRange() (min, max float32) {
	if len(g.Tiles) == 0 {
		return 0, 0
	}
	return altitudeRange(len(g.Tiles), func(i int) [4]float32 { return g.Tiles[i].Altitude })
}

// CountSurfacesByTexture returns the count of surfaces using each texture.
func (g *GND) CountSurfacesByTexture() map[int]int {
	counts := make(map[int]int)
	for _, surface := range g.Surfaces {
		if surface.TextureID >= 0 {
			counts[int(surface.TextureID)]++
		}
	}
	return counts
}

// ParseGND decodes a GND file, versions 1.5 to 1.9.
func ParseGND(data []byte) (*GND, error) {
	if len(data) < gndHeaderSize {
		return nil, ErrTruncatedGNDData
	}
	if string(data[0:4]) != gndMagic {
		return nil, ErrInvalidGNDMagic
	}

	// Version is stored as [major, minor]
	version := GNDVersion{Major: data[4], Minor: data[5]}
	if version.Major != 1 || version.Minor < 5 || version.Minor > 9 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGNDVersion, version)
	}

	r := newReader(data[6:], ErrTruncatedGNDData)
	gnd := &GND{Version: version}
	r.read(&gnd.Width, "width")
	r.read(&gnd.Height, "height")
	r.read(&gnd.Zoom, "zoom")
	if r.err != nil {
		return nil, r.err
	}
	if gnd.Width == 0 || gnd.Height == 0 || gnd.Width > gndMaxDimension || gnd.Height > gndMaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGNDDimensions, gnd.Width, gnd.Height)
	}

	var textureCount, nameLen uint32
	r.read(&textureCount, "texture count")
	r.read(&nameLen, "texture name length")
	for i := uint32(0); i < textureCount && r.err == nil; i++ {
		name := r.bytes(int(nameLen), fmt.Sprintf("texture %d name", i))
		gnd.Textures = append(gnd.Textures, encoding.FixedString(name))
	}

	var lmWidth, lmHeight, lmCells uint32
	r.read(&gnd.LightmapCount, "lightmap count")
	r.read(&lmWidth, "lightmap width")
	r.read(&lmHeight, "lightmap height")
	r.read(&lmCells, "lightmap cells")
	// Brightness plus RGB per pixel
	lmSize := int64(lmWidth) * int64(lmHeight) * int64(lmCells) * 4
	r.skip(lmSize*int64(gnd.LightmapCount), "lightmaps")

	var surfaceCount uint32
	r.read(&surfaceCount, "surface count")
	if r.err != nil {
		return nil, r.err
	}
	gnd.Surfaces = make([]GNDSurface, 0, min(surfaceCount, gndMaxDimension*gndMaxDimension))
	for i := uint32(0); i < surfaceCount; i++ {
		var s GNDSurface
		r.read(&s.U, "surface U")
		r.read(&s.V, "surface V")
		r.read(&s.TextureID, "texture ID")
		r.read(&s.LightmapID, "lightmap ID")
		r.read(&s.Color, "surface color")
		if r.err != nil {
			return nil, fmt.Errorf("parsing surface %d: %w", i, r.err)
		}
		gnd.Surfaces = append(gnd.Surfaces, s)
	}

	gnd.Tiles = make([]GNDTile, gnd.Width*gnd.Height)
	for i := range gnd.Tiles {
		t := &gnd.Tiles[i]
		r.read(&t.Altitude, "altitude")
		r.read(&t.TopSurface, "top surface")
		r.read(&t.FrontSurface, "front surface")
		r.read(&t.RightSurface, "right surface")
		if r.err != nil {
			return nil, fmt.Errorf("parsing tile %d: %w", i, r.err)
		}
	}

	return gnd, nil
}

// ParseGNDFile parses a GND file from disk.
func ParseGNDFile(path string) (*GND, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GND file: %w", err)
	}
	return ParseGND(data)
}

// Marshal encodes the mesh as GND 1.7 with an empty lightmap table.
func (g *GND) Marshal() ([]byte, error) {
	if g.Width == 0 || g.Height == 0 || g.Width > gndMaxDimension || g.Height > gndMaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGNDDimensions, g.Width, g.Height)
	}
	if len(g.Tiles) != int(g.Width*g.Height) {
		return nil, fmt.Errorf("%w: %d tiles for %dx%d", ErrInvalidGNDDimensions, len(g.Tiles), g.Width, g.Height)
	}
	if err := g.checkReferences(); err != nil {
		return nil, err
	}

	var w writer
	w.raw([]byte(gndMagic))
	w.raw([]byte{gndWriteMajor, gndWriteMinor})
	w.write(g.Width)
	w.write(g.Height)
	w.write(g.Zoom)

	w.write(uint32(len(g.Textures)))
	w.write(uint32(gndTextureNameLen))
	for _, name := range g.Textures {
		field, err := encoding.PutFixedString(name, gndTextureNameLen)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		w.raw(field)
	}

	w.write(uint32(0))
	w.write(uint32(gndLightmapWidth))
	w.write(uint32(gndLightmapHeight))
	w.write(uint32(gndLightmapCells))

	w.write(uint32(len(g.Surfaces)))
	for i := range g.Surfaces {
		s := &g.Surfaces[i]
		w.write(s.U)
		w.write(s.V)
		w.write(s.TextureID)
		w.write(s.LightmapID)
		w.write(s.Color)
	}

	for i := range g.Tiles {
		t := &g.Tiles[i]
		w.write(t.Altitude)
		w.write(t.TopSurface)
		w.write(t.FrontSurface)
		w.write(t.RightSurface)
	}
	return w.buf.Bytes(), nil
}

func (g *GND) checkReferences() error {
	for i, s := range g.Surfaces {
		if int(s.TextureID) >= len(g.Textures) {
			return fmt.Errorf("%w: surface %d uses texture %d of %d", ErrInvalidGNDReference, i, s.TextureID, len(g.Textures))
		}
	}
	for i, t := range g.Tiles {
		for _, id := range [3]int32{t.TopSurface, t.FrontSurface, t.RightSurface} {
			if id >= int32(len(g.Surfaces)) {
				return fmt.Errorf("%w: tile %d uses surface %d of %d", ErrInvalidGNDReference, i, id, len(g.Surfaces))
			}
		}
	}
	return nil
}

// WriteGNDFile encodes g to path.
func WriteGNDFile(path string, g *GND) error {
	data, err := g.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing GND file: %w", err)
	}
	return nil
}
