package formats

import (
	"errors"
	"fmt"
	"os"
)

// GAT format errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
	ErrInvalidGATDimensions  = errors.New("invalid GAT dimensions")
)

const (
	gatMagic        = "GRAT"
	gatHeaderSize   = 14
	gatMaxDimension = 4096
	gatWriteMajor   = 1
	gatWriteMinor   = 2
)

// GATVersion represents the GAT file version.
type GATVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GATVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GATCellType represents the walkability type of a cell.
type GATCellType uint32

// Cell type constants.
const (
	GATWalkable      GATCellType = 0 // Normal walkable ground
	GATBlocked       GATCellType = 1 // Cannot walk through
	GATWater         GATCellType = 2 // Deep water
	GATWalkableWater GATCellType = 3 // Shore/shallow water
	GATSnipeable     GATCellType = 4 // Cliffs: attack over, not walk
	GATBlockedSnipe  GATCellType = 5 // Blocked but can shoot over
)

// String returns a human-readable cell type name.
func (t GATCellType) String() string {
	switch t {
	case GATWalkable:
		return "Walkable"
	case GATBlocked:
		return "Blocked"
	case GATWater:
		return "Water"
	case GATWalkableWater:
		return "Walkable+Water"
	case GATSnipeable:
		return "Snipeable"
	case GATBlockedSnipe:
		return "Blocked+Snipe"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWalkable returns true if the cell type allows walking.
func (t GATCellType) IsWalkable() bool {
	return t == GATWalkable || t == GATWalkableWater
}

// IsWater returns true if the cell contains water.
func (t GATCellType) IsWater() bool {
	return t == GATWater || t == GATWalkableWater
}

// GATCell is one walkability cell.
type GATCell struct {
	// Corner altitudes, negative is up:
	// [0] = bottom-left, [1] = bottom-right, [2] = top-left, [3] = top-right
	Heights [4]float32
	Type    GATCellType
}

// AverageHeight returns the average altitude of all four corners.
func (c *GATCell) AverageHeight() float32 {
	return (c.Heights[0] + c.Heights[1] + c.Heights[2] + c.Heights[3]) / 4.0
}

// GAT is a Ground Altitude Table.
type GAT struct {
	Version GATVersion
	Width   uint32
	Height  uint32
	Cells   []GATCell
}

// GetCell returns the cell at the given coordinates, or nil when out of
// bounds.
func (g *GAT) GetCell(x, y int) *GATCell {
	if x < 0 || y < 0 || x >= int(g.Width) || y >= int(g.Height) {
		return nil
	}
	return &g.Cells[y*int(g.Width)+x]
}

// ParseGAT decodes a GAT file. Versions 1.x to 3.x share the cell layout.
func ParseGAT(data []byte) (*GAT, error) {
	if len(data) < gatHeaderSize {
		return nil, ErrTruncatedGATData
	}
	if string(data[0:4]) != gatMagic {
		return nil, ErrInvalidGATMagic
	}

	// Version is stored as [minor, major]
	version := GATVersion{Major: data[5], Minor: data[4]}
	if version.Major < 1 || version.Major > 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGATVersion, version)
	}

	r := newReader(data[6:], ErrTruncatedGATData)
	var width, height uint32
	r.read(&width, "width")
	r.read(&height, "height")
	if r.err != nil {
		return nil, r.err
	}
	if width == 0 || height == 0 || width > gatMaxDimension || height > gatMaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGATDimensions, width, height)
	}

	gat := &GAT{
		Version: version,
		Width:   width,
		Height:  height,
		Cells:   make([]GATCell, width*height),
	}
	for i := range gat.Cells {
		r.read(&gat.Cells[i].Heights, "heights")
		r.read(&gat.Cells[i].Type, "cell type")
		if r.err != nil {
			return nil, fmt.Errorf("parsing cell %d: %w", i, r.err)
		}
	}

	return gat, nil
}

// ParseGATFile parses a GAT file from disk.
func ParseGATFile(path string) (*GAT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GAT file: %w", err)
	}
	return ParseGAT(data)
}

// Marshal encodes the table as GAT 1.2.
func (g *GAT) Marshal() ([]byte, error) {
	if g.Width == 0 || g.Height == 0 || g.Width > gatMaxDimension || g.Height > gatMaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGATDimensions, g.Width, g.Height)
	}
	if len(g.Cells) != int(g.Width*g.Height) {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidGATDimensions, len(g.Cells), g.Width, g.Height)
	}

	var w writer
	w.raw([]byte(gatMagic))
	w.raw([]byte{gatWriteMinor, gatWriteMajor})
	w.write(g.Width)
	w.write(g.Height)
	for i := range g.Cells {
		w.write(g.Cells[i].Heights)
		w.write(g.Cells[i].Type)
	}
	return w.buf.Bytes(), nil
}

// WriteGATFile encodes g to path.
func WriteGATFile(path string, g *GAT) error {
	data, err := g.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing GAT file: %w", err)
	}
	return nil
}

// CountByType returns the count of cells for each type.
func (g *GAT) CountByType() map[GATCellType]int {
	counts := make(map[GATCellType]int)
	for _, cell := range g.Cells {
		counts[cell.Type]++
	}
	return counts
}

// GetAltitudeRange returns the minimum and maximum corner altitude.
func (g *GAT) GetAltitudeRange() (min, max float32) {
	if len(g.Cells) == 0 {
		return 0, 0
	}
	return altitudeRange(len(g.Cells), func(i int) [4]float32 { return g.Cells[i].Heights })
}

func altitudeRange(n int, corners func(i int) [4]float32) (min, max float32) {
	min = corners(0)[0]
	max = min
	for i := range n {
		for _, h := range corners(i) {
			if h < min {
				min = h
			}
			if h > max {
				max = h
			}
		}
	}
	return min, max
}
