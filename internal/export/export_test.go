package export

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/terragen/internal/editor"
	"github.com/Faultbox/terragen/pkg/formats"
	"github.com/Faultbox/terragen/pkg/terrain"
)

func newSession(t *testing.T, preset terrain.Preset) *editor.Session {
	t.Helper()
	s, err := editor.New(editor.Config{
		Preset:     preset,
		Width:      24,
		Height:     24,
		Seed:       7,
		WaterLayer: terrain.WaterLayer,
		CliffLayer: terrain.CliffLayer,
	})
	if err != nil {
		t.Fatalf("editor.New failed: %v", err)
	}
	return s
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []Format
		wantErr error
	}{
		{"empty", nil, nil, nil},
		{"case and spaces", []string{"PNG", " gat "}, []Format{FormatPNG, FormatGAT}, nil},
		{"duplicates dropped", []string{"obj", "obj", "bmp"}, []Format{FormatOBJ, FormatBMP}, nil},
		{"unknown", []string{"png", "tiff"}, nil, ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("format %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestHeightmapImageClamps(t *testing.T) {
	hf := terrain.NewHeightfield(4, 1)
	for x, v := range []float64{-0.5, 0, 0.5, 1.5} {
		hf.Set(x, 0, v)
	}

	img := HeightmapImage(hf)
	want := []uint16{0, 0, 32768, 65535}
	for x, w := range want {
		if got := img.Gray16At(x, 0).Y; got != w {
			t.Errorf("pixel %d: expected %d, got %d", x, w, got)
		}
	}
}

func TestSplatImageChannels(t *testing.T) {
	bw := terrain.NewBlendWeights(2, 1, 4)
	bw.Set(0, 0, 0, 1)
	bw.Set(1, 0, 1, 0.5)
	bw.Set(1, 0, 2, 0.25)
	bw.Set(1, 0, 3, 0.25) // fourth channel has no color slot

	img := SplatImage(bw)
	if c := img.NRGBAAt(0, 0); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("expected pure red, got %+v", c)
	}
	if c := img.NRGBAAt(1, 0); c.R != 0 || c.G != 128 || c.B != 64 || c.A != 255 {
		t.Errorf("expected (0,128,64,255), got %+v", c)
	}
}

func TestFileSinkWritesAllFormats(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir, Formats)
	sink.Name = "tile"

	s := newSession(t, terrain.Grasslands)
	run, err := s.Generate(sink)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	written := sink.Written()
	if len(written) != len(Formats)+1 {
		t.Fatalf("expected %d files, got %v", len(Formats)+1, written)
	}
	for _, p := range written {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}

	// Heightmap
	f, err := os.Open(filepath.Join(dir, "tile.png"))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Errorf("expected 24x24 heightmap, got %v", b)
	}

	// Splat map
	f, err = os.Open(filepath.Join(dir, "tile_splat.bmp"))
	if err != nil {
		t.Fatal(err)
	}
	splat, err := bmp.Decode(f)
	f.Close()
	if err != nil {
		t.Fatalf("decoding BMP: %v", err)
	}
	if b := splat.Bounds(); b.Dx() != 24 || b.Dy() != 24 {
		t.Errorf("expected 24x24 splat map, got %v", b)
	}

	gat, err := formats.ParseGATFile(filepath.Join(dir, "tile.gat"))
	if err != nil {
		t.Fatalf("ParseGATFile failed: %v", err)
	}
	if gat.Width != 23 || gat.Height != 23 {
		t.Errorf("expected 23x23 GAT, got %dx%d", gat.Width, gat.Height)
	}

	gnd, err := formats.ParseGNDFile(filepath.Join(dir, "tile.gnd"))
	if err != nil {
		t.Fatalf("ParseGNDFile failed: %v", err)
	}
	if len(gnd.Textures) != run.Result.Layers.Len() {
		t.Errorf("expected %d textures, got %d", run.Result.Layers.Len(), len(gnd.Textures))
	}
	if gnd.Zoom != formats.DefaultZoom {
		t.Errorf("expected zoom %v, got %v", formats.DefaultZoom, gnd.Zoom)
	}

	obj, err := os.ReadFile(filepath.Join(dir, "tile.obj"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(obj), "o water\n") {
		t.Error("expected water object in OBJ")
	}

	meta, err := ReadMetadata(filepath.Join(dir, MetadataFile))
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if meta.RunID != run.Info.ID {
		t.Errorf("expected run id %q, got %q", run.Info.ID, meta.RunID)
	}
	if meta.Preset != "grasslands" {
		t.Errorf("expected preset grasslands, got %q", meta.Preset)
	}
	if meta.Seed != 7 {
		t.Errorf("expected seed 7, got %d", meta.Seed)
	}
	if meta.Depth != run.Info.Dimensions.Depth {
		t.Errorf("expected depth %v, got %v", run.Info.Dimensions.Depth, meta.Depth)
	}
	if len(meta.Files) != len(Formats) {
		t.Errorf("expected %d files listed, got %v", len(Formats), meta.Files)
	}
	if meta.Lakes != 0 {
		t.Errorf("expected no lake count outside the lake preset, got %d", meta.Lakes)
	}
	if meta.MinHeight < 0 || meta.MaxHeight > 1 || meta.MinHeight > meta.MaxHeight {
		t.Errorf("unexpected height range [%v, %v]", meta.MinHeight, meta.MaxHeight)
	}
}

func TestFileSinkWithoutRunInfo(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir, []Format{FormatGAT})

	hf := terrain.NewHeightfield(3, 3)
	for i := range hf.Values {
		hf.Values[i] = 0.5
	}
	layers := terrain.NewLayerBinding("grass", terrain.WaterLayer, "")
	bw := terrain.NewBlendWeights(3, 3, layers.Len())
	for z := range 3 {
		for x := range 3 {
			bw.Set(x, z, 0, 1)
		}
	}

	if err := sink.Replace(hf, bw, layers); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	gat, err := formats.ParseGATFile(filepath.Join(dir, "terrain.gat"))
	if err != nil {
		t.Fatalf("ParseGATFile failed: %v", err)
	}
	// Unit depth, negated altitudes
	if h := gat.Cells[0].Heights[0]; h != -0.5 {
		t.Errorf("expected altitude -0.5, got %v", h)
	}

	meta, err := ReadMetadata(filepath.Join(dir, MetadataFile))
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if meta.Depth != 1 || meta.RunID != "" {
		t.Errorf("expected unit depth and no run id, got %v %q", meta.Depth, meta.RunID)
	}
}

func TestFileSinkUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	sink := NewFileSink(filepath.Join(blocker, "out"), []Format{FormatPNG})
	s := newSession(t, terrain.Desert)
	if _, err := s.Generate(sink); err == nil {
		t.Error("expected error writing below a regular file")
	}
}

func TestEncodeOBJ(t *testing.T) {
	hf := terrain.NewHeightfield(3, 2)
	layers := terrain.NewLayerBinding("sand", terrain.WaterLayer, "")
	bw := terrain.NewBlendWeights(3, 2, layers.Len())

	var buf bytes.Buffer
	if err := EncodeOBJ(&buf, hf, bw, 10, 0, 0); err != nil {
		t.Fatalf("EncodeOBJ failed: %v", err)
	}

	counts := make(map[string]int)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		counts[strings.Fields(line)[0]]++
	}
	// 2 quads, 4 vertices and 2 triangles each
	if counts["v"] != 8 || counts["vt"] != 8 || counts["vn"] != 8 {
		t.Errorf("expected 8 of each vertex attribute, got %v", counts)
	}
	if counts["f"] != 4 {
		t.Errorf("expected 4 faces, got %d", counts["f"])
	}
	if counts["o"] != 1 {
		t.Errorf("expected no water object at level 0, got %d objects", counts["o"])
	}

	buf.Reset()
	if err := EncodeOBJ(&buf, hf, bw, 10, 0.2, 1); err != nil {
		t.Fatalf("EncodeOBJ failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "o water\n") {
		t.Fatal("expected water object")
	}
	if !strings.Contains(out, "v -1 1.9 -1\n") {
		t.Errorf("expected padded water corner at y=1.9, got:\n%s", out[strings.Index(out, "o water"):])
	}
}

func TestMemorySink(t *testing.T) {
	sink := &MemorySink{}
	if h, _, _ := sink.Tile(); h != nil {
		t.Error("expected no tile before first run")
	}

	s := newSession(t, terrain.Mountainous)
	for range 2 {
		if _, err := s.Generate(sink); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
	}

	if sink.Replaced() != 2 {
		t.Errorf("expected 2 replacements, got %d", sink.Replaced())
	}
	h, w, layers := sink.Tile()
	if h == nil || w == nil {
		t.Fatal("expected grids after generation")
	}
	if w.Layers != layers.Len() {
		t.Errorf("expected %d layers, got %d", layers.Len(), w.Layers)
	}
	if sink.Info().Preset != terrain.Mountainous {
		t.Errorf("expected mountainous run info, got %v", sink.Info().Preset)
	}
}
