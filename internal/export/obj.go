package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/terragen/internal/engine/mesh"
	"github.com/Faultbox/terragen/internal/engine/water"
	"github.com/Faultbox/terragen/pkg/terrain"
)

// EncodeOBJ writes the terrain mesh and its water plane as Wavefront OBJ.
// A water level of zero omits the plane.
func EncodeOBJ(w io.Writer, hf *terrain.Heightfield, weights *terrain.BlendWeights, depth, waterLevel float64, padding float32) error {
	m := mesh.BuildMesh(hf, weights, depth, mesh.DefaultTileSize)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# terragen %dx%d depth %g\n", hf.Width, hf.Height, depth)
	fmt.Fprintln(bw, "o terrain")
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	if waterLevel > 0 {
		dims := terrain.Dimensions{Width: hf.Width, Height: hf.Height, Depth: depth}
		plane := water.ForTile(dims, waterLevel, mesh.DefaultTileSize, padding)
		base := len(m.Vertices)

		fmt.Fprintln(bw, "o water")
		for i := 0; i < len(plane.Vertices); i += 3 {
			fmt.Fprintf(bw, "v %g %g %g\n", plane.Vertices[i], plane.Vertices[i+1], plane.Vertices[i+2])
		}
		// Wound to face +Y
		fmt.Fprintf(bw, "f %d %d %d\n", base+1, base+4, base+3)
		fmt.Fprintf(bw, "f %d %d %d\n", base+1, base+3, base+2)
	}

	return bw.Flush()
}

// WriteOBJ saves the mesh to path.
func WriteOBJ(path string, hf *terrain.Heightfield, weights *terrain.BlendWeights, depth, waterLevel float64, padding float32) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := EncodeOBJ(file, hf, weights, depth, waterLevel, padding); err != nil {
		return fmt.Errorf("encoding OBJ: %w", err)
	}
	return file.Close()
}
