package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/terragen/pkg/terrain"
)

// HeightmapImage maps [0,1] heights to 16-bit gray, clamping outliers.
func HeightmapImage(hf *terrain.Heightfield) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, hf.Width, hf.Height))
	for z := range hf.Height {
		for x := range hf.Width {
			v := math.Round(clamp01(hf.At(x, z)) * math.MaxUint16)
			img.SetGray16(x, z, color.Gray16{Y: uint16(v)})
		}
	}
	return img
}

// SplatImage packs the first three channels into RGB.
func SplatImage(bw *terrain.BlendWeights) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, bw.Width, bw.Height))
	for z := range bw.Height {
		for x := range bw.Width {
			var c [3]uint8
			for l, w := range bw.Texel(x, z) {
				if l >= 3 {
					break
				}
				c[l] = uint8(math.Round(clamp01(w) * 255))
			}
			img.SetNRGBA(x, z, color.NRGBA{R: c[0], G: c[1], B: c[2], A: 255})
		}
	}
	return img
}

// WriteHeightmapPNG saves hf as a 16-bit grayscale PNG.
func WriteHeightmapPNG(path string, hf *terrain.Heightfield) error {
	return writeImage(path, HeightmapImage(hf), png.Encode)
}

// WriteSplatBMP saves the splat control map as a 24-bit BMP.
func WriteSplatBMP(path string, bw *terrain.BlendWeights) error {
	return writeImage(path, SplatImage(bw), bmp.Encode)
}

func writeImage(path string, img image.Image, encode func(w io.Writer, m image.Image) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
