// Package imageio adapts the standard library's image.Image, decoded
// through disintegration/imaging, onto the minimal triface.Image
// collaborator interface the predictor core consumes.
package imageio

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"

	"github.com/esimov/triface"
)

// Gray wraps a decoded image.Image and exposes it as a triface.Image,
// converting to 8-bit luminance on the fly.
type Gray struct {
	src    image.Image
	bounds triface.Rectangle
}

// NewGray adapts src, computing its pixel-space bounds once up front.
func NewGray(src image.Image) *Gray {
	b := src.Bounds()
	return &Gray{
		src:    src,
		bounds: triface.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y),
	}
}

// At returns the pixel's luminance using the same weighting caire's
// rgbToGrayscale uses: 0.299R + 0.587G + 0.114B over RGBA's 16-bit
// premultiplied channels, scaled back down to 8 bits.
func (g *Gray) At(x, y int) uint8 {
	r, gr, b, _ := g.src.At(x, y).RGBA()
	lum := 0.299*float64(r) + 0.587*float64(gr) + 0.114*float64(b)
	return uint8(lum / 256)
}

// Bounds returns the image's pixel-space extent.
func (g *Gray) Bounds() triface.Rectangle {
	return g.bounds
}

// Open decodes the image file at path, dispatching on its extension the
// way caire's encodeImg does, and adapts it into a Gray.
func Open(path string) (*Gray, error) {
	var (
		img image.Image
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bmp":
		f, ferr := os.Open(path)
		if ferr != nil {
			return nil, fmt.Errorf("imageio: open %s: %w", path, ferr)
		}
		defer f.Close()
		img, err = bmp.Decode(f)
	default:
		img, err = imaging.Open(path, imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}

	return NewGray(img), nil
}

// Decode reads an image from r with the standard library's registered
// decoders and adapts it into a Gray.
func Decode(r io.Reader) (*Gray, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return NewGray(img), nil
}
