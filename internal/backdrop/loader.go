package backdrop

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Load decodes a PNG, JPEG or TGA file. TGA has no magic number, so it is
// picked by extension.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("backdrop: open %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = tga.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("backdrop: decode %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Fit scales img to cover a size×size square, cropping the longer side
// around the center.
func Fit(img image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	b := img.Bounds()
	if b.Empty() || size <= 0 {
		return dst
	}

	src := b
	if w, h := b.Dx(), b.Dy(); w > h {
		src.Min.X += (w - h) / 2
		src.Max.X = src.Min.X + h
	} else if h > w {
		src.Min.Y += (h - w) / 2
		src.Max.Y = src.Min.Y + w
	}

	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
