package raster

import (
	"image"

	"unicorn-renderer/internal/rgb"
)

// Coverage is the fraction of pixels that are not fully transparent.
func Coverage(img *image.NRGBA) float64 {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			if img.Pix[off+x*4+3] != 0 {
				n++
			}
		}
	}
	return float64(n) / float64(total)
}

// AverageColor averages the opaque pixels. ok is false for a fully
// transparent image.
func AverageColor(img *image.NRGBA) (c rgb.Color, ok bool) {
	b := img.Bounds()
	var sumR, sumG, sumB float64
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			i := off + x*4
			if img.Pix[i+3] == 0 {
				continue
			}
			sumR += float64(img.Pix[i])
			sumG += float64(img.Pix[i+1])
			sumB += float64(img.Pix[i+2])
			n++
		}
	}
	if n == 0 {
		return rgb.Color{}, false
	}
	f := float64(n)
	return rgb.Color{
		R: uint8(sumR/f + 0.5),
		G: uint8(sumG/f + 0.5),
		B: uint8(sumB/f + 0.5),
	}, true
}
