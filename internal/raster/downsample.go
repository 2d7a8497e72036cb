package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img to size×size with premultiplied alpha so that
// transparent edges do not bleed dark fringes.
func Downsample(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := float64(dst.Pix[i+3])
		if a > 1 {
			inv := 255 / a
			out.Pix[i] = clamp8(float64(dst.Pix[i]) * inv)
			out.Pix[i+1] = clamp8(float64(dst.Pix[i+1]) * inv)
			out.Pix[i+2] = clamp8(float64(dst.Pix[i+2]) * inv)
		}
		out.Pix[i+3] = dst.Pix[i+3]
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
