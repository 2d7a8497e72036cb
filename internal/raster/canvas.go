package raster

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"unicorn-renderer/internal/rgb"
)

// Canvas is the output image of a frame, or of one quadrant of it.
// Pixel (x, y) of the canvas is pixel Offset+(x, y) of the full frame.
type Canvas struct {
	*image.NRGBA
	Size   int // side of the full frame
	Offset image.Point
}

// NewCanvas allocates a transparent canvas for a size×size frame. With
// quadrant in 1..4 only that quarter is allocated, size/2 on each side;
// quadrant 0 is the whole frame.
func NewCanvas(size, quadrant int) *Canvas {
	if quadrant == 0 {
		return &Canvas{
			NRGBA: image.NewNRGBA(image.Rect(0, 0, size, size)),
			Size:  size,
		}
	}
	half := size / 2
	return &Canvas{
		NRGBA:  image.NewNRGBA(image.Rect(0, 0, half, half)),
		Size:   size,
		Offset: QuadrantOffset(quadrant, half),
	}
}

// QuadrantOffset is the top left corner of quadrant q (1 top left,
// 2 top right, 3 bottom left, 4 bottom right) of a frame made of
// half×half quadrants.
func QuadrantOffset(q, half int) image.Point {
	switch q {
	case 1:
		return image.Point{}
	case 2:
		return image.Pt(half, 0)
	case 3:
		return image.Pt(0, half)
	case 4:
		return image.Pt(half, half)
	}
	panic(fmt.Sprintf("raster: invalid quadrant %d", q))
}

func (c *Canvas) Fill(col rgb.Color) {
	draw.Draw(c.NRGBA, c.Bounds(), image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// DrawFrame copies the part of a full-frame image that falls on the canvas.
func (c *Canvas) DrawFrame(src image.Image) {
	sp := src.Bounds().Min.Add(c.Offset)
	draw.Draw(c.NRGBA, c.Bounds(), src, sp, draw.Src)
}

// Stitch composites four equally sized quadrant tiles over dst, tile i
// landing in quadrant i+1. Transparent tile pixels leave dst unchanged.
func Stitch(dst draw.Image, tiles [4]*image.NRGBA) {
	base := dst.Bounds().Min
	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		off := QuadrantOffset(i+1, tile.Bounds().Dx())
		r := tile.Bounds().Sub(tile.Bounds().Min).Add(base).Add(off)
		draw.Draw(dst, r, tile, tile.Bounds().Min, draw.Over)
	}
}
