package render

import (
	"context"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"unicorn-renderer/internal/raster"
)

// Drawer holds the settings of a draw. The zero value is ready to use.
type Drawer struct {
	// FacetResolution is the facet grid size used when pruning groups;
	// zero selects DefaultFacetResolution.
	FacetResolution int
}

// Draw traces t into rect of img with the default settings.
func Draw(t Tracer, wv *WorldView, img draw.Image, rect image.Rectangle) int {
	return Drawer{}.Draw(t, wv, img, rect)
}

// DrawTiles draws the size×size image img as four concurrent quadrant tiles
// with the default settings.
func DrawTiles(ctx context.Context, t Tracer, wv *WorldView, img draw.Image, size int) error {
	return Drawer{}.DrawTiles(ctx, t, wv, img, size)
}

// Draw traces t into rect of img, one ray per pixel. Pixels without a hit
// keep their current color. It returns the number of pixels written.
func (d Drawer) Draw(t Tracer, wv *WorldView, img draw.Image, rect image.Rectangle) int {
	rect = rect.Intersect(img.Bounds())
	target := RectBounds(rect).Intersection(t.Bounds())
	if target.Empty {
		return 0
	}

	p := NewRenderingParameters(1, target)
	p.FacetResolution = d.FacetResolution
	pruned := t.Prune(p)
	if pruned == nil {
		Logger().Debug("render: nothing to draw", "rect", rect)
		return 0
	}

	x0 := max(rect.Min.X, int(math.Floor(target.XMin)))
	x1 := min(rect.Max.X, int(math.Ceil(target.XMax))+1)
	y0 := max(rect.Min.Y, int(math.Floor(target.YMin)))
	y1 := min(rect.Max.Y, int(math.Ceil(target.YMax))+1)

	written := 0
	for y := y0; y < y1; y++ {
		fy := float64(y)
		for x := x0; x < x1; x++ {
			fx := float64(x)
			if h, ok := pruned.Trace(fx, fy, wv.Ray(fx, fy)); ok {
				img.Set(x, y, h.Color)
				written++
			}
		}
	}

	return written
}

// DrawTiles draws t into the size×size image img as four quadrant tiles
// traced concurrently. Each tile is pruned on its own and composited over
// img, so pixels without a hit keep their color. A canceled ctx stops tiles
// that have not started yet.
func (d Drawer) DrawTiles(ctx context.Context, t Tracer, wv *WorldView, img draw.Image, size int) error {
	half := (size + 1) / 2
	var tiles [4]*image.NRGBA

	g, ctx := errgroup.WithContext(ctx)
	for q := 1; q <= 4; q++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tile := image.NewNRGBA(image.Rect(0, 0, half, half))
			qt := NewQuadrantTracer(wv, t, half, q)
			n := d.Draw(qt, wv, tile, tile.Bounds())
			Logger().Debug("render: tile done", "quadrant", qt.Quadrant(), "pixels", n)
			tiles[q-1] = tile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	raster.Stitch(img, tiles)
	return nil
}
