// Package avatar turns a scene into a finished frame: camera framing,
// background and the traced figure.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"unicorn-renderer/internal/backdrop"
	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/raster"
	"unicorn-renderer/internal/render"
	"unicorn-renderer/internal/rgb"
	"unicorn-renderer/internal/scene"
)

// ErrNotImplemented is returned for rendering features that are accepted
// but not supported yet.
var ErrNotImplemented = errors.New("not implemented")

// referenceSize is the frame size at which a camera zoom of 1 maps one
// screen unit to one pixel.
const referenceSize = 256

// Options controls a render.
type Options struct {
	Size int

	// Quadrant in 1..4 renders only that quarter of the frame into a
	// Size/2 image; 0 renders the whole frame.
	Quadrant int

	// Background enables the scene's background, falling back to
	// DefaultBackground and then DefaultColor.
	Background        bool
	DefaultBackground string
	DefaultColor      *rgb.Color
	Backdrops         *backdrop.Cache

	Shading  bool
	Grass    bool
	Parallel bool

	// Supersample renders at Supersample times the size and scales down.
	Supersample     int
	FacetResolution int
}

// View is the camera setup of a frame.
type View struct {
	WorldView *render.WorldView
	ShiftX    float64
	ShiftY    float64
	Scale     float64
}

// Frame computes the camera for a frame of the given size.
func Frame(sc *scene.Scene, m *scene.Model, size int) (View, error) {
	fsize := float64(size)

	if c := sc.Camera; c != nil {
		zoom := c.Zoom
		if zoom == 0 {
			zoom = 1
		}
		return View{
			WorldView: render.NewWorldView(c.Position, c.LookAt, c.FocalLength),
			ShiftX:    fsize / 2,
			ShiftY:    fsize / 2,
			Scale:     zoom * fsize / referenceSize,
		}, nil
	}

	f := sc.Framing
	if f == nil {
		return View{}, fmt.Errorf("avatar: frame %s: %w", sc.Name, scene.ErrInvalid)
	}
	head, ok := m.Ball(f.Head)
	if !ok {
		return View{}, fmt.Errorf("avatar: frame %s: head %q: %w", sc.Name, f.Head, scene.ErrUnknownBall)
	}
	shoulder, ok := m.Ball(f.Shoulder)
	if !ok {
		return View{}, fmt.Errorf("avatar: frame %s: shoulder %q: %w", sc.Name, f.Shoulder, scene.ErrUnknownBall)
	}

	// factor runs from 0 (full figure) to 1 (head shot).
	zoom := (f.ScaleFactor - 0.5) / 2.5
	factor := math.Sqrt(zoom)

	lookAt := shoulder.Center.Add(head.Center.Sub(shoulder.Center).Scale(factor))
	camera := lookAt.Add(mathutil.Vec3{0, 0, -3 * f.FocalLength})
	camera = camera.RotateAround(head.Center, -mathutil.Deg2Rad(f.XAngle), mathutil.AxisX)
	camera = camera.RotateAround(head.Center, -mathutil.Deg2Rad(f.YAngle), mathutil.AxisY)

	return View{
		WorldView: render.NewWorldView(camera, lookAt, f.FocalLength),
		ShiftX:    0.5 * fsize,
		ShiftY:    factor*fsize/3 + (1-factor)*fsize/2,
		Scale:     (zoom*2 + 0.5) * fsize / 140,
	}, nil
}

// Tracer builds the framed scene tree: the figure scaled and then shifted
// into the frame.
func (v View) Tracer(m *scene.Model) render.Tracer {
	g := render.NewFigureTracer(v.WorldView, m.Figure)
	return render.NewTranslatingTracer(v.WorldView,
		render.NewScalingTracer(v.WorldView, g, v.Scale), v.ShiftX, v.ShiftY)
}

// Render draws sc. Canceling ctx only interrupts parallel draws.
func Render(ctx context.Context, sc *scene.Scene, opts Options) (*image.NRGBA, error) {
	if opts.Shading {
		return nil, fmt.Errorf("avatar: shading: %w", ErrNotImplemented)
	}
	if opts.Grass {
		return nil, fmt.Errorf("avatar: grass: %w", ErrNotImplemented)
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("avatar: size %d: %w", opts.Size, scene.ErrInvalid)
	}
	if opts.Quadrant < 0 || opts.Quadrant > 4 {
		return nil, fmt.Errorf("avatar: quadrant %d: %w", opts.Quadrant, scene.ErrInvalid)
	}
	ss := max(opts.Supersample, 1)
	size := opts.Size * ss

	m, err := sc.Build()
	if err != nil {
		return nil, err
	}
	view, err := Frame(sc, m, size)
	if err != nil {
		return nil, err
	}

	canvas := raster.NewCanvas(size, opts.Quadrant)
	if opts.Background {
		if err := drawBackground(canvas, sc.Background, opts); err != nil {
			return nil, err
		}
	}

	var tracer render.Tracer = view.Tracer(m)
	side := canvas.Bounds().Dx()
	if opts.Quadrant != 0 {
		tracer = render.NewQuadrantTracer(view.WorldView, tracer, side, opts.Quadrant)
	}

	d := render.Drawer{FacetResolution: opts.FacetResolution}
	if opts.Parallel {
		if err := d.DrawTiles(ctx, tracer, view.WorldView, canvas.NRGBA, side); err != nil {
			return nil, fmt.Errorf("avatar: draw %s: %w", sc.Name, err)
		}
	} else {
		d.Draw(tracer, view.WorldView, canvas.NRGBA, canvas.Bounds())
	}

	img := canvas.NRGBA
	if ss > 1 {
		target := opts.Size
		if opts.Quadrant != 0 {
			target /= 2
		}
		img = raster.Downsample(img, target)
	}

	render.Logger().Debug("avatar: rendered", "scene", sc.Name, "size", opts.Size,
		"quadrant", opts.Quadrant, "coverage", raster.Coverage(img))
	return img, nil
}

func drawBackground(c *raster.Canvas, bg *scene.Background, opts Options) error {
	switch {
	case bg != nil && bg.Image != "":
		return drawImage(c, bg.Image, opts.Backdrops)
	case bg != nil && bg.Landscape != nil:
		c.DrawLandscape(bg.Landscape.Raster())
	case bg != nil && bg.Color != nil:
		c.Fill(rgb.Color(*bg.Color))
	case opts.DefaultBackground != "":
		return drawImage(c, opts.DefaultBackground, opts.Backdrops)
	case opts.DefaultColor != nil:
		c.Fill(*opts.DefaultColor)
	}
	return nil
}

func drawImage(c *raster.Canvas, name string, cache *backdrop.Cache) error {
	if cache == nil {
		cache = backdrop.NewCache(nil)
	}
	img, err := cache.Resolve(name, c.Size)
	if err != nil {
		return fmt.Errorf("avatar: background: %w", err)
	}
	c.DrawFrame(img)
	return nil
}
