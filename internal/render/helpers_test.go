package render

import (
	"image"
	"math"
	"testing"

	"unicorn-renderer/internal/geometry"
	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/rgb"
)

var (
	red   = rgb.Color{R: 255}
	green = rgb.Color{G: 255}
	blue  = rgb.Color{B: 255}
)

func nearly(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// forwardView looks from the origin along +z, so screen x/y follow world x/y.
func forwardView() *WorldView {
	return NewWorldView(mathutil.Vec3{}, mathutil.Vec3{0, 0, 100}, 250)
}

func mustProject(t *testing.T, wv *WorldView, b geometry.Ball) BallProjection {
	t.Helper()
	bp, ok := ProjectBall(wv, b)
	if !ok {
		t.Fatalf("ball %+v did not project", b)
	}
	return bp
}

func ballTracer(t *testing.T, wv *WorldView, center mathutil.Vec3, r float64, c rgb.Color) *BoneTracer {
	t.Helper()
	return NewBallTracer(mustProject(t, wv, geometry.Ball{Center: center, Radius: r, Color: c}))
}

// spyTracer wraps a tracer and counts calls.
type spyTracer struct {
	inner  Tracer
	traces int
	prunes int
}

func (s *spyTracer) tracer() {}

func (s *spyTracer) Bounds() Bounds { return s.inner.Bounds() }

func (s *spyTracer) Prune(p RenderingParameters) Tracer {
	s.prunes++
	return pruneBounds(s, p)
}

func (s *spyTracer) Trace(x, y float64, ray mathutil.Vec3) (Hit, bool) {
	s.traces++
	return s.inner.Trace(x, y, ray)
}

// traceImage renders t over a size×size image with a transparent background.
func traceImage(t Tracer, wv *WorldView, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	Draw(t, wv, img, img.Bounds())
	return img
}

func sameImages(t *testing.T, a, b *image.NRGBA) {
	t.Helper()
	if a.Bounds() != b.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) differs: %v vs %v", x, y, a.NRGBAAt(x, y), b.NRGBAAt(x, y))
			}
		}
	}
}

func countOpaque(img *image.NRGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

// creature is a small scene framed like an avatar: centered and scaled into
// a size×size image.
func creature(t *testing.T, wv *WorldView, size int) Tracer {
	t.Helper()
	a := geometry.NewArena()
	head := a.Add(geometry.Ball{Center: mathutil.Vec3{-15, -10, 100}, Radius: 8, Color: red})
	neck := a.Add(geometry.Ball{Center: mathutil.Vec3{0, 0, 105}, Radius: 5, Color: green})
	tail := a.Add(geometry.Ball{Center: mathutil.Vec3{25, 15, 110}, Radius: 3, Color: blue})
	eye := a.Add(geometry.Ball{Center: mathutil.Vec3{-17, -12, 92}, Radius: 2, Color: rgb.Black})

	fig := geometry.NewFigure(a)
	fig.AddBall(eye)
	fig.AddBone(geometry.NewBone(head, neck))
	fig.AddBone(geometry.NonLinearYBone(neck, tail, mathutil.Gamma{Gamma: 2.5, T: 0.7}))

	g := NewFigureTracer(wv, fig)
	half := float64(size) / 2
	return NewTranslatingTracer(wv, NewScalingTracer(wv, g, 0.4), half, half)
}

// boxTracer hits everywhere inside its bounds at a fixed depth.
type boxTracer struct {
	b      Bounds
	depth  float64
	color  rgb.Color
	traces int
}

func (t *boxTracer) tracer() {}

func (t *boxTracer) Bounds() Bounds { return t.b }

func (t *boxTracer) Prune(p RenderingParameters) Tracer { return pruneBounds(t, p) }

func (t *boxTracer) Trace(x, y float64, _ mathutil.Vec3) (Hit, bool) {
	t.traces++
	if !t.b.ContainsPoint(x, y) {
		return Hit{}, false
	}
	return Hit{Depth: t.depth, Color: t.color}, true
}

func box(x0, y0, x1, y1, z0, z1 float64) Bounds {
	return Bounds{XMin: x0, XMax: x1, YMin: y0, YMax: y1, ZMin: z0, ZMax: z1}
}
