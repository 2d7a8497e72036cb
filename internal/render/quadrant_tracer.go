package render

import (
	"math"

	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/raster"
)

// QuadrantTracer renders one quarter of a 2·size square image into a
// size×size one. Quadrants are numbered 1 (top left), 2 (top right),
// 3 (bottom left) and 4 (bottom right).
type QuadrantTracer struct {
	source   Tracer
	quadrant int
	size     float64
	bounds   Bounds
}

// QuadrantOffset returns the pixel offset of quadrant q in the full image.
// It panics unless q is in 1..4.
func QuadrantOffset(q, size int) (int, int) {
	p := raster.QuadrantOffset(q, size)
	return p.X, p.Y
}

func NewQuadrantTracer(wv *WorldView, source Tracer, size, quadrant int) *QuadrantTracer {
	dx, dy := QuadrantOffset(quadrant, size)
	shifted := NewTranslatingTracer(wv, source, -float64(dx), -float64(dy))
	return newQuadrant(shifted, quadrant, float64(size))
}

func newQuadrant(source Tracer, quadrant int, size float64) *QuadrantTracer {
	clip := Bounds{XMax: size, YMax: size, ZMin: math.Inf(-1), ZMax: math.Inf(1)}
	return &QuadrantTracer{
		source:   source,
		quadrant: quadrant,
		size:     size,
		bounds:   source.Bounds().Intersection(clip),
	}
}

func (t *QuadrantTracer) Quadrant() int { return t.quadrant }

func (t *QuadrantTracer) Bounds() Bounds { return t.bounds }

func (t *QuadrantTracer) Prune(p RenderingParameters) Tracer {
	pruned := t.source.Prune(p)
	if pruned == nil {
		return nil
	}
	if pruned == t.source {
		return t
	}
	q := newQuadrant(pruned, t.quadrant, t.size)
	if q.bounds.Empty {
		return nil
	}
	return q
}

func (t *QuadrantTracer) Trace(x, y float64, ray mathutil.Vec3) (Hit, bool) {
	if x < 0 || y < 0 || x >= t.size || y >= t.size {
		return Hit{}, false
	}
	return t.source.Trace(x, y, ray)
}
