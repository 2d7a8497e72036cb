package render

import (
	"unicorn-renderer/internal/mathutil"
)

// TranslatingTracer draws its source shifted by (DX, DY) screen units.
type TranslatingTracer struct {
	source Tracer
	DX, DY float64
	bounds Bounds
	wv     *WorldView
}

func NewTranslatingTracer(wv *WorldView, source Tracer, dx, dy float64) *TranslatingTracer {
	return &TranslatingTracer{
		source: source,
		DX:     dx,
		DY:     dy,
		bounds: source.Bounds().Translated(dx, dy),
		wv:     wv,
	}
}

func (t *TranslatingTracer) Bounds() Bounds { return t.bounds }

func (t *TranslatingTracer) Prune(p RenderingParameters) Tracer {
	pruned := t.source.Prune(p.Translated(t.DX, t.DY))
	if pruned == nil {
		return nil
	}
	if pruned == t.source {
		return t
	}
	return NewTranslatingTracer(t.wv, pruned, t.DX, t.DY)
}

func (t *TranslatingTracer) Trace(x, y float64, _ mathutil.Vec3) (Hit, bool) {
	x -= t.DX
	y -= t.DY
	return t.source.Trace(x, y, t.wv.Ray(x, y))
}
