package render

import (
	"fmt"

	"unicorn-renderer/internal/mathutil"
)

// ScalingTracer draws its source scale times larger on screen. Depth is
// scaled by the same factor.
type ScalingTracer struct {
	source Tracer
	scale  float64
	bounds Bounds
	wv     *WorldView
}

func NewScalingTracer(wv *WorldView, source Tracer, scale float64) *ScalingTracer {
	if scale <= 0 {
		panic(fmt.Sprintf("render: non-positive scale %v", scale))
	}
	return &ScalingTracer{
		source: source,
		scale:  scale,
		bounds: source.Bounds().Scaled(scale),
		wv:     wv,
	}
}

func (t *ScalingTracer) Bounds() Bounds { return t.bounds }

func (t *ScalingTracer) Prune(p RenderingParameters) Tracer {
	pruned := t.source.Prune(p.Scale(t.scale))
	if pruned == nil {
		return nil
	}
	if pruned == t.source {
		return t
	}
	return NewScalingTracer(t.wv, pruned, t.scale)
}

func (t *ScalingTracer) Trace(x, y float64, _ mathutil.Vec3) (Hit, bool) {
	x /= t.scale
	y /= t.scale

	h, ok := t.source.Trace(x, y, t.wv.Ray(x, y))
	if !ok {
		return Hit{}, false
	}
	h.Depth *= t.scale
	return h, true
}
