package render

import (
	"math"

	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/rgb"
)

// BoneTracer traces the tapered capsule swept by a sphere moving from ball 1
// to ball 2 while its radius changes linearly. With both ends equal it is a
// plain sphere.
//
// In camera space the sphere at bone parameter f has center a + f·w and
// radius ra + f·dr. A point z·v on a unit ray v lies on it when
//
//	c2·f² + (c3·z + c4)·f + z² + c5·z + c6 = 0
//
// with c3 and c5 depending on the ray and the rest precomputed here.
type BoneTracer struct {
	a, w   mathutil.Vec3
	ra, dr float64

	c2, c4, c6 float64
	c2i        float64 // 1/c2, zero when the bone degenerates to a sphere

	color1, color2 rgb.Color
	bounds         Bounds
}

func NewBoneTracer(b1, b2 BallProjection) *BoneTracer {
	a := b1.CenterCS
	w := b2.CenterCS.Sub(a)
	ra := b1.Base.Radius
	dr := b2.Base.Radius - ra

	t := &BoneTracer{
		a:      a,
		w:      w,
		ra:     ra,
		dr:     dr,
		c2:     w.Dot(w) - dr*dr,
		c4:     2*a.Dot(w) - 2*ra*dr,
		c6:     a.Dot(a) - ra*ra,
		color1: b1.Base.Color,
		color2: b2.Base.Color,
		bounds: BoundsForBalls(b1, b2),
	}
	if t.c2 > 0 {
		t.c2i = 1 / t.c2
	}
	return t
}

// NewBallTracer traces a single ball.
func NewBallTracer(b BallProjection) *BoneTracer {
	return NewBoneTracer(b, b)
}

func (t *BoneTracer) Bounds() Bounds { return t.bounds }

func (t *BoneTracer) Prune(p RenderingParameters) Tracer {
	return pruneBounds(t, p)
}

// Trace finds the nearest point of the union of all spheres f ∈ [0,1].
// The nearest hit of that family is either on an end cap (f = 0 or 1) or
// at an f where the hit distance is stationary, which is where the ray
// touches the cone tangent to both end spheres. Both cone candidates are
// tried; each candidate f is then resolved against its own sphere.
func (t *BoneTracer) Trace(_, _ float64, ray mathutil.Vec3) (Hit, bool) {
	c3 := -2 * ray.Dot(t.w)
	c5 := -2 * ray.Dot(t.a)

	best := math.Inf(1)
	bestF := 0.0
	try := func(f float64) {
		if f < 0 || f > 1 || t.ra+f*t.dr < 0 {
			return
		}
		z, ok := nearestRoot(c3*f+c5, t.c2*f*f+t.c4*f+t.c6)
		if ok && z < best {
			best, bestF = z, f
		}
	}

	try(0)
	try(1)

	if t.c2i != 0 {
		// Eliminating f from g = 0 and ∂g/∂f = 0 leaves a quadratic in z.
		qa := 1 - c3*c3*t.c2i/4
		qb := c5 - c3*t.c4*t.c2i/2
		qc := t.c6 - t.c4*t.c4*t.c2i/4
		fAt := func(z float64) float64 {
			return -(c3*z + t.c4) * t.c2i / 2
		}

		if math.Abs(qa) < 1e-12 {
			if qb != 0 {
				try(fAt(-qc / qb))
			}
		} else if disc := qb*qb - 4*qa*qc; disc >= 0 {
			s := math.Sqrt(disc)
			try(fAt((-qb - s) / (2 * qa)))
			try(fAt((-qb + s) / (2 * qa)))
		}
	}

	if math.IsInf(best, 1) {
		return Hit{}, false
	}

	m := t.a.Add(t.w.Scale(bestF))
	return Hit{
		Depth:     best,
		Direction: ray.Scale(best).Sub(m),
		Color:     t.color1.Mix(t.color2, bestF),
	}, true
}

// nearestRoot solves z² + p·z + q = 0 for the smallest positive z, falling
// back to the far root when the near one lies behind the camera.
func nearestRoot(p, q float64) (float64, bool) {
	disc := p*p/4 - q
	if disc < 0 {
		return 0, false
	}
	s := math.Sqrt(disc)
	if z := -p/2 - s; z > 0 {
		return z, true
	}
	if z := -p/2 + s; z > 0 {
		return z, true
	}
	return 0, false
}
