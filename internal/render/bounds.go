package render

import (
	"fmt"
	"image"
	"math"
)

// Bounds is a screen rectangle plus a depth interval. The zero value is not
// empty; use EmptyBounds for the union identity.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	Empty      bool
}

func EmptyBounds() Bounds {
	return Bounds{Empty: true}
}

// BoundsForBall is the screen box of the ball's footprint and the depth
// range [z - r, distance + r]. Balls behind the camera use their camera
// space x/y since their projection is mirrored.
func BoundsForBall(bp BallProjection) Bounds {
	x, y := bp.X(), bp.Y()
	if bp.CenterCS[2] < 0 {
		x, y = bp.CenterCS[0], bp.CenterCS[1]
	}
	pr := bp.ProjectedRadius
	r := bp.Base.Radius

	return Bounds{
		XMin: x - pr,
		XMax: x + pr,
		YMin: y - pr,
		YMax: y + pr,
		ZMin: bp.CenterCS[2] - r,
		ZMax: bp.Z() + r,
	}
}

func BoundsForBalls(bps ...BallProjection) Bounds {
	b := EmptyBounds()
	for _, bp := range bps {
		b = b.Union(BoundsForBall(bp))
	}
	return b
}

// RectBounds covers an integer pixel rectangle at every depth.
func RectBounds(r image.Rectangle) Bounds {
	if r.Empty() {
		return EmptyBounds()
	}
	return Bounds{
		XMin: float64(r.Min.X),
		XMax: float64(r.Max.X),
		YMin: float64(r.Min.Y),
		YMax: float64(r.Max.Y),
		ZMin: math.Inf(-1),
		ZMax: math.Inf(1),
	}
}

func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty {
		return o
	}
	if o.Empty {
		return b
	}
	return Bounds{
		XMin: math.Min(b.XMin, o.XMin),
		XMax: math.Max(b.XMax, o.XMax),
		YMin: math.Min(b.YMin, o.YMin),
		YMax: math.Max(b.YMax, o.YMax),
		ZMin: math.Min(b.ZMin, o.ZMin),
		ZMax: math.Max(b.ZMax, o.ZMax),
	}
}

// Intersection is empty when either side is empty or the boxes are disjoint.
func (b Bounds) Intersection(o Bounds) Bounds {
	if b.Empty || o.Empty {
		return EmptyBounds()
	}
	r := Bounds{
		XMin: math.Max(b.XMin, o.XMin),
		XMax: math.Min(b.XMax, o.XMax),
		YMin: math.Max(b.YMin, o.YMin),
		YMax: math.Min(b.YMax, o.YMax),
		ZMin: math.Max(b.ZMin, o.ZMin),
		ZMax: math.Min(b.ZMax, o.ZMax),
	}
	if r.XMin > r.XMax || r.YMin > r.YMax || r.ZMin > r.ZMax {
		return EmptyBounds()
	}
	return r
}

// ContainsPoint reports whether screen point (x, y) lies in the rectangle.
func (b Bounds) ContainsPoint(x, y float64) bool {
	return !b.Empty && x >= b.XMin && x <= b.XMax && y >= b.YMin && y <= b.YMax
}

// Scaled multiplies every coordinate, depth included, by s.
func (b Bounds) Scaled(s float64) Bounds {
	if b.Empty {
		return b
	}
	return Bounds{
		XMin: b.XMin * s,
		XMax: b.XMax * s,
		YMin: b.YMin * s,
		YMax: b.YMax * s,
		ZMin: b.ZMin * s,
		ZMax: b.ZMax * s,
	}
}

// Translated shifts the screen rectangle; depth is unchanged.
func (b Bounds) Translated(dx, dy float64) Bounds {
	if b.Empty {
		return b
	}
	b.XMin += dx
	b.XMax += dx
	b.YMin += dy
	b.YMax += dy
	return b
}

func (b Bounds) Dx() float64 { return b.XMax - b.XMin }
func (b Bounds) Dy() float64 { return b.YMax - b.YMin }

func (b Bounds) String() string {
	if b.Empty {
		return "Bounds(empty)"
	}
	return fmt.Sprintf("Bounds(x=[%.2f,%.2f] y=[%.2f,%.2f] z=[%.2f,%.2f])",
		b.XMin, b.XMax, b.YMin, b.YMax, b.ZMin, b.ZMax)
}
