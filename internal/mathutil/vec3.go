package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Unit returns v scaled to length 1. The zero vector has no direction;
// callers must check Len first.
func (v Vec3) Unit() Vec3 {
	l := 1 / v.Len()
	return Vec3{v[0] * l, v[1] * l, v[2] * l}
}

// NearlyEqual reports whether every component differs by at most eps.
func (a Vec3) NearlyEqual(b Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) <= eps &&
		math.Abs(a[1]-b[1]) <= eps &&
		math.Abs(a[2]-b[2]) <= eps
}

// CrossAxes returns two unit vectors spanning the plane perpendicular to the
// unit direction n. The first one is always horizontal (zero Y component);
// the second is n × first, so (first, second, n) is the screen frame used by
// the camera: x right, y down, n into the screen.
//
// A direction without X and Z components (looking straight up or down)
// gets first = (1, 0, 0).
func (n Vec3) CrossAxes() (Vec3, Vec3) {
	x, y, z := n[0], n[1], n[2]

	x1, x3 := 1.0, 0.0
	if x != 0 {
		x3 = math.Sqrt(1 / (z*z/(x*x) + 1))
		if x > 0 {
			x3 = -x3
		}
		x1 = -x3 * z / x
	} else if z != 0 {
		x1 = math.Sqrt(1 / (x*x/(z*z) + 1))
		if z < 0 {
			x1 = -x1
		}
		x3 = -x1 * x / z
	}

	ux := Vec3{x1, 0, x3}
	// ux × n points up in this frame; flip it to get a y axis pointing down.
	uy := Vec3{x3 * y, x1*z - x3*x, -x1 * y}

	return ux, uy
}
