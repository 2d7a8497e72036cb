package mathutil

import (
	"fmt"
	"math"
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Axis names the coordinate a rotation keeps fixed.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// swap permutes v so the plane of rotation around a becomes the first two
// coordinates and the fixed coordinate ends up last.
func (v Vec3) swap(a Axis) Vec3 {
	switch a {
	case AxisX:
		return Vec3{v[1], v[2], v[0]}
	case AxisY:
		return Vec3{v[0], v[2], v[1]}
	}
	return v
}

// unswap is the inverse permutation of swap for the same axis.
func (v Vec3) unswap(a Axis) Vec3 {
	switch a {
	case AxisX:
		return Vec3{v[2], v[0], v[1]}
	case AxisY:
		return Vec3{v[0], v[2], v[1]}
	}
	return v
}

// RotateAround rotates v by angle radians around the line through pivot
// parallel to axis.
func (v Vec3) RotateAround(pivot Vec3, angle float64, axis Axis) Vec3 {
	s := v.Sub(pivot).swap(axis)
	sin, cos := math.Sincos(angle)

	r := Vec3{
		s[0]*cos - s[1]*sin,
		s[0]*sin + s[1]*cos,
		s[2],
	}

	return r.unswap(axis).Add(pivot)
}
