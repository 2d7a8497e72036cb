package mathutil

import (
	"math"
	"testing"
)

func nearly(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func mulVec(m Mat3, v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// rotation is the textbook rotation matrix in the sense RotateAround uses:
// AxisX turns y toward z, AxisY turns x toward z, AxisZ turns x toward y.
func rotation(axis Axis, a float64) Mat3 {
	s, c := math.Sincos(a)
	switch axis {
	case AxisX:
		return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
	case AxisY:
		return Mat3{c, 0, -s, 0, 1, 0, s, 0, c}
	}
	return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

func TestRotateAround_Inverse(t *testing.T) {
	vectors := []Vec3{{1, 2, 3}, {-4, 0.5, 7}, {0, 0, 0}, {100, -30, 12}}
	pivots := []Vec3{{0, 0, 0}, {1, 1, 1}, {-10, 3, 25}}
	angles := []float64{0, 0.1, math.Pi / 3, math.Pi, -2.5, 7}

	for _, v := range vectors {
		for _, p := range pivots {
			for _, a := range angles {
				for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
					r := v.RotateAround(p, a, axis).RotateAround(p, -a, axis)
					if !r.NearlyEqual(v, 1e-9) {
						t.Fatalf("rotate %v around %v by ±%.3f on %s: got %v", v, p, a, axis, r)
					}
				}
			}
		}
	}
}

func TestRotateAround_MatchesMatrices(t *testing.T) {
	v := Vec3{3, -2, 5}
	a := 0.7
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		got := v.RotateAround(Vec3{}, a, axis)
		want := mulVec(rotation(axis, a), v)
		if !got.NearlyEqual(want, 1e-12) {
			t.Fatalf("axis %s: got %v want %v", axis, got, want)
		}
	}
}

func TestRotateAround_KeepsAxisCoordinate(t *testing.T) {
	v := Vec3{3, -2, 5}
	p := Vec3{1, 1, 1}
	if r := v.RotateAround(p, 1.1, AxisX); r[0] != v[0] {
		t.Fatalf("x changed under AxisX rotation: %v", r)
	}
	if r := v.RotateAround(p, 1.1, AxisY); r[1] != v[1] {
		t.Fatalf("y changed under AxisY rotation: %v", r)
	}
	if r := v.RotateAround(p, 1.1, AxisZ); r[2] != v[2] {
		t.Fatalf("z changed under AxisZ rotation: %v", r)
	}
	if d := v.Sub(p).Len() - v.RotateAround(p, 2.2, AxisY).Sub(p).Len(); !nearly(d, 0, 1e-12) {
		t.Fatalf("distance to pivot not preserved, diff %.3g", d)
	}
}

func TestCrossAxes_Orthonormal(t *testing.T) {
	dirs := []Vec3{
		{0, 0, 1}, {0, 0, -1}, {1, 0, 0}, {-1, 0, 0},
		{1, 2, 3}, {-3, 1, 0.5}, {0.2, -5, 0}, {0, 1, 0}, {0, -1, 0},
	}
	for _, d := range dirs {
		n := d.Unit()
		ux, uy := n.CrossAxes()
		if !nearly(ux.Len(), 1, 1e-12) || !nearly(uy.Len(), 1, 1e-12) {
			t.Fatalf("%v: non-unit axes |ux|=%.15g |uy|=%.15g", n, ux.Len(), uy.Len())
		}
		if !nearly(ux.Dot(uy), 0, 1e-12) || !nearly(ux.Dot(n), 0, 1e-12) || !nearly(uy.Dot(n), 0, 1e-12) {
			t.Fatalf("%v: axes not orthogonal: ux=%v uy=%v", n, ux, uy)
		}
		if ux[1] != 0 {
			t.Fatalf("%v: ux not horizontal: %v", n, ux)
		}
		if !cross(n, ux).NearlyEqual(uy, 1e-12) {
			t.Fatalf("%v: uy != n × ux: %v vs %v", n, uy, cross(n, ux))
		}
	}
}

func TestCrossAxes_LookingForward(t *testing.T) {
	ux, uy := Vec3{0, 0, 1}.CrossAxes()
	if ux != (Vec3{1, 0, 0}) || uy != (Vec3{0, 1, 0}) {
		t.Fatalf("unexpected screen basis ux=%v uy=%v", ux, uy)
	}
}

func TestGamma(t *testing.T) {
	g := Gamma{Gamma: 2, T: 0.5}
	if g.Apply(0) != 0 || !nearly(g.Apply(1), 1, 1e-15) {
		t.Fatalf("gamma must fix the end points: %v %v", g.Apply(0), g.Apply(1))
	}
	if want := 0.5*0.25 + 0.5*0.5; !nearly(g.Apply(0.5), want, 1e-15) {
		t.Fatalf("g(0.5) = %v, want %v", g.Apply(0.5), want)
	}
	if !(Gamma{Gamma: 3, T: 0}).Linear() || g.Linear() {
		t.Fatal("Linear misreports")
	}
}
