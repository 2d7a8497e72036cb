package mathutil

import "math"

// Mat3 is a 3×3 matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
// Value type for zero heap allocation.
type Mat3 [9]float64

// Mat3Columns builds the matrix whose columns are a, b and c.
func Mat3Columns(a, b, c Vec3) Mat3 {
	return Mat3{
		a[0], b[0], c[0],
		a[1], b[1], c[1],
		a[2], b[2], c[2],
	}
}

// singularEps is the smallest pivot Solve accepts.
const singularEps = 1e-12

// Solve returns x with M × x = b using Gaussian elimination with partial
// pivoting. ok is false when the system is singular.
func (m Mat3) Solve(b Vec3) (x Vec3, ok bool) {
	a := [3][4]float64{
		{m[0], m[1], m[2], b[0]},
		{m[3], m[4], m[5], b[1]},
		{m[6], m[7], m[8], b[2]},
	}

	for col := 0; col < 3; col++ {
		pivot := col
		for r := col + 1; r < 3; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < singularEps {
			return Vec3{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		for r := col + 1; r < 3; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < 4; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}

	for r := 2; r >= 0; r-- {
		s := a[r][3]
		for c := r + 1; c < 3; c++ {
			s -= a[r][c] * x[c]
		}
		x[r] = s / a[r][r]
	}

	return x, true
}

// IntersectPlaneLine intersects the plane origin + a·u + b·v with the line
// p + t·d. It returns (a, b, t); ok is false when the line is parallel to
// the plane.
func IntersectPlaneLine(origin, u, v, p, d Vec3) (Vec3, bool) {
	m := Mat3Columns(u, v, d.Scale(-1))
	return m.Solve(p.Sub(origin))
}
