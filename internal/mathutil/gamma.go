package mathutil

import "math"

// Gamma is the warp g(x) = T·x^Gamma + (1-T)·x. It maps [0,1] onto itself
// and bends the straight line between two points into a curve.
type Gamma struct {
	Gamma float64
	T     float64
}

// Apply evaluates the warp at x.
func (g Gamma) Apply(x float64) float64 {
	return g.T*math.Pow(x, g.Gamma) + (1-g.T)*x
}

// Linear reports whether the warp is the identity.
func (g Gamma) Linear() bool {
	return g.T == 0 || g.Gamma == 1
}
