package render

import (
	"math"

	"unicorn-renderer/internal/geometry"
	"unicorn-renderer/internal/mathutil"
)

// SphereProjection places a sphere in camera space and estimates its
// footprint on the screen plane.
type SphereProjection struct {
	CenterCS          mathutil.Vec3 // center in camera space (x along UX, y along UY, z along N)
	ProjectedCenterCS mathutil.Vec3 // (x, y, focal length) on the screen plane
	ProjectedCenterOS mathutil.Vec3 // the same point in world space
	ProjectedRadius   float64
}

// ProjectSphere projects center/radius through wv. ok is false when the
// camera→center line does not cross the screen plane or the center sits
// on the camera.
//
// The projected radius is the largest screen deviation of four points on the
// sphere's camera-facing rim, not the exact silhouette. It overestimates
// slightly for nearby spheres, which keeps bounds conservative.
func ProjectSphere(wv *WorldView, center mathutil.Vec3, radius float64) (SphereProjection, bool) {
	cam2c := center.Sub(wv.CameraPosition)
	dist := cam2c.Len()
	if dist == 0 {
		return SphereProjection{}, false
	}

	intf, ok := mathutil.IntersectPlaneLine(wv.Zero, wv.UX, wv.UY, wv.CameraPosition, cam2c)
	if !ok {
		return SphereProjection{}, false
	}

	sp := SphereProjection{
		ProjectedCenterOS: wv.CameraPosition.Add(cam2c.Scale(intf[2])),
	}
	pcs := mathutil.Vec3{intf[0], intf[1], wv.FocalLength}

	dir := 1.0
	if intf[2] < 0 {
		dir = -1
	}
	sp.CenterCS = pcs.Scale(dir * dist / pcs.Len())

	if intf[2] < 0 {
		pcs[0], pcs[1] = -pcs[0], -pcs[1]
	}
	sp.ProjectedCenterCS = pcs

	if radius == 0 {
		return sp, true
	}

	closest := wv.CameraPosition.Add(cam2c.Scale(1 - radius/dist))
	u1, u2 := cam2c.Scale(1 / dist).CrossAxes()

	r := 0.0
	for _, c1 := range [2]float64{-1, 1} {
		for _, c2 := range [2]float64{-1, 1} {
			p := closest.Add(u1.Scale(c1 * radius)).Add(u2.Scale(c2 * radius))
			pr, ok := ProjectSphere(wv, p, 0)
			if !ok {
				continue
			}
			r = math.Max(r, math.Abs(pr.X()-pcs[0]))
			r = math.Max(r, math.Abs(pr.Y()-pcs[1]))
		}
	}
	sp.ProjectedRadius = r

	return sp, true
}

// X is the projected screen x.
func (sp SphereProjection) X() float64 { return sp.ProjectedCenterCS[0] }

// Y is the projected screen y.
func (sp SphereProjection) Y() float64 { return sp.ProjectedCenterCS[1] }

// Z is the distance from the camera to the center.
func (sp SphereProjection) Z() float64 { return sp.CenterCS.Len() }

// BallProjection is a SphereProjection that remembers its ball.
type BallProjection struct {
	SphereProjection
	Base geometry.Ball
}

func ProjectBall(wv *WorldView, b geometry.Ball) (BallProjection, bool) {
	sp, ok := ProjectSphere(wv, b.Center, b.Radius)
	if !ok {
		return BallProjection{}, false
	}
	return BallProjection{SphereProjection: sp, Base: b}, true
}
