package geometry

import (
	"unicorn-renderer/internal/mathutil"
)

const (
	// boneSteps is the number of parameter steps used to polygonize a
	// non-linear bone.
	boneSteps = 255

	// collinearCos is cos(1°): consecutive steps bending less than this are
	// merged into one segment.
	collinearCos = 0.999848
)

// Bone is a tapered capsule between two balls. XFunc and YFunc, when set,
// warp the X and Y coordinates of the midline as a function of the bone
// parameter; radius and color always interpolate linearly.
type Bone struct {
	B1, B2 BallID
	XFunc  *mathutil.Gamma
	YFunc  *mathutil.Gamma
}

func NewBone(b1, b2 BallID) Bone {
	return Bone{B1: b1, B2: b2}
}

func NonLinearBone(b1, b2 BallID, x, y mathutil.Gamma) Bone {
	return Bone{B1: b1, B2: b2, XFunc: &x, YFunc: &y}
}

func NonLinearYBone(b1, b2 BallID, y mathutil.Gamma) Bone {
	return Bone{B1: b1, B2: b2, YFunc: &y}
}

// Linear reports whether the bone can be traced as a single capsule.
func (b Bone) Linear() bool {
	return (b.XFunc == nil || b.XFunc.Linear()) && (b.YFunc == nil || b.YFunc.Linear())
}

// Segment is a straight capsule between two free-standing balls.
type Segment struct {
	A, B Ball
}

// Segments returns the straight pieces the bone is made of: the bone itself
// when it is linear, otherwise a polyline sampled at boneSteps parameter
// steps with near-collinear steps merged.
func (b Bone) Segments(a *Arena) []Segment {
	b1, b2 := a.Ball(b.B1), a.Ball(b.B2)
	if b.Linear() {
		return []Segment{{A: b1, B: b2}}
	}

	points := make([]Ball, boneSteps+1)
	for i := range points {
		points[i] = b.sample(b1, b2, float64(i)/boneSteps)
	}

	var segs []Segment
	start := 0
	for i := 1; i < len(points)-1; i++ {
		run := points[i].Center.Sub(points[start].Center)
		next := points[i+1].Center.Sub(points[i].Center)
		if run.Len() == 0 || next.Len() == 0 {
			continue
		}
		if run.Unit().Dot(next.Unit()) < collinearCos {
			segs = append(segs, Segment{A: points[start], B: points[i]})
			start = i
		}
	}
	segs = append(segs, Segment{A: points[start], B: points[len(points)-1]})

	return segs
}

func (b Bone) sample(b1, b2 Ball, f float64) Ball {
	fx, fy := f, f
	if b.XFunc != nil {
		fx = b.XFunc.Apply(f)
	}
	if b.YFunc != nil {
		fy = b.YFunc.Apply(f)
	}
	span := b2.Center.Sub(b1.Center)

	return Ball{
		Center: mathutil.Vec3{
			b1.Center[0] + fx*span[0],
			b1.Center[1] + fy*span[1],
			b1.Center[2] + f*span[2],
		},
		Radius: b1.Radius + f*(b2.Radius-b1.Radius),
		Color:  b1.Color.Mix(b2.Color, f),
	}
}
