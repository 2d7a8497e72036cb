package geometry

import (
	"math"
	"testing"

	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/rgb"
)

func TestArena_SharedJointRotatesOnce(t *testing.T) {
	a := NewArena()
	hip := a.Add(Ball{Name: "hip", Center: mathutil.Vec3{10, 0, 0}, Radius: 5})
	knee := a.Add(Ball{Name: "knee", Center: mathutil.Vec3{10, 20, 0}, Radius: 4})
	shoulder := a.Add(Ball{Name: "shoulder", Center: mathutil.Vec3{-10, 0, 0}, Radius: 6})

	f := NewFigure(a)
	f.AddBone(NewBone(hip, knee))
	f.AddBone(NewBone(shoulder, hip))
	f.AddBall(hip)

	if ids := f.BallIDs(); len(ids) != 3 {
		t.Fatalf("expected 3 distinct balls, got %v", ids)
	}

	f.RotateAround(mathutil.Vec3{}, math.Pi/2, mathutil.AxisZ)

	want := mathutil.Vec3{0, 10, 0}
	if got := a.Center(hip); !got.NearlyEqual(want, 1e-12) {
		t.Fatalf("shared hip rotated to %v, want %v", got, want)
	}
	if got := f.Bones[1].B2; a.Center(got) != a.Center(hip) {
		t.Fatal("bones sharing a joint disagree on its position")
	}
}

func TestArena_SetDistanceAndGap(t *testing.T) {
	a := NewArena()
	o := a.Add(Ball{Center: mathutil.Vec3{1, 1, 1}, Radius: 2})
	b := a.Add(Ball{Center: mathutil.Vec3{1, 11, 1}, Radius: 3})

	a.SetDistance(b, o, 4)
	if got := a.Center(b); !got.NearlyEqual(mathutil.Vec3{1, 5, 1}, 1e-12) {
		t.Fatalf("SetDistance: %v", got)
	}

	a.SetGap(b, o, 1)
	if d := a.Center(b).Sub(a.Center(o)).Len(); math.Abs(d-6) > 1e-12 {
		t.Fatalf("SetGap: distance %v, want 6", d)
	}

	a.MoveToSphere(b, o)
	if d := a.Center(b).Sub(a.Center(o)).Len(); math.Abs(d-2) > 1e-12 {
		t.Fatalf("MoveToSphere: distance %v, want 2", d)
	}
}

func TestArena_ForeignHandlePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewArena().Ball(3)
}

func TestBone_LinearSegments(t *testing.T) {
	a := NewArena()
	b1 := a.Add(Ball{Center: mathutil.Vec3{0, 0, 0}, Radius: 1})
	b2 := a.Add(Ball{Center: mathutil.Vec3{0, 0, 10}, Radius: 2})

	segs := NewBone(b1, b2).Segments(a)
	if len(segs) != 1 || segs[0].A.Radius != 1 || segs[0].B.Radius != 2 {
		t.Fatalf("linear bone: %+v", segs)
	}

	// A warp that is the identity is still linear.
	segs = NonLinearYBone(b1, b2, mathutil.Gamma{Gamma: 2, T: 0}).Segments(a)
	if len(segs) != 1 {
		t.Fatalf("identity warp produced %d segments", len(segs))
	}
}

func TestBone_NonLinearSegments(t *testing.T) {
	a := NewArena()
	red := rgb.Color{R: 255}
	blue := rgb.Color{B: 255}
	b1 := a.Add(Ball{Center: mathutil.Vec3{0, 0, 0}, Radius: 2, Color: red})
	b2 := a.Add(Ball{Center: mathutil.Vec3{0, 40, 40}, Radius: 6, Color: blue})

	bone := NonLinearYBone(b1, b2, mathutil.Gamma{Gamma: 3, T: 0.8})
	segs := bone.Segments(a)

	if len(segs) < 2 || len(segs) > boneSteps {
		t.Fatalf("unexpected segment count %d", len(segs))
	}
	if segs[0].A.Center != a.Center(b1) || segs[0].A.Color != red {
		t.Fatalf("polyline must start at b1: %+v", segs[0].A)
	}
	last := segs[len(segs)-1].B
	if !last.Center.NearlyEqual(a.Center(b2), 1e-9) || last.Color != blue || math.Abs(last.Radius-6) > 1e-12 {
		t.Fatalf("polyline must end at b2: %+v", last)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].A.Center != segs[i-1].B.Center {
			t.Fatalf("segments %d and %d are not connected", i-1, i)
		}
	}
	// Merging must keep neighbouring segments at least ~1° apart.
	for i := 1; i < len(segs); i++ {
		d1 := segs[i-1].B.Center.Sub(segs[i-1].A.Center).Unit()
		d2 := segs[i].B.Center.Sub(segs[i].A.Center).Unit()
		if d1.Dot(d2) > 0.99999 {
			t.Fatalf("segments %d and %d are collinear and should have been merged", i-1, i)
		}
	}
}
