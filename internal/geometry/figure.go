package geometry

import "unicorn-renderer/internal/mathutil"

// Figure is an ordered scene of free balls and bones over one arena.
type Figure struct {
	Arena *Arena
	Balls []BallID
	Bones []Bone
}

func NewFigure(a *Arena) *Figure {
	return &Figure{Arena: a}
}

// AddBall adds a free-standing ball to the scene.
func (f *Figure) AddBall(id BallID) {
	f.Balls = append(f.Balls, id)
}

func (f *Figure) AddBone(b Bone) {
	f.Bones = append(f.Bones, b)
}

// BallIDs lists every ball referenced by the figure once, in first-use order.
func (f *Figure) BallIDs() []BallID {
	seen := make(map[BallID]bool)
	var ids []BallID
	add := func(id BallID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, id := range f.Balls {
		add(id)
	}
	for _, b := range f.Bones {
		add(b.B1)
		add(b.B2)
	}
	return ids
}

// RotateAround rotates every referenced ball exactly once, however many
// bones share it.
func (f *Figure) RotateAround(pivot mathutil.Vec3, angle float64, axis mathutil.Axis) {
	for _, id := range f.BallIDs() {
		f.Arena.RotateAround(id, pivot, angle, axis)
	}
}
