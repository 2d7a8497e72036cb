// Package geometry holds the posed primitives the tracer consumes: balls
// stored once in an arena and bones referencing them by handle.
package geometry

import (
	"fmt"

	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/rgb"
)

// Ball is a sphere with a flat color.
type Ball struct {
	Name   string
	Center mathutil.Vec3
	Radius float64
	Color  rgb.Color
}

// BallID is a handle into an Arena.
type BallID int

// Arena stores every ball of a figure exactly once. Joints shared by several
// bones refer to the same BallID, so moving a joint is observed by all of them.
type Arena struct {
	balls []Ball
}

func NewArena() *Arena {
	return &Arena{}
}

// Add stores b and returns its handle.
func (a *Arena) Add(b Ball) BallID {
	a.balls = append(a.balls, b)
	return BallID(len(a.balls) - 1)
}

// Len returns the number of stored balls.
func (a *Arena) Len() int {
	return len(a.balls)
}

// Ball returns a copy of the ball behind id. Panics on a foreign handle.
func (a *Arena) Ball(id BallID) Ball {
	return a.balls[a.index(id)]
}

func (a *Arena) Center(id BallID) mathutil.Vec3 {
	return a.balls[a.index(id)].Center
}

func (a *Arena) SetCenter(id BallID, c mathutil.Vec3) {
	a.balls[a.index(id)].Center = c
}

// SetDistance moves id along the line from other so that the centers end up
// d apart. Coincident centers are left alone.
func (a *Arena) SetDistance(id, other BallID, d float64) {
	oc := a.Center(other)
	span := a.Center(id).Sub(oc)
	l := span.Len()
	if l == 0 {
		return
	}
	a.SetCenter(id, oc.Add(span.Scale(d/l)))
}

// SetGap leaves gap units between the surfaces of id and other.
func (a *Arena) SetGap(id, other BallID, gap float64) {
	a.SetDistance(id, other, a.Ball(id).Radius+a.Ball(other).Radius+gap)
}

// MoveToSphere puts the center of id on the surface of other.
func (a *Arena) MoveToSphere(id, other BallID) {
	a.SetDistance(id, other, a.Ball(other).Radius)
}

// RotateAround rotates the center of id around pivot.
func (a *Arena) RotateAround(id BallID, pivot mathutil.Vec3, angle float64, axis mathutil.Axis) {
	a.SetCenter(id, a.Center(id).RotateAround(pivot, angle, axis))
}

func (a *Arena) index(id BallID) int {
	if id < 0 || int(id) >= len(a.balls) {
		panic(fmt.Sprintf("geometry: ball handle %d outside arena of %d", id, len(a.balls)))
	}
	return int(id)
}
