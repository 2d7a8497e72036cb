package scene

import (
	"fmt"

	"unicorn-renderer/internal/geometry"
	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/rgb"
)

// Model is a built scene: the posed figure and the handles of its balls by
// name.
type Model struct {
	Figure *geometry.Figure
	IDs    map[string]geometry.BallID
}

// Ball returns the posed ball called name.
func (m *Model) Ball(name string) (geometry.Ball, bool) {
	id, ok := m.IDs[name]
	if !ok {
		return geometry.Ball{}, false
	}
	return m.Figure.Arena.Ball(id), true
}

// Build places the balls, applies constraints then rotations, and assembles
// the figure. The scene itself is not modified, so Build may be called
// again for a fresh copy.
func (sc *Scene) Build() (*Model, error) {
	arena := geometry.NewArena()
	m := &Model{
		Figure: geometry.NewFigure(arena),
		IDs:    make(map[string]geometry.BallID, len(sc.Balls)),
	}

	for _, b := range sc.Balls {
		m.IDs[b.Name] = arena.Add(geometry.Ball{
			Name:   b.Name,
			Center: b.Center,
			Radius: b.Radius,
			Color:  rgb.Color(b.Color),
		})
	}

	lookup := func(name string) (geometry.BallID, error) {
		id, ok := m.IDs[name]
		if !ok {
			return 0, fmt.Errorf("scene: ball %q: %w", name, ErrUnknownBall)
		}
		return id, nil
	}

	for _, c := range sc.Constraints {
		id, err := lookup(c.Ball)
		if err != nil {
			return nil, err
		}
		other, err := lookup(c.Other)
		if err != nil {
			return nil, err
		}
		switch c.Op {
		case OpDistance:
			arena.SetDistance(id, other, c.Value)
		case OpGap:
			arena.SetGap(id, other, c.Value)
		case OpSphere:
			arena.MoveToSphere(id, other)
		default:
			return nil, fmt.Errorf("scene: constraint op %q: %w", c.Op, ErrInvalid)
		}
	}

	for _, name := range sc.Show {
		id, err := lookup(name)
		if err != nil {
			return nil, err
		}
		m.Figure.AddBall(id)
	}

	for _, b := range sc.Bones {
		from, err := lookup(b.From)
		if err != nil {
			return nil, err
		}
		to, err := lookup(b.To)
		if err != nil {
			return nil, err
		}
		m.Figure.AddBone(newBone(from, to, b))
	}

	for _, r := range sc.Rotations {
		pivot, err := lookup(r.Pivot)
		if err != nil {
			return nil, err
		}
		axis, err := ParseAxis(r.Axis)
		if err != nil {
			return nil, err
		}
		m.Figure.RotateAround(arena.Center(pivot), mathutil.Deg2Rad(r.Angle), axis)
	}

	return m, nil
}

func newBone(from, to geometry.BallID, spec BoneSpec) geometry.Bone {
	switch {
	case spec.XGamma != nil && spec.YGamma != nil:
		return geometry.NonLinearBone(from, to, *spec.XGamma, *spec.YGamma)
	case spec.YGamma != nil:
		return geometry.NonLinearYBone(from, to, *spec.YGamma)
	case spec.XGamma != nil:
		b := geometry.NewBone(from, to)
		x := *spec.XGamma
		b.XFunc = &x
		return b
	}
	return geometry.NewBone(from, to)
}
