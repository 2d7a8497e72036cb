package render

import (
	"unicorn-renderer/internal/geometry"
)

// NewFigureTracer builds the scene tree of a posed figure: one tracer per free
// ball and per linear bone, and a nested group for each polygonized
// non-linear bone. Balls that cannot be projected are left out.
func NewFigureTracer(wv *WorldView, fig *geometry.Figure) *GroupTracer {
	g := NewGroupTracer()
	skipped := 0

	for _, id := range fig.Balls {
		bp, ok := ProjectBall(wv, fig.Arena.Ball(id))
		if !ok {
			skipped++
			continue
		}
		g.Add(NewBallTracer(bp))
	}

	for _, bone := range fig.Bones {
		segs := bone.Segments(fig.Arena)
		parts := NewGroupTracer()
		for _, s := range segs {
			t, ok := segmentTracer(wv, s)
			if !ok {
				skipped++
				continue
			}
			parts.Add(t)
		}
		switch {
		case parts.Len() == 0:
		case len(segs) == 1:
			g.Add(parts.tracers[0])
		default:
			g.Add(parts)
		}
	}

	if skipped > 0 {
		Logger().Warn("render: unprojectable geometry skipped", "count", skipped)
	}
	Logger().Debug("render: figure tracer built", "bounds", g.bounds, "children", g.Len())
	return g
}

func segmentTracer(wv *WorldView, s geometry.Segment) (*BoneTracer, bool) {
	p1, ok := ProjectBall(wv, s.A)
	if !ok {
		return nil, false
	}
	p2, ok := ProjectBall(wv, s.B)
	if !ok {
		return nil, false
	}
	return NewBoneTracer(p1, p2), true
}
