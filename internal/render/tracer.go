package render

import (
	"fmt"

	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/rgb"
)

// Hit is the nearest surface found along a ray.
type Hit struct {
	Depth     float64       // distance along the ray
	Direction mathutil.Vec3 // outward, from the bone axis to the hit point
	Color     rgb.Color
}

// Tracer is a node of the renderable scene tree. The set of node kinds is
// closed: BoneTracer, GroupTracer, FacetTracer, ScalingTracer,
// TranslatingTracer and QuadrantTracer.
//
// Prune returns a tracer holding only what overlaps p, or nil when nothing
// does. It never modifies the receiver. Trace reports the nearest hit at
// screen point (x, y) along ray.
type Tracer interface {
	Bounds() Bounds
	Prune(p RenderingParameters) Tracer
	Trace(x, y float64, ray mathutil.Vec3) (Hit, bool)

	tracer()
}

func (*BoneTracer) tracer()        {}
func (*GroupTracer) tracer()       {}
func (*FacetTracer) tracer()       {}
func (*ScalingTracer) tracer()     {}
func (*TranslatingTracer) tracer() {}
func (*QuadrantTracer) tracer()    {}

// pruneBounds keeps t as a whole when its bounds overlap p.
func pruneBounds(t Tracer, p RenderingParameters) Tracer {
	if p.Contains(t.Bounds()) {
		return t
	}
	return nil
}

// Stats counts the nodes of a tracer tree by kind.
type Stats struct {
	Bones, Groups, Facets, Cells, Scalings, Translatings, Quadrants int
}

// CountNodes walks t. Shared children of facet cells are counted once per cell.
func CountNodes(t Tracer) Stats {
	var s Stats
	s.add(t)
	return s
}

func (s *Stats) add(t Tracer) {
	switch t := t.(type) {
	case nil:
	case *BoneTracer:
		s.Bones++
	case *GroupTracer:
		s.Groups++
		for _, c := range t.tracers {
			s.add(c)
		}
	case *FacetTracer:
		s.Facets++
		for _, c := range t.cells {
			if c != nil {
				s.Cells++
				for _, cc := range c.tracers {
					s.add(cc)
				}
			}
		}
	case *ScalingTracer:
		s.Scalings++
		s.add(t.source)
	case *TranslatingTracer:
		s.Translatings++
		s.add(t.source)
	case *QuadrantTracer:
		s.Quadrants++
		s.add(t.source)
	default:
		panic(fmt.Sprintf("render: unknown tracer %T", t))
	}
}
