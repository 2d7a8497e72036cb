package render

import (
	"fmt"
	"math"

	"unicorn-renderer/internal/mathutil"
)

// FacetTracer is a uniform n×n grid over a screen rectangle. Each cell holds
// the tracers whose bounds overlap it. Only GroupTracer.Prune builds these.
type FacetTracer struct {
	grid   Bounds
	n      int
	nf     float64
	cells  []*GroupTracer
	bounds Bounds
}

func NewFacetTracer(grid Bounds, n int) *FacetTracer {
	if n < 1 {
		panic(fmt.Sprintf("render: facet resolution %d", n))
	}
	return &FacetTracer{
		grid:   grid,
		n:      n,
		nf:     float64(n),
		cells:  make([]*GroupTracer, n*n),
		bounds: EmptyBounds(),
	}
}

func (f *FacetTracer) IsEmpty() bool { return f.bounds.Empty }

// Add puts t into every cell its bounds overlap.
func (f *FacetTracer) Add(t Tracer) {
	b := t.Bounds()
	if b.Empty {
		return
	}
	f.bounds = f.bounds.Union(b)

	minX, minY := f.cellCoords(b.XMin, b.YMin)
	maxX, maxY := f.cellCoords(b.XMax, b.YMax)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			i := y*f.n + x
			if f.cells[i] == nil {
				f.cells[i] = NewGroupTracer()
			}
			f.cells[i].Add(t)
		}
	}
}

// cellCoords buckets a screen point, clamping to the grid edge.
func (f *FacetTracer) cellCoords(x, y float64) (int, int) {
	return f.bucket(x, f.grid.XMin, f.grid.Dx()), f.bucket(y, f.grid.YMin, f.grid.Dy())
}

func (f *FacetTracer) bucket(v, lo, span float64) int {
	if span <= 0 {
		return 0
	}
	c := math.Floor(f.nf * (v - lo) / span)
	return int(math.Min(f.nf-1, math.Max(0, c)))
}

func (f *FacetTracer) filledCells() int {
	n := 0
	for _, c := range f.cells {
		if c != nil {
			n++
		}
	}
	return n
}

func (f *FacetTracer) Bounds() Bounds { return f.bounds }

func (f *FacetTracer) Prune(p RenderingParameters) Tracer {
	return pruneBounds(f, p)
}

func (f *FacetTracer) Trace(x, y float64, ray mathutil.Vec3) (Hit, bool) {
	cx, cy := f.cellCoords(x, y)
	cell := f.cells[cy*f.n+cx]
	if cell == nil {
		return Hit{}, false
	}
	return cell.Trace(x, y, ray)
}
