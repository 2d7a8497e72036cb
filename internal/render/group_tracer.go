package render

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"unicorn-renderer/internal/mathutil"
)

// GroupTracer is a collection of tracers kept sorted by nearest depth so a
// trace can stop once the remaining children are all behind the best hit.
type GroupTracer struct {
	tracers []Tracer
	bounds  Bounds
}

func NewGroupTracer(ts ...Tracer) *GroupTracer {
	g := &GroupTracer{bounds: EmptyBounds()}
	g.Add(ts...)
	return g
}

// Add inserts tracers, keeping depth order. Equal depths keep insertion
// order. Groups must not be modified once handed to a draw.
func (g *GroupTracer) Add(ts ...Tracer) {
	for _, t := range ts {
		if t == nil {
			continue
		}
		b := t.Bounds()
		i := sort.Search(len(g.tracers), func(i int) bool {
			return g.tracers[i].Bounds().ZMin > b.ZMin
		})
		g.tracers = append(g.tracers, nil)
		copy(g.tracers[i+1:], g.tracers[i:])
		g.tracers[i] = t
		g.bounds = g.bounds.Union(b)
	}
}

func (g *GroupTracer) Len() int { return len(g.tracers) }

func (g *GroupTracer) Bounds() Bounds { return g.bounds }

// Prune flattens every surviving leaf of the group, nested groups included,
// into a facet grid over the viewport. A group outside the viewport is
// dropped as a whole.
func (g *GroupTracer) Prune(p RenderingParameters) Tracer {
	if !p.Contains(g.bounds) {
		return nil
	}

	grid := g.bounds
	if !p.Infinite() {
		grid = p.rect()
	}

	f := NewFacetTracer(grid, facetCount(p, grid))
	g.flattenInto(p, f)
	if f.IsEmpty() {
		return nil
	}

	if log := Logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("render: group pruned",
			"children", len(g.tracers), "facet", f.n, "cells", f.filledCells())
	}
	return f
}

func (g *GroupTracer) flattenInto(p RenderingParameters, f *FacetTracer) {
	if !p.Contains(g.bounds) {
		return
	}
	for _, t := range g.tracers {
		if sub, ok := t.(*GroupTracer); ok {
			sub.flattenInto(p, f)
			continue
		}
		pruned := t.Prune(p)
		if pruned == nil {
			continue
		}
		if sub, ok := pruned.(*GroupTracer); ok {
			sub.flattenInto(p, f)
			continue
		}
		f.Add(pruned)
	}
}

// facetCount caps the grid resolution so no cell is narrower than a pixel.
func facetCount(p RenderingParameters, grid Bounds) int {
	n := p.facetResolution()
	if p.PixelSize > 0 {
		if fit := int(math.Min(grid.Dx(), grid.Dy()) / p.PixelSize); fit < n {
			n = fit
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (g *GroupTracer) Trace(x, y float64, ray mathutil.Vec3) (Hit, bool) {
	var best Hit
	found := false

	for _, t := range g.tracers {
		b := t.Bounds()
		if found && b.ZMin > best.Depth {
			break
		}
		if b.ZMax <= 0 || !b.ContainsPoint(x, y) {
			continue
		}
		if h, ok := t.Trace(x, y, ray); ok && (!found || h.Depth < best.Depth) {
			best, found = h, true
		}
	}

	return best, found
}
