package render

import "math"

// DefaultFacetResolution is the number of facet grid cells per side.
const DefaultFacetResolution = 16

// RenderingParameters is the viewport being resolved, in the coordinate
// frame of the tracer it is handed to.
type RenderingParameters struct {
	PixelSize  float64
	XMin, XMax float64
	YMin, YMax float64

	// FacetResolution overrides DefaultFacetResolution when positive.
	FacetResolution int
}

// NewRenderingParameters covers b's screen rectangle plus a one pixel margin.
func NewRenderingParameters(pixelSize float64, b Bounds) RenderingParameters {
	return RenderingParameters{
		PixelSize: pixelSize,
		XMin:      b.XMin - pixelSize,
		XMax:      b.XMax + pixelSize,
		YMin:      b.YMin - pixelSize,
		YMax:      b.YMax + pixelSize,
	}
}

// Contains reports whether b overlaps the viewport and is not entirely
// behind the camera.
func (p RenderingParameters) Contains(b Bounds) bool {
	if b.Empty {
		return false
	}
	return b.XMax >= p.XMin && b.XMin <= p.XMax &&
		b.YMax >= p.YMin && b.YMin <= p.YMax &&
		b.ZMax > 0
}

// Scale expresses the same viewport in the frame of a child drawn s times
// larger.
func (p RenderingParameters) Scale(s float64) RenderingParameters {
	return RenderingParameters{
		PixelSize:       p.PixelSize / s,
		XMin:            p.XMin / s,
		XMax:            p.XMax / s,
		YMin:            p.YMin / s,
		YMax:            p.YMax / s,
		FacetResolution: p.FacetResolution,
	}
}

// Translated expresses the same viewport in the frame of a child shifted by
// (dx, dy).
func (p RenderingParameters) Translated(dx, dy float64) RenderingParameters {
	p.XMin -= dx
	p.XMax -= dx
	p.YMin -= dy
	p.YMax -= dy
	return p
}

// Infinite reports whether any edge of the viewport is unbounded.
func (p RenderingParameters) Infinite() bool {
	return math.IsInf(p.XMin, 0) || math.IsInf(p.XMax, 0) ||
		math.IsInf(p.YMin, 0) || math.IsInf(p.YMax, 0)
}

// rect is the viewport as depth-less bounds.
func (p RenderingParameters) rect() Bounds {
	return Bounds{XMin: p.XMin, XMax: p.XMax, YMin: p.YMin, YMax: p.YMax}
}

func (p RenderingParameters) facetResolution() int {
	if p.FacetResolution > 0 {
		return p.FacetResolution
	}
	return DefaultFacetResolution
}
