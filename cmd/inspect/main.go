package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"unicorn-renderer/internal/avatar"
	"unicorn-renderer/internal/render"
	"unicorn-renderer/internal/scene"
)

func main() {
	size := flag.Int("size", 256, "Frame size in pixels")
	facets := flag.Int("facets", render.DefaultFacetResolution, "Facet grid resolution")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-size N] [-facets N] scene.json")
		os.Exit(2)
	}

	sc, err := scene.Load(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	m, err := sc.Build()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	view, err := avatar.Frame(sc, m, *size)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	wv := view.WorldView
	fmt.Printf("Scene %q: balls=%d, shown=%d, bones=%d\n", sc.Name, m.Figure.Arena.Len(), len(m.Figure.Balls), len(m.Figure.Bones))
	fmt.Printf("  Camera: (%.1f, %.1f, %.1f), focal=%.1f, scale=%.3f, shift=(%.1f, %.1f)\n",
		wv.CameraPosition[0], wv.CameraPosition[1], wv.CameraPosition[2], wv.FocalLength,
		view.Scale, view.ShiftX, view.ShiftY)

	for _, b := range sc.Balls {
		ball, _ := m.Ball(b.Name)
		bp, ok := render.ProjectBall(wv, ball)
		if !ok {
			fmt.Printf("  %-12s behind the camera\n", b.Name)
			continue
		}
		x := bp.X()*view.Scale + view.ShiftX
		y := bp.Y()*view.Scale + view.ShiftY
		fmt.Printf("  %-12s center=(%.1f, %.1f, %.1f) r=%.1f → screen (%.1f, %.1f) r=%.1f depth=%.1f\n",
			b.Name, ball.Center[0], ball.Center[1], ball.Center[2], ball.Radius,
			x, y, bp.ProjectedRadius*view.Scale, bp.Z())
	}

	t := view.Tracer(m)
	fmt.Printf("  Bounds: %s\n", t.Bounds())
	printStats("Tree", render.CountNodes(t))

	p := render.NewRenderingParameters(1, render.RectBounds(image.Rect(0, 0, *size, *size)))
	p.FacetResolution = *facets
	pruned := t.Prune(p)
	if pruned == nil {
		fmt.Println("  Pruned: nothing inside the frame")
		return
	}
	printStats("Pruned", render.CountNodes(pruned))
}

func printStats(label string, s render.Stats) {
	fmt.Printf("  %s: bones=%d, groups=%d, facets=%d (cells=%d), scalings=%d, translatings=%d, quadrants=%d\n",
		label, s.Bones, s.Groups, s.Facets, s.Cells, s.Scalings, s.Translatings, s.Quadrants)
}
