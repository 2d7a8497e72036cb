package batch

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"unicorn-renderer/internal/avatar"
	"unicorn-renderer/internal/raster"
	"unicorn-renderer/internal/render"
	"unicorn-renderer/internal/scene"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Format    string
	Workers   int
	Options   avatar.Options

	// ProgressInterval is how often progress is logged; zero selects two
	// seconds.
	ProgressInterval time.Duration
}

// Result holds the outcome of rendering one scene.
type Result struct {
	Name     string
	Source   string
	Image    string // output path relative to the output directory
	Success  bool
	Error    string
	Coverage float64
	Average  string // average figure color, "#rrggbb"
}

// Find lists the scene files (*.json) directly inside dir, sorted by name.
func Find(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Run renders all scenes using a worker pool. Results are in the order of
// paths. Scenes not started when ctx is canceled fail with its error.
func Run(ctx context.Context, cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := max(cfg.Workers, 1)
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	log := render.Logger()
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("batch: progress", "done", p, "total", total, "per_sec", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = failed(paths[idx], err)
				} else {
					results[idx] = processScene(ctx, cfg, paths[idx])
				}
				processed.Add(1)
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	log.Info("batch: finished", "scenes", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

func failed(path string, err error) Result {
	return Result{Name: stem(path), Source: path, Error: err.Error()}
}

func processScene(ctx context.Context, cfg Config, path string) Result {
	sc, err := scene.Load(path)
	if err != nil {
		render.Logger().Warn("batch: skipping scene", "path", path, "err", err)
		return failed(path, err)
	}

	img, err := avatar.Render(ctx, sc, cfg.Options)
	if err != nil {
		return failed(path, err)
	}

	format := cfg.Format
	if format == "" {
		format = FormatWebP
	}
	rel := stem(path) + "." + format
	out := filepath.Join(cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return failed(path, err)
	}

	f, err := os.Create(out)
	if err != nil {
		return failed(path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return failed(path, err)
	}
	if err := f.Close(); err != nil {
		return failed(path, err)
	}

	res := Result{
		Name:     sc.Name,
		Source:   path,
		Image:    filepath.ToSlash(rel),
		Success:  true,
		Coverage: raster.Coverage(img),
	}
	if c, ok := raster.AverageColor(img); ok {
		res.Average = c.String()
	}
	return res
}

// Encode writes img as WebP (lossless) or PNG.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("batch: webp encode: %w", err)
		}
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("batch: png encode: %w", err)
		}
	default:
		return fmt.Errorf("batch: unknown format %q", format)
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
