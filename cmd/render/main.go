package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"unicorn-renderer/internal/backdrop"
	"unicorn-renderer/internal/batch"
	"unicorn-renderer/internal/config"
	"unicorn-renderer/internal/render"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Render only this scene file")
	testN := flag.Int("test", 0, "Render only first N scenes for testing")
	baseDir := flag.String("base", "", "Path to base directory (default: auto-detect)")
	sceneDir := flag.String("scenes", "", "Scene directory (default: <base>/scenes)")
	outputDir := flag.String("output", "", "Output directory (default: <base>/renders)")
	background := flag.String("background", "", "Default background image name")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	size := flag.Int("size", 0, "Output size in pixels (default: 256)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 1)")
	quadrant := flag.Int("quadrant", 0, "Render only this quadrant 1-4 (default: whole frame)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	parallel := flag.Bool("parallel", false, "Trace the four quadrants of each frame concurrently")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:     *baseDir,
		SceneDir:    *sceneDir,
		OutputDir:   *outputDir,
		Background:  *background,
		Format:      *format,
		Size:        *size,
		Supersample: *supersample,
		Workers:     *workers,
		Parallel:    *parallel,
	})

	if cfg.BaseDir == "" && *sceneFile == "" && *sceneDir == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot find scenes directory. Use -base, -scenes or config.json.")
		os.Exit(1)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	// Collect scenes
	var paths []string
	if *sceneFile != "" {
		paths = []string{*sceneFile}
	} else {
		var err error
		paths, err = batch.Find(cfg.SceneDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing scenes: %v\n", err)
			os.Exit(1)
		}
	}

	// Limit for testing
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
	}

	if len(paths) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	// Build background index
	bgIndex := backdrop.BuildIndex(cfg.BackgroundDir)
	fmt.Printf("Backgrounds: %d indexed\n", bgIndex.Len())

	batchCfg, err := cfg.Batch(backdrop.NewCache(bgIndex))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	batchCfg.Options.Quadrant = *quadrant

	// Print summary
	mode := ""
	if *quadrant != 0 {
		mode = fmt.Sprintf(" (quadrant %d)", *quadrant)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Unicorn ray tracer → %s%s\n", cfg.Format, mode)
	fmt.Printf("Scenes: %d, Size: %d, Workers: %d\n", len(paths), cfg.RenderSize, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, batchCfg, paths)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(paths))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		for _, e := range errors[:min(len(errors), 20)] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		stop()
		os.Exit(1)
	}
}
