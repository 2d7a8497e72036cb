package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"unicorn-renderer/internal/avatar"
	"unicorn-renderer/internal/backdrop"
	"unicorn-renderer/internal/batch"
	"unicorn-renderer/internal/render"
	"unicorn-renderer/internal/rgb"
)

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("invalid config")

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir       string `json:"base_dir"`
	SceneDir      string `json:"scene_dir"`
	OutputDir     string `json:"output_dir"`
	BackgroundDir string `json:"background_dir"`

	// Background: an image name or path, else a solid color. Scenes may
	// override both.
	Background      string `json:"background"`
	BackgroundColor string `json:"background_color"`

	// Render settings
	RenderSize      int    `json:"render_size"`
	Supersample     int    `json:"supersample"`
	Format          string `json:"format"`
	Workers         int    `json:"workers"`
	Parallel        bool   `json:"parallel"`
	FacetResolution int    `json:"facet_resolution"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.SceneDir != "" {
		c.SceneDir = flags.SceneDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Parallel {
		c.Parallel = true
	}

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.SceneDir = resolvePath(c.BaseDir, c.SceneDir, "scenes")
		c.OutputDir = resolvePath(c.BaseDir, c.OutputDir, "renders")
	}
	if c.BackgroundDir == "" && c.SceneDir != "" {
		c.BackgroundDir = filepath.Join(c.SceneDir, "backgrounds")
	} else if c.BaseDir != "" {
		c.BackgroundDir = resolvePath(c.BaseDir, c.BackgroundDir, "backgrounds")
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Format == "" {
		c.Format = batch.FormatWebP
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.FacetResolution <= 0 {
		c.FacetResolution = render.DefaultFacetResolution
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Format != batch.FormatWebP && c.Format != batch.FormatPNG {
		return fmt.Errorf("config: format %q: %w", c.Format, ErrInvalid)
	}
	if c.BackgroundColor != "" {
		if _, err := rgb.Parse(c.BackgroundColor); err != nil {
			return fmt.Errorf("config: background_color: %w: %v", ErrInvalid, err)
		}
	}
	return nil
}

// Batch builds the settings of a batch run. backdrops resolves background
// image names and may be nil.
func (c *Config) Batch(backdrops *backdrop.Cache) (batch.Config, error) {
	if err := c.Validate(); err != nil {
		return batch.Config{}, err
	}

	opts := avatar.Options{
		Size:              c.RenderSize,
		Background:        true,
		DefaultBackground: c.Background,
		Backdrops:         backdrops,
		Parallel:          c.Parallel,
		Supersample:       c.Supersample,
		FacetResolution:   c.FacetResolution,
	}
	if c.BackgroundColor != "" {
		col, err := rgb.Parse(c.BackgroundColor)
		if err != nil {
			return batch.Config{}, fmt.Errorf("config: background_color: %w", err)
		}
		opts.DefaultColor = &col
	}

	return batch.Config{
		OutputDir: c.OutputDir,
		Format:    c.Format,
		Workers:   c.Workers,
		Options:   opts,
	}, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir     string
	SceneDir    string
	OutputDir   string
	Background  string
	Format      string
	Size        int
	Supersample int
	Workers     int
	Parallel    bool
}

func resolvePath(base, p, def string) string {
	switch {
	case p == "":
		return filepath.Join(base, def)
	case filepath.IsAbs(p):
		return p
	default:
		return filepath.Join(base, p)
	}
}

// detectBaseDir looks for a scenes directory next to the executable or in
// the working directory.
func detectBaseDir() string {
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if isDir(filepath.Join(base, "scenes")) {
				return base
			}
		}
	}

	cwd, _ := os.Getwd()
	if isDir(filepath.Join(cwd, "scenes")) {
		return cwd
	}
	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
