// Package scene reads JSON scene descriptions: the balls and bones of a
// figure, how to pose it and how to point the camera at it.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"unicorn-renderer/internal/mathutil"
	"unicorn-renderer/internal/raster"
	"unicorn-renderer/internal/rgb"
)

var (
	// ErrUnknownBall is returned when a bone, constraint or camera refers to
	// a ball the scene does not define.
	ErrUnknownBall = errors.New("unknown ball")

	// ErrInvalid is returned for any other malformed scene.
	ErrInvalid = errors.New("invalid scene")
)

// Scene is a parsed scene file.
type Scene struct {
	Name string `json:"name"`

	// Exactly one of Camera and Framing must be set.
	Camera  *Camera  `json:"camera,omitempty"`
	Framing *Framing `json:"framing,omitempty"`

	Background *Background `json:"background,omitempty"`

	Balls       []BallSpec   `json:"balls"`
	Bones       []BoneSpec   `json:"bones"`
	Show        []string     `json:"show,omitempty"` // balls drawn on their own
	Constraints []Constraint `json:"constraints,omitempty"`
	Rotations   []Rotation   `json:"rotations,omitempty"`
}

// Camera places the camera explicitly. Zoom is the screen scale at a 256
// pixel frame; it defaults to 1.
type Camera struct {
	Position    mathutil.Vec3 `json:"position"`
	LookAt      mathutil.Vec3 `json:"look_at"`
	FocalLength float64       `json:"focal_length"`
	Zoom        float64       `json:"zoom,omitempty"`
}

// Framing derives the camera from two balls of the figure, the way avatars
// are framed: ScaleFactor in [0.5, 3] zooms from full body to head shot and
// the angles (degrees) orbit the camera around the head.
type Framing struct {
	Head        string  `json:"head"`
	Shoulder    string  `json:"shoulder"`
	ScaleFactor float64 `json:"scale_factor"`
	XAngle      float64 `json:"x_angle"`
	YAngle      float64 `json:"y_angle"`
	FocalLength float64 `json:"focal_length"`
}

// Background selects what is drawn behind the figure. The first set field
// wins: Image, Landscape, Color.
type Background struct {
	Image     string     `json:"image,omitempty"`
	Landscape *Landscape `json:"landscape,omitempty"`
	Color     *Color     `json:"color,omitempty"`
}

// Landscape is a sky and land backdrop; see raster.Landscape.
type Landscape struct {
	SkyHue    float64 `json:"sky_hue"`
	SkySat    float64 `json:"sky_sat"`
	LandHue   float64 `json:"land_hue"`
	LandSat   float64 `json:"land_sat"`
	LandLight float64 `json:"land_light"`
	Horizon   float64 `json:"horizon"`
}

func (l Landscape) Raster() raster.Landscape {
	return raster.Landscape{
		SkyHue:    l.SkyHue,
		SkySat:    l.SkySat,
		LandHue:   l.LandHue,
		LandSat:   l.LandSat,
		LandLight: l.LandLight,
		Horizon:   l.Horizon,
	}
}

type BallSpec struct {
	Name   string        `json:"name"`
	Center mathutil.Vec3 `json:"center"`
	Radius float64       `json:"radius"`
	Color  Color         `json:"color"`
}

// BoneSpec connects two balls. XGamma and YGamma bend the bone.
type BoneSpec struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	XGamma *mathutil.Gamma `json:"x_gamma,omitempty"`
	YGamma *mathutil.Gamma `json:"y_gamma,omitempty"`
}

// Constraint operations.
const (
	OpDistance = "distance" // centers Value apart
	OpGap      = "gap"      // surfaces Value apart
	OpSphere   = "sphere"   // center on the surface of Other
)

// Constraint moves Ball relative to Other. Constraints apply in order,
// before rotations.
type Constraint struct {
	Ball  string  `json:"ball"`
	Op    string  `json:"op"`
	Other string  `json:"other"`
	Value float64 `json:"value,omitempty"`
}

// Rotation turns the whole figure by Angle degrees about Axis ("x", "y"
// or "z") through the center of the Pivot ball.
type Rotation struct {
	Pivot string  `json:"pivot"`
	Angle float64 `json:"angle"`
	Axis  string  `json:"axis"`
}

// Color is an rgb.Color read from "#rrggbb" or [hue, saturation, lightness].
type Color rgb.Color

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := rgb.Parse(s)
		if err != nil {
			return err
		}
		*c = Color(v)
		return nil
	}

	var hsl [3]float64
	if err := json.Unmarshal(data, &hsl); err != nil {
		return fmt.Errorf("scene: color %s: want \"#rrggbb\" or [h, s, l]", data)
	}
	*c = Color(rgb.HSL(hsl[0], hsl[1], hsl[2]))
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(rgb.Color(c).String())
}

// Load reads and validates a scene file. A scene without a name is named
// after the file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	if sc.Name == "" {
		base := filepath.Base(path)
		sc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return sc, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Scene, error) {
	var sc Scene
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks references and ranges.
func (sc *Scene) Validate() error {
	names := make(map[string]bool, len(sc.Balls))
	for _, b := range sc.Balls {
		if b.Name == "" {
			return fmt.Errorf("scene: unnamed ball: %w", ErrInvalid)
		}
		if names[b.Name] {
			return fmt.Errorf("scene: duplicate ball %q: %w", b.Name, ErrInvalid)
		}
		if b.Radius < 0 {
			return fmt.Errorf("scene: ball %q radius %v: %w", b.Name, b.Radius, ErrInvalid)
		}
		names[b.Name] = true
	}

	ref := func(what, name string) error {
		if !names[name] {
			return fmt.Errorf("scene: %s %q: %w", what, name, ErrUnknownBall)
		}
		return nil
	}

	for _, b := range sc.Bones {
		if err := ref("bone end", b.From); err != nil {
			return err
		}
		if err := ref("bone end", b.To); err != nil {
			return err
		}
	}
	for _, name := range sc.Show {
		if err := ref("shown ball", name); err != nil {
			return err
		}
	}
	for _, c := range sc.Constraints {
		if err := ref("constrained ball", c.Ball); err != nil {
			return err
		}
		if err := ref("constraint target", c.Other); err != nil {
			return err
		}
		switch c.Op {
		case OpDistance, OpGap, OpSphere:
		default:
			return fmt.Errorf("scene: constraint op %q: %w", c.Op, ErrInvalid)
		}
	}
	for _, r := range sc.Rotations {
		if err := ref("rotation pivot", r.Pivot); err != nil {
			return err
		}
		if _, err := ParseAxis(r.Axis); err != nil {
			return err
		}
	}

	switch {
	case sc.Camera != nil && sc.Framing != nil:
		return fmt.Errorf("scene: both camera and framing set: %w", ErrInvalid)
	case sc.Camera != nil:
		if sc.Camera.FocalLength <= 0 {
			return fmt.Errorf("scene: focal length %v: %w", sc.Camera.FocalLength, ErrInvalid)
		}
		if sc.Camera.Position == sc.Camera.LookAt {
			return fmt.Errorf("scene: camera at its look-at point: %w", ErrInvalid)
		}
		if sc.Camera.Zoom < 0 {
			return fmt.Errorf("scene: zoom %v: %w", sc.Camera.Zoom, ErrInvalid)
		}
	case sc.Framing != nil:
		f := sc.Framing
		if err := ref("framing head", f.Head); err != nil {
			return err
		}
		if err := ref("framing shoulder", f.Shoulder); err != nil {
			return err
		}
		if f.FocalLength <= 0 {
			return fmt.Errorf("scene: focal length %v: %w", f.FocalLength, ErrInvalid)
		}
		if f.ScaleFactor < 0.5 || f.ScaleFactor > 3 {
			return fmt.Errorf("scene: scale factor %v outside [0.5, 3]: %w", f.ScaleFactor, ErrInvalid)
		}
	default:
		return fmt.Errorf("scene: no camera or framing: %w", ErrInvalid)
	}

	return nil
}

// ParseAxis reads "x", "y" or "z".
func ParseAxis(s string) (mathutil.Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return mathutil.AxisX, nil
	case "y":
		return mathutil.AxisY, nil
	case "z":
		return mathutil.AxisZ, nil
	}
	return 0, fmt.Errorf("scene: axis %q: %w", s, ErrInvalid)
}
