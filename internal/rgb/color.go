// Package rgb holds the 8-bit colors carried by balls and produced by tracing.
package rgb

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// HSL builds a color from hue in degrees and saturation/lightness in percent.
// Zero saturation yields white.
func HSL(hue, saturation, lightness float64) Color {
	if saturation == 0 {
		return White
	}

	h := hue / 360
	s := saturation / 100
	l := lightness / 100

	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2

	return Color{
		R: clamp255(255 * hueChannel(m1, m2, h+1.0/3)),
		G: clamp255(255 * hueChannel(m1, m2, h)),
		B: clamp255(255 * hueChannel(m1, m2, h-1.0/3)),
	}
}

func hueChannel(m1, m2, h float64) float64 {
	h -= math.Floor(h)
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 0.5:
		return m2
	case h < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-h)*6
	}
	return m1
}

// Parse reads "#rrggbb" or "rrggbb".
func Parse(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("rgb: parse %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("rgb: parse %q: %w", s, err)
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// Mix blends linearly from c (f=0) to o (f=1).
func (c Color) Mix(o Color, f float64) Color {
	return Color{
		R: clamp255(float64(c.R) + f*(float64(o.R)-float64(c.R))),
		G: clamp255(float64(c.G) + f*(float64(o.G)-float64(c.G))),
		B: clamp255(float64(c.B) + f*(float64(o.B)-float64(c.B))),
	}
}

// Lighten adds v to every channel, saturating at 255.
func (c Color) Lighten(v uint8) Color {
	return Color{addSat(c.R, v), addSat(c.G, v), addSat(c.B, v)}
}

// Darken subtracts v from every channel, saturating at 0.
func (c Color) Darken(v uint8) Color {
	return Color{subSat(c.R, v), subSat(c.G, v), subSat(c.B, v)}
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func addSat(a, b uint8) uint8 {
	if s := int(a) + int(b); s < 255 {
		return uint8(s)
	}
	return 255
}

func subSat(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return 0
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
