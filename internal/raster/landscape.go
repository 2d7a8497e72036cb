package raster

import (
	"math"

	"unicorn-renderer/internal/rgb"
)

// Landscape is a sky over land background. Hues are in degrees,
// saturations and lightness in percent. Horizon is the fraction of the
// frame height where the land starts.
type Landscape struct {
	SkyHue, SkySat              float64
	LandHue, LandSat, LandLight float64
	Horizon                     float64
}

// DrawLandscape paints the sky as a vertical gradient from light to dark and
// the land as a horizontal gradient from LandLight to half of it.
func (c *Canvas) DrawLandscape(l Landscape) {
	skyTop := rgb.HSL(l.SkyHue, l.SkySat, 60)
	skyBottom := rgb.HSL(l.SkyHue, l.SkySat, 10)
	landLeft := rgb.HSL(l.LandHue, l.LandSat, l.LandLight)
	landRight := rgb.HSL(l.LandHue, l.LandSat, l.LandLight/2)

	fsize := math.Max(1, float64(c.Size-1))
	horizon := int(float64(c.Size) * l.Horizon)

	b := c.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		fy := y + c.Offset.Y
		sky := skyTop.Mix(skyBottom, float64(fy)/fsize).NRGBA()
		for x := b.Min.X; x < b.Max.X; x++ {
			if fy < horizon {
				c.SetNRGBA(x, y, sky)
				continue
			}
			fx := x + c.Offset.X
			c.SetNRGBA(x, y, landLeft.Mix(landRight, float64(fx)/fsize).NRGBA())
		}
	}
}
