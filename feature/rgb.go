package feature

import (
	"math"

	"github.com/hupe1980/pointgo/points"
)

// RGBIntensity returns the channel shares r/(r+g+b), g/(r+g+b), b/(r+g+b)
// for one color. A pure black color yields NaN shares.
func RGBIntensity(c points.Color) (ri, gi, bi float64) {
	sum := float64(c.R) + float64(c.G) + float64(c.B)
	return float64(c.R) / sum, float64(c.G) / sum, float64(c.B) / sum
}

// RelativeLuminance returns the photometric luminance of one color using the
// Rec. 709 coefficients.
func RelativeLuminance(c points.Color) float64 {
	return 0.2125*float64(c.R) + 0.7154*float64(c.G) + 0.0721*float64(c.B)
}

// HSV converts one color to hue (degrees, [0, 360)), saturation ([0, 1]) and
// value (percent of full brightness, [0, 100]).
func HSV(c points.Color) (h, s, v float64) {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	switch {
	case delta == 0:
		h = 0
	case max == r:
		h = 60 * (g - b) / delta
		if h < 0 {
			h += 360
		}
	case max == g:
		h = 60*(b-r)/delta + 120
	default:
		h = 60*(r-g)/delta + 240
	}

	if max > 0 {
		s = 1 - min/max
	}
	v = max / 255 * 100
	return h, s, v
}
