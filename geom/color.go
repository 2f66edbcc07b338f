package geom

import "image/color"

// HueRGB converts a hue in degrees to a fully saturated, full value RGBA
// color. Used for per-entity color ramps.
func HueRGB(hue float64) color.RGBA {
	h := hue
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}

	c := 255.0
	x := c * (1 - abs(mod2(h/60)-1))

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// Lerp blends a towards b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// mod2 reduces x into [0, 2).
func mod2(x float64) float64 {
	for x >= 2 {
		x -= 2
	}
	for x < 0 {
		x += 2
	}
	return x
}
