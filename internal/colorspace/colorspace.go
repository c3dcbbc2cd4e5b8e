// Package colorspace converts between RGB and HSV.
//
// Hue is expressed on a byte scale: [0,256) covers the full color wheel, so
// animation counters can step it by whole units and wrap at 256. Saturation
// and value are fractions in [0,1].
package colorspace

import (
	"fmt"
	"math"
)

// HueScale is the size of the full hue circle.
const HueScale = 256.0

// RGB is one element color. Channels are bytes, so they are always in [0,255].
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{}
	White = RGB{R: 255, G: 255, B: 255}
)

// Hex renders the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luma returns perceived brightness in [0,1].
func (c RGB) Luma() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}

// RGBToHSV converts a color to hue in [0,256), saturation and value in [0,1].
func RGBToHSV(c RGB) (h, s, v float64) {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	cmax := math.Max(r, math.Max(g, b))
	cmin := math.Min(r, math.Min(g, b))
	delta := cmax - cmin

	var sector float64
	switch {
	case delta == 0:
		sector = 0
	case cmax == r:
		sector = math.Mod((g-b)/delta, 6)
		if sector < 0 {
			sector += 6
		}
	case cmax == g:
		sector = (b-r)/delta + 2
	default:
		sector = (r-g)/delta + 4
	}
	h = sector / 6 * HueScale
	if h >= HueScale {
		h -= HueScale
	}

	if cmax > 0 {
		s = delta / cmax
	}
	return h, s, cmax
}

// HSVToRGB converts hue (wrapped modulo 256), saturation and value back to RGB.
func HSVToRGB(h, s, v float64) RGB {
	s = clamp01(s)
	v = clamp01(v)

	if s == 0 {
		gray := toByte(v)
		return RGB{R: gray, G: gray, B: gray}
	}

	h = math.Mod(h, HueScale)
	if h < 0 {
		h += HueScale
	}

	hv := h / HueScale * 6.0
	i := math.Floor(hv)
	f := hv - i
	p := v * (1.0 - s)
	q := v * (1.0 - s*f)
	t := v * (1.0 - s*(1.0-f))

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return RGB{R: toByte(r), G: toByte(g), B: toByte(b)}
}

// Hue returns the fully saturated, full brightness color for hue h.
func Hue(h int) RGB {
	return HSVToRGB(float64(h), 1, 1)
}

// HueValue returns the fully saturated color for hue h at brightness v,
// where v is on the byte scale [0,255].
func HueValue(h int, v float64) RGB {
	return HSVToRGB(float64(h), 1, v/255.0)
}

func toByte(f float64) uint8 {
	return uint8(math.Round(clamp01(f) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
