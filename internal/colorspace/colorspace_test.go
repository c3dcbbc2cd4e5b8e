package colorspace

import (
	"testing"
)

func TestRoundTripWithinOne(t *testing.T) {
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 7 {
				in := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				out := HSVToRGB(RGBToHSV(in))
				if diff(in.R, out.R) > 1 || diff(in.G, out.G) > 1 || diff(in.B, out.B) > 1 {
					t.Fatalf("round trip %v -> %v", in, out)
				}
			}
		}
	}
}

func TestRoundTripExtremes(t *testing.T) {
	for _, c := range []RGB{Black, White, {R: 255}, {G: 255}, {B: 255}, {R: 255, B: 1}, {R: 1, G: 2, B: 3}} {
		out := HSVToRGB(RGBToHSV(c))
		if diff(c.R, out.R) > 1 || diff(c.G, out.G) > 1 || diff(c.B, out.B) > 1 {
			t.Fatalf("round trip %v -> %v", c, out)
		}
	}
}

func TestHueZeroIsRed(t *testing.T) {
	if got := HSVToRGB(0, 1.0, 1.0); got != (RGB{R: 255}) {
		t.Fatalf("HSVToRGB(0,1,1)=%v want (255,0,0)", got)
	}
}

func TestHueWraps(t *testing.T) {
	cases := map[float64]float64{
		256:  0,
		300:  44,
		-10:  246,
		512:  0,
		-256: 0,
	}
	for in, want := range cases {
		if got, exp := HSVToRGB(in, 1, 1), HSVToRGB(want, 1, 1); got != exp {
			t.Fatalf("hue %f -> %v, want %v", in, got, exp)
		}
	}
}

func TestBlackHasZeroSaturation(t *testing.T) {
	h, s, v := RGBToHSV(Black)
	if h != 0 || s != 0 || v != 0 {
		t.Fatalf("black -> (%f,%f,%f)", h, s, v)
	}
}

func TestHueRange(t *testing.T) {
	h, _, _ := RGBToHSV(RGB{R: 255, B: 1})
	if h < 0 || h >= HueScale {
		t.Fatalf("hue out of range: %f", h)
	}
}

func TestHueValueScalesBrightness(t *testing.T) {
	if got := HueValue(0, 0); got != Black {
		t.Fatalf("zero value should be black, got %v", got)
	}
	if got := HueValue(0, 255); got != (RGB{R: 255}) {
		t.Fatalf("full value red, got %v", got)
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{R: 255, G: 16, B: 1}).Hex(); got != "#ff1001" {
		t.Fatalf("Hex=%s", got)
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
