package animation

import (
	"github.com/guidoenr/ledwall/internal/colorspace"
	"github.com/guidoenr/ledwall/internal/geometry"
	"github.com/guidoenr/ledwall/internal/grid"
)

const (
	stripeHueStep = 20
	ledHueStep    = 5
)

// rainbowStripes gives each stripe one hue, offset by its index, and rotates
// the whole wheel one step per frame. Audio is ignored.
type rainbowStripes struct {
	stripes int
	hue     hueCounter
}

func newRainbowStripes(stripes, _ int) *rainbowStripes {
	return &rainbowStripes{stripes: stripes}
}

func (v *rainbowStripes) Reset() { v.hue.reset() }

func (v *rainbowStripes) Update(_ Input, g *grid.Grid) {
	hue := v.hue.next()
	for i := 0; i < v.stripes; i++ {
		c := colorspace.Hue(hue + stripeHueStep*i)
		stripe := g.Stripe(i)
		for j := range stripe {
			stripe[j] = c
		}
	}
}

// rainbowLEDs runs the wheel along every element, stripe after stripe.
type rainbowLEDs struct {
	stripes int
	leds    int
	hue     hueCounter
}

func newRainbowLEDs(stripes, leds int) *rainbowLEDs {
	return &rainbowLEDs{stripes: stripes, leds: leds}
}

func (v *rainbowLEDs) Reset() { v.hue.reset() }

func (v *rainbowLEDs) Update(_ Input, g *grid.Grid) {
	hue := v.hue.next()
	for i := 0; i < v.stripes; i++ {
		for j := 0; j < v.leds; j++ {
			g.Set(i, j, colorspace.Hue(hue+ledHueStep*j+v.leds*i))
		}
	}
}

// rainbowCircular colors by distance from the wall center so the wheel
// appears as concentric rings.
type rainbowCircular struct {
	stripes int
	leds    int
	field   geometry.Field
	hue     hueCounter
}

func newRainbowCircular(stripes, leds int) *rainbowCircular {
	return &rainbowCircular{
		stripes: stripes,
		leds:    leds,
		field:   geometry.CircularField(stripes, leds),
	}
}

func (v *rainbowCircular) Reset() { v.hue.reset() }

func (v *rainbowCircular) Update(_ Input, g *grid.Grid) {
	hue := v.hue.next()
	for i := 0; i < v.stripes; i++ {
		for j := 0; j < v.leds; j++ {
			g.Set(i, j, colorspace.Hue(hue+int(v.field.Ratio(i, j)*255)))
		}
	}
}
