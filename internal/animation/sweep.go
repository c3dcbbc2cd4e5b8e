package animation

import (
	"github.com/guidoenr/ledwall/internal/agc"
	"github.com/guidoenr/ledwall/internal/colorspace"
	"github.com/guidoenr/ledwall/internal/grid"
)

// bassSweep keeps one bass reading per stripe. Each frame the readings move
// one stripe to the left and the newest enters on the right, so beats scroll
// across the wall. When centered, the lit window grows from the middle of
// the stripe in both directions instead of from one end.
type bassSweep struct {
	stripes  int
	leds     int
	centered bool
	history  []float64
	peak     *agc.Tracker
	hue      hueCounter
}

func newBassSweep(stripes, leds int, centered bool) *bassSweep {
	return &bassSweep{
		stripes:  stripes,
		leds:     leds,
		centered: centered,
		history:  make([]float64, stripes),
		peak:     agc.New(1, agc.InitialPeak),
	}
}

func (v *bassSweep) Reset() {
	clear(v.history)
	v.peak.Reset()
	v.hue.reset()
}

func (v *bassSweep) Update(in Input, g *grid.Grid) {
	hue := v.hue.next()
	bass := in.Spectrum.Bass()
	shiftLeft(v.history, bass)
	peak := v.peak.Observe(0, bass)

	color := colorspace.Hue(hue)
	if !v.centered {
		for i, value := range v.history {
			on := int(agc.Normalize(value, peak, float64(v.leds)))
			g.FillStripe(i, on, color, colorspace.Black)
		}
		return
	}

	half := float64(v.leds) / 2
	for i, value := range v.history {
		on := float64(int(agc.Normalize(value, peak, half)))
		stripe := g.Stripe(i)
		for j := range stripe {
			if inWindow(float64(j), half, on) {
				stripe[j] = color
			} else {
				stripe[j] = colorspace.Black
			}
		}
	}
}

// bassBottomUp keeps one bass reading per element row. Readings climb one
// row per frame and each row lights a window of stripes around the middle.
type bassBottomUp struct {
	stripes int
	leds    int
	history []float64
	peak    *agc.Tracker
	hue     hueCounter
}

func newBassBottomUp(stripes, leds int) *bassBottomUp {
	return &bassBottomUp{
		stripes: stripes,
		leds:    leds,
		history: make([]float64, leds),
		peak:    agc.New(1, agc.InitialPeak),
	}
}

func (v *bassBottomUp) Reset() {
	clear(v.history)
	v.peak.Reset()
	v.hue.reset()
}

func (v *bassBottomUp) Update(in Input, g *grid.Grid) {
	hue := v.hue.next()
	shiftLeft(v.history, in.Spectrum.Bass())
	peak := v.peak.Observe(0, maxOf(v.history))

	half := float64(v.stripes) / 2
	for j, value := range v.history {
		on := float64(int(agc.Normalize(value, peak, half)))
		color := colorspace.Hue(hue + 2*j)
		for i := 0; i < v.stripes; i++ {
			if inWindow(float64(i), half, on) {
				g.Set(i, j, color)
			} else {
				g.Set(i, j, colorspace.Black)
			}
		}
	}
}

// inWindow reports whether pos lies within [center-extent, center+extent].
func inWindow(pos, center, extent float64) bool {
	return pos >= center-extent && pos <= center+extent
}
