package animation

import (
	"math"

	"github.com/guidoenr/ledwall/internal/agc"
	"github.com/guidoenr/ledwall/internal/colorspace"
	"github.com/guidoenr/ledwall/internal/geometry"
	"github.com/guidoenr/ledwall/internal/grid"
)

// ringCount is the number of concentric bass readings kept.
const ringCount = 20

// bassRings pushes each frame's bass reading into ring 0 and moves older
// readings outward, producing pulses that travel away from the center.
// Elements between two rings interpolate linearly between them.
type bassRings struct {
	stripes int
	leds    int
	field   geometry.Field
	rings   []float64
	peak    *agc.Tracker
	hue     hueCounter
}

func newBassRings(stripes, leds int, elliptical bool) *bassRings {
	field := geometry.CircularField(stripes, leds)
	if elliptical {
		field = geometry.EllipticalField(stripes, leds)
	}
	return &bassRings{
		stripes: stripes,
		leds:    leds,
		field:   field,
		rings:   make([]float64, ringCount),
		peak:    agc.New(1, agc.InitialPeak),
	}
}

func (v *bassRings) Reset() {
	clear(v.rings)
	v.peak.Reset()
	v.hue.reset()
}

func (v *bassRings) Update(in Input, g *grid.Grid) {
	hue := v.hue.next()
	shiftRight(v.rings, in.Spectrum.Bass())
	peak := v.peak.Observe(0, maxOf(v.rings))

	for i := 0; i < v.stripes; i++ {
		for j := 0; j < v.leds; j++ {
			ratio := v.field.Ratio(i, j)
			value := v.sample(ratio)
			brightness := math.Floor(agc.Normalize(value, peak, 255))
			g.Set(i, j, colorspace.HueValue(hue+int(ratio*255), brightness))
		}
	}
}

// sample interpolates the ring buffer at ratio in [0,1] of the max distance.
func (v *bassRings) sample(ratio float64) float64 {
	pos := ratio * float64(len(v.rings)-1)
	lower := int(pos)
	if lower >= len(v.rings)-1 {
		lower = len(v.rings) - 2
	}
	frac := pos - float64(lower)
	return v.rings[lower] + (v.rings[lower+1]-v.rings[lower])*frac
}
