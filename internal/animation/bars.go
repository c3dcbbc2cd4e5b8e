package animation

import (
	"github.com/guidoenr/ledwall/internal/colorspace"
	"github.com/guidoenr/ledwall/internal/grid"
)

const fullScale = 32767

// levelBars splits the raw samples into one contiguous group per stripe and
// lights each stripe in proportion to the group's peak amplitude.
type levelBars struct {
	stripes int
	leds    int
}

func newLevelBars(stripes, leds int) *levelBars {
	return &levelBars{stripes: stripes, leds: leds}
}

func (v *levelBars) Reset() {}

func (v *levelBars) Update(in Input, g *grid.Grid) {
	samples := in.Samples
	size := len(samples) / v.stripes
	for i := 0; i < v.stripes; i++ {
		lo := i * size
		hi := lo + size
		if i == v.stripes-1 {
			hi = len(samples)
		}
		peak := 0
		for _, s := range samples[lo:hi] {
			a := int(s)
			if a < 0 {
				a = -a
			}
			if a > peak {
				peak = a
			}
		}
		on := clampInt(peak*v.leds/fullScale, 0, v.leds)
		g.FillStripe(i, on, colorspace.White, colorspace.Black)
	}
}

// spectralBars lights stripe i according to FFT bin i, scaled by the
// loudest of those bins in the same frame.
type spectralBars struct {
	stripes int
	leds    int
}

func newSpectralBars(stripes, leds int) *spectralBars {
	return &spectralBars{stripes: stripes, leds: leds}
}

func (v *spectralBars) Reset() {}

func (v *spectralBars) Update(in Input, g *grid.Grid) {
	peak := in.Spectrum.Max(0, v.stripes)
	if peak < 1 {
		peak = 1
	}
	for i := 0; i < v.stripes; i++ {
		on := int(in.Spectrum.Bin(i) / peak * float64(v.leds))
		g.FillStripe(i, on, colorspace.White, colorspace.Black)
	}
}
