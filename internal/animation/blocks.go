package animation

import (
	"github.com/guidoenr/ledwall/internal/agc"
	"github.com/guidoenr/ledwall/internal/colorspace"
	"github.com/guidoenr/ledwall/internal/grid"
)

const (
	xBlocks      = 4
	yBlocks      = 3
	blockHueStep = 30
)

// blocks tiles the wall into xBlocks x yBlocks rectangles. Block k follows
// FFT bin k with its own peak.
//
// Unlike the other variants a block peak doubles when a reading exceeds it
// rather than jumping to the reading, which makes blocks slower to saturate.
// The 0.75 decay and the floor are the shared agc rules.
type blocks struct {
	stripes int
	leds    int
	values  []float64
	peaks   *agc.Tracker
	hue     hueCounter
}

func newBlocks(stripes, leds int) *blocks {
	return &blocks{
		stripes: stripes,
		leds:    leds,
		values:  make([]float64, xBlocks*yBlocks),
		peaks:   agc.New(xBlocks*yBlocks, agc.InitialPeak),
	}
}

func (v *blocks) Reset() {
	clear(v.values)
	v.peaks.Reset()
	v.hue.reset()
}

func (v *blocks) Update(in Input, g *grid.Grid) {
	hue := v.hue.next()

	for k := range v.values {
		value := in.Spectrum.Bin(k)
		v.values[k] = value
		if peak := v.peaks.Peak(k); value > peak {
			v.peaks.Set(k, peak*2)
		}
		v.peaks.Decay(k, value)
	}

	stripesPerBlock := float64(v.stripes) / xBlocks
	ledsPerBlock := float64(v.leds) / yBlocks
	for i := 0; i < v.stripes; i++ {
		x := clampInt(int(float64(i)/stripesPerBlock), 0, xBlocks-1)
		for j := 0; j < v.leds; j++ {
			y := clampInt(int(float64(j)/ledsPerBlock), 0, yBlocks-1)
			k := x*yBlocks + y
			brightness := agc.Normalize(v.values[k], v.peaks.Peak(k), 255)
			g.Set(i, j, colorspace.HueValue(hue+k*blockHueStep, brightness))
		}
	}
}
