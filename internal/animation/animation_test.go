package animation

import (
	"math/rand"
	"testing"

	"github.com/guidoenr/ledwall/internal/agc"
	"github.com/guidoenr/ledwall/internal/analyzer"
	"github.com/guidoenr/ledwall/internal/colorspace"
	"github.com/guidoenr/ledwall/internal/grid"
)

const (
	testStripes = 16
	testLEDs    = 67
	testFrame   = 1024
)

func silentInput() Input {
	return Input{
		Samples:  make([]int16, testFrame),
		Spectrum: make(analyzer.Spectrum, testFrame),
	}
}

func bassInput(bass float64) Input {
	in := silentInput()
	in.Spectrum[0] = bass
	return in
}

func TestEveryVariantKeepsGridShape(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := analyzer.New(testFrame)
	for _, name := range KindNames() {
		kind, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", name, err)
		}
		for _, dims := range [][2]int{{testStripes, testLEDs}, {1, 1}, {5, 2}, {30, 12}} {
			e, err := NewEngine(kind, dims[0], dims[1])
			if err != nil {
				t.Fatalf("%s: NewEngine: %v", name, err)
			}
			for n := 0; n < 25; n++ {
				frame := make([]int16, testFrame)
				for i := range frame {
					frame[i] = int16(rng.Intn(65536) - 32768)
				}
				spec, err := a.Analyze(frame)
				if err != nil {
					t.Fatalf("Analyze: %v", err)
				}
				g := e.Update(Input{Samples: frame, Spectrum: spec})
				if g.Stripes() != dims[0] || g.LEDs() != dims[1] || g.Len() != dims[0]*dims[1] {
					t.Fatalf("%s: grid %dx%d want %dx%d", name, g.Stripes(), g.LEDs(), dims[0], dims[1])
				}
			}
		}
	}
}

func TestLevelBarsSilenceIsBlack(t *testing.T) {
	e, err := NewEngine(KindLevelBars, testStripes, testLEDs)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	g := e.Update(silentInput())
	assertAll(t, g, colorspace.Black)
}

func TestLevelBarsHalfScale(t *testing.T) {
	e, _ := NewEngine(KindLevelBars, testStripes, testLEDs)
	in := silentInput()
	group := testFrame / testStripes
	in.Samples[3*group+10] = -16383

	g := e.Update(in)
	wantOn := testLEDs / 2
	for j := 0; j < testLEDs; j++ {
		want := colorspace.Black
		if j >= testLEDs-wantOn {
			want = colorspace.White
		}
		if got := g.At(3, j); got != want {
			t.Fatalf("stripe 3 element %d=%v want %v", j, got, want)
		}
	}
	for i := 0; i < testStripes; i++ {
		if i == 3 {
			continue
		}
		for j := 0; j < testLEDs; j++ {
			if g.At(i, j) != colorspace.Black {
				t.Fatalf("stripe %d element %d lit", i, j)
			}
		}
	}
}

func TestLevelBarsFullScaleClamps(t *testing.T) {
	e, _ := NewEngine(KindLevelBars, testStripes, testLEDs)
	in := silentInput()
	in.Samples[0] = -32768
	g := e.Update(in)
	for _, c := range g.Stripe(0) {
		if c != colorspace.White {
			t.Fatalf("full scale stripe not fully lit")
		}
	}
}

func TestSpectralBarsNormalizesPerFrame(t *testing.T) {
	e, _ := NewEngine(KindSpectralBars, testStripes, testLEDs)
	in := silentInput()
	in.Spectrum[2] = 1000
	in.Spectrum[5] = 500
	in.Spectrum[testStripes] = 1e9 // outside the used bins
	g := e.Update(in)

	if countLit(g, 2) != testLEDs {
		t.Fatalf("loudest bin should fill its stripe, lit=%d", countLit(g, 2))
	}
	if got := countLit(g, 5); got != testLEDs/2 {
		t.Fatalf("half bin lit=%d want %d", got, testLEDs/2)
	}
	if countLit(g, 0) != 0 {
		t.Fatalf("silent bin lit")
	}
}

func TestSpectralBarsSilence(t *testing.T) {
	e, _ := NewEngine(KindSpectralBars, testStripes, testLEDs)
	assertAll(t, e.Update(silentInput()), colorspace.Black)
}

func TestHueCounterWraps(t *testing.T) {
	h := hueCounter{hue: 255}
	if got := h.next(); got != 0 {
		t.Fatalf("hue after 255 = %d want 0", got)
	}
	if got := h.next(); got != 1 {
		t.Fatalf("hue after 0 = %d want 1", got)
	}
}

func TestRainbowStripesOffsets(t *testing.T) {
	e, _ := NewEngine(KindRainbowStripes, testStripes, testLEDs)
	g := e.Update(silentInput())
	for i := 0; i < testStripes; i++ {
		want := colorspace.Hue(1 + stripeHueStep*i)
		for j := 0; j < testLEDs; j++ {
			if g.At(i, j) != want {
				t.Fatalf("stripe %d element %d=%v want %v", i, j, g.At(i, j), want)
			}
		}
	}
}

func TestRainbowLEDsOffsets(t *testing.T) {
	e, _ := NewEngine(KindRainbowLEDs, 2, 3)
	g := e.Update(silentInput())
	if got, want := g.At(1, 2), colorspace.Hue(1+ledHueStep*2+3); got != want {
		t.Fatalf("element (1,2)=%v want %v", got, want)
	}
}

func TestBassSweepMovesLeft(t *testing.T) {
	v := newBassSweep(testStripes, testLEDs, false)
	g := grid.New(testStripes, testLEDs)

	v.Update(bassInput(40000), g)
	if countLit(g, testStripes-1) != testLEDs {
		t.Fatalf("newest stripe should be full, lit=%d", countLit(g, testStripes-1))
	}
	if countLit(g, testStripes-2) != 0 {
		t.Fatalf("older stripe should be dark")
	}

	v.Update(silentInput(), g)
	if countLit(g, testStripes-2) == 0 {
		t.Fatalf("beat did not move one stripe left")
	}
	if countLit(g, testStripes-1) != 0 {
		t.Fatalf("silent newest stripe should be dark")
	}
}

func TestBassSweepCenteredSilence(t *testing.T) {
	v := newBassSweep(testStripes, testLEDs, true)
	g := grid.New(testStripes, testLEDs)
	g.Fill(colorspace.White)
	v.Update(silentInput(), g)
	assertAll(t, g, colorspace.Black)
}

func TestBassSweepCenteredSymmetric(t *testing.T) {
	v := newBassSweep(4, 20, true)
	g := grid.New(4, 20)
	v.Update(bassInput(40000), g)
	// full scale lights the whole stripe: window [0,20]
	if countLit(g, 3) != 20 {
		t.Fatalf("lit=%d want 20", countLit(g, 3))
	}
	// half scale: window [5,15] around the middle
	v.Update(bassInput(20000), g)
	stripe := g.Stripe(3)
	for j, c := range stripe {
		lit := c != colorspace.Black
		if want := j >= 5 && j <= 15; lit != want {
			t.Fatalf("element %d lit=%v want %v", j, lit, want)
		}
	}
}

func TestBassBottomUpUsesRows(t *testing.T) {
	v := newBassBottomUp(testStripes, testLEDs)
	g := grid.New(testStripes, testLEDs)
	v.Update(bassInput(40000), g)
	last := testLEDs - 1
	for i := 0; i < testStripes; i++ {
		if g.At(i, last) == colorspace.Black {
			t.Fatalf("newest row stripe %d dark", i)
		}
	}
	if v.peak.Peak(0) != 40000 {
		t.Fatalf("peak=%f want 40000", v.peak.Peak(0))
	}
}

func TestBassRingsPropagateOutward(t *testing.T) {
	v := newBassRings(testStripes, testLEDs, false)
	g := grid.New(testStripes, testLEDs)
	v.Update(bassInput(50000), g)

	center := g.At(testStripes/2, testLEDs/2)
	if center == colorspace.Black {
		t.Fatalf("center should light on a fresh beat")
	}
	if g.At(0, 0) != colorspace.Black {
		t.Fatalf("outermost element should still be dark, got %v", g.At(0, 0))
	}

	for n := 0; n < 5; n++ {
		v.Update(silentInput(), g)
	}
	if v.rings[5] != 50000 || v.rings[0] != 0 {
		t.Fatalf("ring buffer did not shift outward: %v", v.rings[:7])
	}
}

func TestBassRingsInterpolation(t *testing.T) {
	v := newBassRings(testStripes, testLEDs, true)
	v.rings[0] = 0
	v.rings[1] = 100
	pos := 0.5 / float64(ringCount-1)
	if got := v.sample(pos); got < 49.999 || got > 50.001 {
		t.Fatalf("sample(%f)=%f want 50", pos, got)
	}
	if got := v.sample(1); got != v.rings[ringCount-1] {
		t.Fatalf("sample(1)=%f want last ring", got)
	}
}

func TestBlocksDoublePeak(t *testing.T) {
	v := newBlocks(testStripes, testLEDs)
	g := grid.New(testStripes, testLEDs)
	in := silentInput()
	in.Spectrum[4] = 40000
	v.Update(in, g)
	if got := v.peaks.Peak(4); got != 2*agc.InitialPeak {
		t.Fatalf("peak=%f want %f", got, 2*agc.InitialPeak)
	}
	if got := v.peaks.Peak(0); got != agc.InitialPeak*agc.DecayFactor {
		t.Fatalf("silent block peak=%f want decayed", got)
	}
}

func TestBlocksLayout(t *testing.T) {
	v := newBlocks(testStripes, testLEDs)
	g := grid.New(testStripes, testLEDs)
	in := silentInput()
	// block x=1,y=2 -> index 5
	in.Spectrum[5] = 30000
	v.Update(in, g)
	if g.At(4, 50) == colorspace.Black {
		t.Fatalf("block 5 should be lit")
	}
	if g.At(0, 0) != colorspace.Black {
		t.Fatalf("block 0 should be dark")
	}
}

func TestEngineResetClearsState(t *testing.T) {
	e, _ := NewEngine(KindBassSweep, testStripes, testLEDs)
	e.Update(bassInput(40000))
	e.Reset()
	assertAll(t, e.Update(silentInput()), colorspace.Black)
	v := e.variant.(*bassSweep)
	if v.hue.hue != 1 {
		t.Fatalf("hue counter not reset: %d", v.hue.hue)
	}
	if v.peak.Peak(0) != agc.InitialPeak*agc.DecayFactor {
		t.Fatalf("peak not reset: %f", v.peak.Peak(0))
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(""); err != nil || k != DefaultKind {
		t.Fatalf("empty name -> %q,%v", k, err)
	}
	if k, err := ParseKind(" Blocks "); err != nil || k != KindBlocks {
		t.Fatalf("Blocks -> %q,%v", k, err)
	}
	if _, err := ParseKind("strobe"); err == nil {
		t.Fatalf("expected error")
	}
	if len(KindNames()) != 11 {
		t.Fatalf("variants=%d want 11", len(KindNames()))
	}
}

func TestNewEngineRejectsBadInput(t *testing.T) {
	if _, err := NewEngine("nope", 1, 1); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	if _, err := NewEngine(KindBlocks, 0, 5); err == nil {
		t.Fatalf("expected dimension error")
	}
}

func countLit(g *grid.Grid, stripe int) int {
	n := 0
	for _, c := range g.Stripe(stripe) {
		if c != colorspace.Black {
			n++
		}
	}
	return n
}

func assertAll(t *testing.T, g *grid.Grid, want colorspace.RGB) {
	t.Helper()
	for i := 0; i < g.Stripes(); i++ {
		for j := 0; j < g.LEDs(); j++ {
			if got := g.At(i, j); got != want {
				t.Fatalf("(%d,%d)=%v want %v", i, j, got, want)
			}
		}
	}
}
