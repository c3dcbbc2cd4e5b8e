// Package animation holds the audio-reactive algorithms that color the wall.
//
// Every algorithm implements Variant. Exactly one runs per process; it is
// chosen when the Engine is built and never swapped while running.
package animation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guidoenr/ledwall/internal/analyzer"
	"github.com/guidoenr/ledwall/internal/grid"
)

// Input is what the pipeline hands to a variant for one audio frame.
type Input struct {
	Samples  []int16
	Spectrum analyzer.Spectrum
}

// Variant rewrites the grid for one audio frame. Implementations own their
// state and must write every element of g.
type Variant interface {
	Update(in Input, g *grid.Grid)
	// Reset discards accumulated state and returns to the initial estimate.
	Reset()
}

// Kind names one variant.
type Kind string

const (
	KindLevelBars           Kind = "level-bars"
	KindSpectralBars        Kind = "spectral-bars"
	KindRainbowStripes      Kind = "rainbow-stripes"
	KindRainbowLEDs         Kind = "rainbow-leds"
	KindRainbowCircular     Kind = "rainbow-circular"
	KindBassSweep           Kind = "bass-sweep"
	KindBassSweepCentered   Kind = "bass-sweep-centered"
	KindBassBottomUp        Kind = "bass-bottom-up"
	KindBassRingsCircular   Kind = "bass-rings-circular"
	KindBassRingsElliptical Kind = "bass-rings-elliptical"
	KindBlocks              Kind = "blocks"
)

// DefaultKind is the animation used when none is configured.
const DefaultKind = KindSpectralBars

type constructor func(stripes, leds int) Variant

var registry = map[Kind]constructor{
	KindLevelBars:           func(s, l int) Variant { return newLevelBars(s, l) },
	KindSpectralBars:        func(s, l int) Variant { return newSpectralBars(s, l) },
	KindRainbowStripes:      func(s, l int) Variant { return newRainbowStripes(s, l) },
	KindRainbowLEDs:         func(s, l int) Variant { return newRainbowLEDs(s, l) },
	KindRainbowCircular:     func(s, l int) Variant { return newRainbowCircular(s, l) },
	KindBassSweep:           func(s, l int) Variant { return newBassSweep(s, l, false) },
	KindBassSweepCentered:   func(s, l int) Variant { return newBassSweep(s, l, true) },
	KindBassBottomUp:        func(s, l int) Variant { return newBassBottomUp(s, l) },
	KindBassRingsCircular:   func(s, l int) Variant { return newBassRings(s, l, false) },
	KindBassRingsElliptical: func(s, l int) Variant { return newBassRings(s, l, true) },
	KindBlocks:              func(s, l int) Variant { return newBlocks(s, l) },
}

// ParseKind resolves a variant name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	key := Kind(strings.ToLower(strings.TrimSpace(name)))
	if key == "" {
		return DefaultKind, nil
	}
	if _, ok := registry[key]; !ok {
		return "", fmt.Errorf("unknown animation %q (available: %s)", name, strings.Join(KindNames(), ", "))
	}
	return key, nil
}

// KindNames lists every variant name in sorted order.
func KindNames() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Engine runs the single active variant against a grid it owns.
type Engine struct {
	kind    Kind
	variant Variant
	grid    *grid.Grid
}

// NewEngine builds the variant for kind on a stripes x leds grid.
func NewEngine(kind Kind, stripes, leds int) (*Engine, error) {
	build, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown animation %q", kind)
	}
	if stripes < 1 || leds < 1 {
		return nil, fmt.Errorf("invalid grid %dx%d", stripes, leds)
	}
	return &Engine{
		kind:    kind,
		variant: build(stripes, leds),
		grid:    grid.New(stripes, leds),
	}, nil
}

// Kind returns the active variant.
func (e *Engine) Kind() Kind { return e.kind }

// Update runs the variant once and returns the engine's grid. The grid is
// reused across calls; publish a copy if it must outlive the next Update.
func (e *Engine) Update(in Input) *grid.Grid {
	e.variant.Update(in, e.grid)
	return e.grid
}

// Reset clears variant state and blanks the grid.
func (e *Engine) Reset() {
	e.variant.Reset()
	e.grid = grid.New(e.grid.Stripes(), e.grid.LEDs())
}

// hueCounter advances one step per update and wraps 255 -> 0.
type hueCounter struct {
	hue int
}

func (h *hueCounter) next() int {
	h.hue = (h.hue + 1) % 256
	return h.hue
}

func (h *hueCounter) reset() {
	h.hue = 0
}

// shiftLeft drops the oldest value at index 0 and appends v at the end.
func shiftLeft(buf []float64, v float64) {
	copy(buf, buf[1:])
	buf[len(buf)-1] = v
}

// shiftRight drops the oldest value at the end and inserts v at index 0.
func shiftRight(buf []float64, v float64) {
	copy(buf[1:], buf)
	buf[0] = v
}

func maxOf(buf []float64) float64 {
	peak := 0.0
	for _, v := range buf {
		if v > peak {
			peak = v
		}
	}
	return peak
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
