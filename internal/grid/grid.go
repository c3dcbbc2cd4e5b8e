// Package grid holds the wall's element colors and the snapshot handoff
// between the audio pipeline and the renderer.
package grid

import (
	"github.com/guidoenr/ledwall/internal/colorspace"
)

// Grid is a fixed stripes x leds matrix of colors, stored stripe-major.
type Grid struct {
	stripes int
	leds    int
	cells   []colorspace.RGB
}

// New allocates a black grid. Non-positive dimensions are raised to 1.
func New(stripes, leds int) *Grid {
	if stripes < 1 {
		stripes = 1
	}
	if leds < 1 {
		leds = 1
	}
	return &Grid{
		stripes: stripes,
		leds:    leds,
		cells:   make([]colorspace.RGB, stripes*leds),
	}
}

func (g *Grid) Stripes() int { return g.stripes }
func (g *Grid) LEDs() int    { return g.leds }

// Len is the total number of elements.
func (g *Grid) Len() int { return len(g.cells) }

// At returns the color of element j on stripe i.
func (g *Grid) At(i, j int) colorspace.RGB {
	return g.cells[i*g.leds+j]
}

// Set colors element j on stripe i.
func (g *Grid) Set(i, j int, c colorspace.RGB) {
	g.cells[i*g.leds+j] = c
}

// Stripe returns the backing slice for stripe i.
func (g *Grid) Stripe(i int) []colorspace.RGB {
	return g.cells[i*g.leds : (i+1)*g.leds]
}

// Fill paints every element.
func (g *Grid) Fill(c colorspace.RGB) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// FillStripe paints stripe i with off for the first leds-on elements and
// with on for the remaining on elements, the way a bar grows from the end.
func (g *Grid) FillStripe(i, on int, onColor, offColor colorspace.RGB) {
	if on < 0 {
		on = 0
	}
	if on > g.leds {
		on = g.leds
	}
	stripe := g.Stripe(i)
	split := g.leds - on
	for j := range stripe {
		if j < split {
			stripe[j] = offColor
		} else {
			stripe[j] = onColor
		}
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		stripes: g.stripes,
		leds:    g.leds,
		cells:   make([]colorspace.RGB, len(g.cells)),
	}
	copy(out.cells, g.cells)
	return out
}

// CopyFrom overwrites g with src. Dimensions must match.
func (g *Grid) CopyFrom(src *Grid) bool {
	if src.stripes != g.stripes || src.leds != g.leds {
		return false
	}
	copy(g.cells, src.cells)
	return true
}

// Equal reports whether both grids have the same shape and colors.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.stripes != other.stripes || g.leds != other.leds {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
