package render

import (
	"github.com/guidoenr/ledwall/internal/geometry"
	"github.com/guidoenr/ledwall/internal/grid"
)

// Projector places grid elements in a fixed viewport.
type Projector struct {
	layout   geometry.Layout
	mode     geometry.Mode
	width    float64
	height   float64
	elements []Element
}

// NewProjector creates a projector for a width x height viewport.
func NewProjector(layout geometry.Layout, mode geometry.Mode, width, height int) *Projector {
	return &Projector{
		layout: layout,
		mode:   mode,
		width:  float64(width),
		height: float64(height),
	}
}

// Mode returns the layout mode.
func (p *Projector) Mode() geometry.Mode { return p.mode }

// Project positions every element of g. theta only affects the circular
// layout. The returned frame reuses the projector's buffer.
func (p *Projector) Project(g *grid.Grid, theta float64) Frame {
	n := g.Len()
	if cap(p.elements) < n {
		p.elements = make([]Element, n)
	}
	p.elements = p.elements[:n]

	layout := p.layout
	layout.Stripes = g.Stripes()
	layout.LEDs = g.LEDs()
	radius := layout.LEDSize / 2

	k := 0
	for i := 0; i < g.Stripes(); i++ {
		for j, c := range g.Stripe(i) {
			pt := layout.Project(p.mode, i, j, theta, p.width, p.height)
			p.elements[k] = Element{X: pt.X, Y: pt.Y, Radius: radius, Color: c}
			k++
		}
	}

	return Frame{
		Elements: p.elements,
		Width:    p.width,
		Height:   p.height,
		Stripes:  g.Stripes(),
		LEDs:     g.LEDs(),
	}
}
