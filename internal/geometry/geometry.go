// Package geometry places wall elements on screen and measures their
// distance from the wall center.
package geometry

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how stripes are laid out on screen.
type Mode string

const (
	ModeLinear   Mode = "linear"
	ModeCircular Mode = "circular"
)

// ParseMode maps a layout name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear", "wall", "grid":
		return ModeLinear, nil
	case "circular", "circle", "radial":
		return ModeCircular, nil
	default:
		return "", fmt.Errorf("unknown layout %q", name)
	}
}

// ModeNames returns the supported layouts.
func ModeNames() []string {
	return []string{string(ModeCircular), string(ModeLinear)}
}

// Point is a position in viewport pixels.
type Point struct {
	X, Y float64
}

// Layout is the fixed physical description of the wall.
type Layout struct {
	Stripes       int
	LEDs          int
	StripeSpacing float64
	LEDSpacing    float64
	LEDSize       float64
}

// Linear returns the position of element (i, j) with the whole wall centered
// in a width x height viewport.
func (l Layout) Linear(i, j int, width, height float64) Point {
	stepX := l.LEDSize + l.StripeSpacing
	stepY := l.LEDSize + l.LEDSpacing
	x0 := (width - float64(l.Stripes)*stepX) / 2
	y0 := (height - float64(l.LEDs)*stepY) / 2
	return Point{
		X: x0 + float64(i)*stepX,
		Y: y0 + float64(j)*stepY,
	}
}

// Circular treats stripe i as an angle and element j as a radius. theta is
// the rotation offset in radians. The circle is bounded by the smaller
// viewport dimension.
func (l Layout) Circular(i, j int, theta, width, height float64) Point {
	radius := math.Min(width, height) / 2
	angle := toRadians(float64(i)/float64(l.Stripes)*360) + theta
	r := radius - float64(j)/float64(l.LEDs)*radius
	sin, cos := math.Sincos(angle)
	return Point{
		X: width/2 + cos*r,
		Y: height/2 + sin*r,
	}
}

// Project dispatches to Linear or Circular.
func (l Layout) Project(mode Mode, i, j int, theta, width, height float64) Point {
	if mode == ModeLinear {
		return l.Linear(i, j, width, height)
	}
	return l.Circular(i, j, theta, width, height)
}

// Distance is the planar distance of (x, y) from the origin.
func Distance(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

func toRadians(degrees float64) float64 {
	return degrees / 360 * 2 * math.Pi
}
