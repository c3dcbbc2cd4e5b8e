// Package render turns grid snapshots into positioned elements and draws
// them on a terminal, an SDL window or nowhere at all.
package render

import (
	"errors"

	"github.com/guidoenr/ledwall/internal/colorspace"
)

// ErrRendererQuit is returned by Draw when the viewer asked to stop.
var ErrRendererQuit = errors.New("renderer quit")

// Element is one LED placed in viewport pixels.
type Element struct {
	X, Y   float64
	Radius float64
	Color  colorspace.RGB
}

// Frame is everything a backend needs to draw one tick. Elements are
// stripe-major, so element i*LEDs+j is LED j on stripe i. A Frame is only
// valid during the Draw call it is passed to.
type Frame struct {
	Elements []Element
	Width    float64
	Height   float64
	Stripes  int
	LEDs     int
	// Version is the snapshot version the frame was projected from.
	Version uint64
}

// Renderer draws frames. Draw and Close are called from the render loop
// only.
type Renderer interface {
	Draw(f Frame) error
	Close() error
}

// Multi draws every frame on several renderers in order. The first error
// stops the frame and is returned.
type Multi []Renderer

func (m Multi) Draw(f Frame) error {
	for _, r := range m {
		if err := r.Draw(f); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

// Headless discards frames. QuitAfter, when positive, makes Draw return
// ErrRendererQuit once that many frames were drawn.
type Headless struct {
	QuitAfter int
	frames    int
	last      Frame
	closed    bool
}

func (h *Headless) Draw(f Frame) error {
	h.frames++
	h.last = Frame{
		Width:   f.Width,
		Height:  f.Height,
		Stripes: f.Stripes,
		LEDs:    f.LEDs,
		Version: f.Version,
	}
	if h.QuitAfter > 0 && h.frames >= h.QuitAfter {
		return ErrRendererQuit
	}
	return nil
}

func (h *Headless) Close() error {
	h.closed = true
	return nil
}

// Frames is the number of Draw calls so far.
func (h *Headless) Frames() int { return h.frames }

// Last returns the shape of the last drawn frame, without elements.
func (h *Headless) Last() Frame { return h.last }

// Closed reports whether Close was called.
func (h *Headless) Closed() bool { return h.closed }
