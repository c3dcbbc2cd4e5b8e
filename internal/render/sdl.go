//go:build sdl

package render

import (
	"fmt"
	"math"

	"github.com/veandco/go-sdl2/sdl"
)

// SDL draws each element as a filled circle in a window sized to the
// viewport.
type SDL struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	width    int32
	height   int32
}

// NewSDL opens a width x height window. It must be called from the main
// goroutine, and Draw must be called from the same goroutine.
func NewSDL(title string, width, height int) (*SDL, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("sdl window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("sdl renderer: %w", err)
	}
	_ = renderer.SetLogicalSize(int32(width), int32(height))
	return &SDL{
		window:   window,
		renderer: renderer,
		width:    int32(width),
		height:   int32(height),
	}, nil
}

// SupportsSDL reports whether the binary was built with the SDL backend.
func SupportsSDL() bool { return true }

func (s *SDL) Draw(f Frame) error {
	if err := s.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := s.renderer.Clear(); err != nil {
		return err
	}
	for _, e := range f.Elements {
		if err := s.renderer.SetDrawColor(e.Color.R, e.Color.G, e.Color.B, 255); err != nil {
			return err
		}
		if err := s.fillCircle(e.X, e.Y, e.Radius); err != nil {
			return err
		}
	}
	s.renderer.Present()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return ErrRendererQuit
		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN {
				continue
			}
			switch ev.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_q:
				return ErrRendererQuit
			}
		}
	}
	return nil
}

// fillCircle draws one horizontal span per scanline.
func (s *SDL) fillCircle(cx, cy, radius float64) error {
	if radius < 1 {
		return s.renderer.FillRect(&sdl.Rect{X: int32(cx), Y: int32(cy), W: 1, H: 1})
	}
	r := int32(math.Ceil(radius))
	for dy := -r; dy <= r; dy++ {
		half := math.Sqrt(math.Max(0, radius*radius-float64(dy*dy)))
		x0 := int32(math.Round(cx - half))
		w := int32(math.Round(2*half)) + 1
		if err := s.renderer.FillRect(&sdl.Rect{X: x0, Y: int32(math.Round(cy)) + dy, W: w, H: 1}); err != nil {
			return err
		}
	}
	return nil
}

func (s *SDL) Close() error {
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	sdl.QuitSubSystem(sdl.INIT_VIDEO)
	return nil
}
