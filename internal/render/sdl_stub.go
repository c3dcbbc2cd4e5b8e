//go:build !sdl

package render

import "errors"

// SDL is unavailable in this build.
type SDL struct{}

// NewSDL always fails without the sdl build tag.
func NewSDL(title string, width, height int) (*SDL, error) {
	return nil, errors.New("SDL backend not enabled; rebuild with -tags sdl")
}

func SupportsSDL() bool { return false }

func (s *SDL) Draw(Frame) error { return ErrRendererQuit }
func (s *SDL) Close() error     { return nil }
