package grid

import (
	"sync/atomic"
)

// State is the handoff point between the capture loop (single writer) and
// the render loop (reader). Published grids are never mutated afterwards,
// so a snapshot is always a complete frame.
type State struct {
	current atomic.Pointer[Grid]
	version atomic.Uint64
}

// NewState starts with an all-black grid of the given size.
func NewState(stripes, leds int) *State {
	s := &State{}
	s.current.Store(New(stripes, leds))
	return s
}

// Publish stores a private copy of g as the current frame.
func (s *State) Publish(g *Grid) {
	s.current.Store(g.Clone())
	s.version.Add(1)
}

// Snapshot returns the latest published frame. Callers must treat it as
// read-only.
func (s *State) Snapshot() *Grid {
	return s.current.Load()
}

// Version counts publishes since creation.
func (s *State) Version() uint64 {
	return s.version.Load()
}
