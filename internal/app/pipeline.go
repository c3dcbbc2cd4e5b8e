package app

import (
	"fmt"

	"github.com/guidoenr/ledwall/internal/analyzer"
	"github.com/guidoenr/ledwall/internal/animation"
	"github.com/guidoenr/ledwall/internal/grid"
)

// Pipeline turns one audio frame into a published grid: spectrum, then the
// active variant, then the snapshot swap.
type Pipeline struct {
	analyzer *analyzer.Analyzer
	engine   *animation.Engine
	state    *grid.State
	prof     *profiler
}

// NewPipeline builds the analyzer and engine for frames of frameSize
// samples on a stripes x leds wall.
func NewPipeline(kind animation.Kind, stripes, leds, frameSize int, state *grid.State) (*Pipeline, error) {
	engine, err := animation.NewEngine(kind, stripes, leds)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		analyzer: analyzer.New(frameSize),
		engine:   engine,
		state:    state,
	}, nil
}

// Process runs the pipeline on frame and publishes the result. A frame of
// the wrong length is rejected before any state changes.
func (p *Pipeline) Process(frame []int16) error {
	p.prof.beginFrame()

	spectrum, err := p.analyzer.Analyze(frame)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	p.prof.markSection("analyze")

	g := p.engine.Update(animation.Input{Samples: frame, Spectrum: spectrum})
	p.prof.markSection("animate")

	p.state.Publish(g)
	p.prof.markSection("publish")
	p.prof.endFrame()
	return nil
}

// Reset discards the variant's accumulated state.
func (p *Pipeline) Reset() {
	p.engine.Reset()
}
