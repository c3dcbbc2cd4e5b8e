// Package app wires an audio source, the animation pipeline and a renderer
// into the two loops that drive the wall.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/guidoenr/ledwall/internal/audio"
	"github.com/guidoenr/ledwall/internal/geometry"
	"github.com/guidoenr/ledwall/internal/grid"
	"github.com/guidoenr/ledwall/internal/params"
	"github.com/guidoenr/ledwall/internal/render"
)

// Config configures the application runtime.
type Config struct {
	Wall params.Wall

	// Source overrides the source selected by the fields below.
	Source     audio.Source
	DeviceName string
	File       string
	Loop       bool
	NoAudio    bool
	Record     string

	// Renderer defaults to a headless renderer. The app owns it and closes
	// it when the render loop exits.
	Renderer render.Renderer
	// Keyboard enables the Esc/q quit listener on the controlling terminal.
	Keyboard bool
	Profile  string
	Log      *log.Logger
}

// App ties together audio capture, the pipeline and rendering.
type App struct {
	cfg         Config
	log         *log.Logger
	source      audio.Source
	sourceLabel string
	state       *grid.State
	pipeline    *Pipeline
	projector   *render.Projector
	rotation    *geometry.Rotation
	renderer    render.Renderer
	prof        *profiler
}

// New validates the configuration and opens the audio source. Failing to
// open the source is an error; nothing is started.
func New(cfg Config) (*App, error) {
	if err := cfg.Wall.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Log == nil {
		cfg.Log = log.New(os.Stderr, "", log.LstdFlags)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = &render.Headless{}
	}

	w := cfg.Wall
	state := grid.NewState(w.Stripes, w.LEDs)
	pipeline, err := NewPipeline(w.Kind(), w.Stripes, w.LEDs, w.FrameSize, state)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		log:       cfg.Log,
		state:     state,
		pipeline:  pipeline,
		projector: render.NewProjector(w.Geometry(), w.Mode(), w.Width, w.Height),
		rotation:  geometry.NewRotation(w.AngleSpeed),
		renderer:  cfg.Renderer,
	}

	src, label, err := openSource(cfg)
	if err != nil {
		return nil, err
	}
	a.source = src
	a.sourceLabel = label
	a.log.Printf("audio source %s @ %.0f Hz, animation %s, layout %s", label, src.SampleRate(), w.Kind(), w.Mode())

	a.prof = newProfiler(cfg.Profile, a.log)
	a.pipeline.prof = a.prof
	return a, nil
}

func openSource(cfg Config) (audio.Source, string, error) {
	w := cfg.Wall
	var (
		src   audio.Source
		label string
	)
	switch {
	case cfg.Source != nil:
		src, label = cfg.Source, "custom"
	case cfg.NoAudio:
		src = audio.NewSynthetic(audio.SyntheticConfig{
			SampleRate: w.SampleRate,
			FrameSize:  w.FrameSize,
			Seed:       time.Now().UnixNano(),
			Realtime:   true,
		})
		label = "synthetic"
	case cfg.File != "":
		fs, err := audio.OpenFile(audio.FileConfig{
			Path:      cfg.File,
			FrameSize: w.FrameSize,
			Loop:      cfg.Loop,
			Realtime:  true,
		})
		if err != nil {
			return nil, "", fmt.Errorf("audio file: %w", err)
		}
		src, label = fs, fmt.Sprintf("file %q", cfg.File)
	default:
		capture, err := audio.NewCapture(audio.Config{
			DeviceName: cfg.DeviceName,
			SampleRate: w.SampleRate,
			FrameSize:  w.FrameSize,
		})
		if err != nil {
			return nil, "", fmt.Errorf("audio capture: %w", err)
		}
		label = "device"
		if info := capture.Device(); info != nil {
			label = fmt.Sprintf("device %q", info.Name)
		}
		src = capture
	}

	if cfg.Record != "" {
		rec, err := audio.NewRecorder(src, cfg.Record)
		if err != nil {
			src.Close()
			return nil, "", err
		}
		src = rec
		label += fmt.Sprintf(" (recording to %s)", cfg.Record)
	}
	return src, label, nil
}

// State exposes the shared grid for observers such as tests.
func (a *App) State() *grid.State { return a.state }

// Run drives the capture loop on its own goroutine and the render loop on
// the calling goroutine until one of them stops or ctx is cancelled. A quit
// from the viewer or the end of a non-looping file returns nil; a capture
// failure is returned.
func (a *App) Run(parent context.Context) error {
	ctx, stop := context.WithCancelCause(parent)
	defer stop(nil)

	if a.cfg.Keyboard {
		a.startInputListener(ctx, stop)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.captureLoop(ctx, stop)
	}()

	a.renderLoop(ctx, stop)
	stop(nil)
	wg.Wait()

	cause := context.Cause(ctx)
	switch {
	case errors.Is(cause, render.ErrRendererQuit):
		a.log.Println("renderer quit")
		return nil
	case errors.Is(cause, io.EOF):
		a.log.Println("audio source finished")
		return nil
	case cause == nil:
		return nil
	default:
		return cause
	}
}

func (a *App) captureLoop(ctx context.Context, stop context.CancelCauseFunc) {
	defer func() {
		if err := a.source.Close(); err != nil {
			a.log.Printf("close audio source: %v", err)
		}
		if err := a.prof.Close(); err != nil {
			a.log.Printf("close profile: %v", err)
		}
	}()

	frame := make([]int16, a.cfg.Wall.FrameSize)
	for {
		if ctx.Err() != nil {
			return
		}
		if err := a.source.ReadFrame(ctx, frame); err != nil {
			if ctx.Err() != nil {
				return
			}
			stop(fmt.Errorf("read audio frame: %w", err))
			return
		}
		if err := a.pipeline.Process(frame); err != nil {
			stop(err)
			return
		}
	}
}

func (a *App) renderLoop(ctx context.Context, stop context.CancelCauseFunc) {
	defer func() {
		if err := a.renderer.Close(); err != nil {
			a.log.Printf("close renderer: %v", err)
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Wall.TargetFPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		theta := a.rotation.Advance()
		version := a.state.Version()
		frame := a.projector.Project(a.state.Snapshot(), theta)
		frame.Version = version
		if err := a.renderer.Draw(frame); err != nil {
			stop(err)
			return
		}
	}
}
