package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/guidoenr/ledwall/internal/animation"
	"github.com/guidoenr/ledwall/internal/app"
	"github.com/guidoenr/ledwall/internal/audio"
	"github.com/guidoenr/ledwall/internal/geometry"
	"github.com/guidoenr/ledwall/internal/params"
	"github.com/guidoenr/ledwall/internal/render"
	"github.com/guidoenr/ledwall/internal/web"
)

// SDL must be driven from the main OS thread, and the render loop runs on
// the main goroutine.
func init() {
	runtime.LockOSThread()
}

func main() {
	wall := params.FromEnv(params.Defaults())

	var (
		animationName = flag.String("animation", wall.Animation, "Animation ("+strings.Join(animation.KindNames(), "|")+")")
		layout        = flag.String("layout", wall.Layout, "Layout ("+strings.Join(geometry.ModeNames(), "|")+")")
		stripes       = flag.Int("stripes", wall.Stripes, "Number of stripes")
		leds          = flag.Int("leds", wall.LEDs, "LEDs per stripe")
		frameSize     = flag.Int("frame-size", wall.FrameSize, "Samples per audio frame")
		sampleRate    = flag.Float64("sample-rate", wall.SampleRate, "Capture sample rate in Hz")
		targetFPS     = flag.Int("fps", wall.TargetFPS, "Render frames per second")
		angleSpeed    = flag.Float64("angle-speed", wall.AngleSpeed, "Circular layout rotation per frame in radians")
		width         = flag.Int("width", wall.Width, "Viewport width in pixels")
		height        = flag.Int("height", wall.Height, "Viewport height in pixels")

		deviceName  = flag.String("audio-device", envOr("LEDWALL_AUDIO_DEVICE", ""), "Optional PortAudio device name (substring match)")
		file        = flag.String("file", envOr("LEDWALL_FILE", ""), "Play an audio file ("+strings.Join(audio.FormatNames(), "|")+") instead of capturing")
		loop        = flag.Bool("loop", false, "Restart the audio file when it ends")
		noAudio     = flag.Bool("no-audio", false, "Run with synthetic audio (for testing)")
		record      = flag.String("record", "", "Record captured audio to a WAV file")
		rendererArg = flag.String("renderer", envOr("LEDWALL_RENDERER", "terminal"), "Renderer (terminal|sdl|none)")
		palette     = flag.String("palette", "dots", "Terminal glyph palette ("+strings.Join(render.PaletteNames(), "|")+")")
		showStatus  = flag.Bool("status", true, "Display status bar in the terminal")
		previewAddr = flag.String("preview-addr", envOr("LEDWALL_PREVIEW_ADDR", ""), "Serve a browser preview on this address (e.g. :8080)")
		profile     = flag.String("profile", "", "Write per-frame pipeline timings to this CSV file")
		listDevs    = flag.Bool("list-audio-devices", false, "List available audio input devices and exit")
		debug       = flag.Bool("debug", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[ledwall] ", 0)
	if *debug {
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}

	wall.Animation = *animationName
	wall.Layout = *layout
	wall.Stripes = *stripes
	wall.LEDs = *leds
	wall.FrameSize = *frameSize
	wall.SampleRate = *sampleRate
	wall.TargetFPS = *targetFPS
	wall.AngleSpeed = *angleSpeed
	wall.Width = *width
	wall.Height = *height
	if err := wall.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	needAudio := (!*noAudio && *file == "") || *listDevs
	if needAudio {
		if err := audio.Initialize(); err != nil {
			logger.Fatalf("failed to initialize PortAudio: %v", err)
		}
		defer audio.Terminate()
	}

	if *listDevs {
		devices, err := audio.ListDevices()
		if err != nil {
			logger.Fatalf("list devices: %v", err)
		}
		fmt.Printf("\n=== Audio Input Devices ===\n\n")
		if err := audio.WriteDevices(os.Stdout, devices); err != nil {
			logger.Fatalf("list devices: %v", err)
		}
		if dev, err := audio.AutoDetectDevice(); err == nil && dev != nil {
			fmt.Printf("\nAuto-detected input: %s (%.0f Hz, %d channels)\n", dev.Name, dev.DefaultSampleRate, dev.MaxInputChannels)
		}
		return
	}

	renderer, keyboard, err := buildRenderer(*rendererArg, wall, *palette, *showStatus)
	if err != nil {
		logger.Fatalf("renderer: %v", err)
	}

	if *previewAddr != "" {
		preview := web.NewServer(web.Info{
			Stripes:   wall.Stripes,
			LEDs:      wall.LEDs,
			Animation: string(wall.Kind()),
			Layout:    string(wall.Mode()),
			TargetFPS: wall.TargetFPS,
			Source:    sourceName(*noAudio, *file),
		}, logger)
		if _, err := preview.Start(*previewAddr); err != nil {
			renderer.Close()
			logger.Fatalf("preview server: %v", err)
		}
		renderer = render.Multi{renderer, preview}
	}

	a, err := app.New(app.Config{
		Wall:       wall,
		DeviceName: *deviceName,
		File:       *file,
		Loop:       *loop,
		NoAudio:    *noAudio,
		Record:     *record,
		Renderer:   renderer,
		Keyboard:   keyboard,
		Profile:    *profile,
		Log:        logger,
	})
	if err != nil {
		renderer.Close()
		logger.Fatalf("failed to start: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			fmt.Println("\nExiting...")
			return
		}
		logger.Fatalf("runtime error: %v", err)
	}
}

// buildRenderer returns the backend and whether the app should listen for
// quit keys on the terminal.
func buildRenderer(name string, wall params.Wall, palette string, status bool) (render.Renderer, bool, error) {
	switch strings.ToLower(name) {
	case "terminal", "term", "ascii":
		return render.NewTerminal(render.TerminalConfig{
			Palette:   palette,
			StatusBar: status,
			AltScreen: true,
			Status:    string(wall.Kind()),
		}), true, nil
	case "sdl", "window":
		r, err := render.NewSDL("ledwall", wall.Width, wall.Height)
		if err != nil {
			return nil, false, err
		}
		return r, false, nil
	case "none", "headless":
		return &render.Headless{}, false, nil
	default:
		return nil, false, fmt.Errorf("unknown renderer %q", name)
	}
}

func sourceName(noAudio bool, file string) string {
	switch {
	case noAudio:
		return "synthetic"
	case file != "":
		return "file"
	default:
		return "device"
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
