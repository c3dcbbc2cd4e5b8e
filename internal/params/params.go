// Package params holds the static description of the wall and its runtime
// knobs, with defaults matching the physical build.
package params

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/guidoenr/ledwall/internal/animation"
	"github.com/guidoenr/ledwall/internal/geometry"
)

// Wall is the full run configuration. Geometry and animation are fixed for
// the life of the process.
type Wall struct {
	Stripes       int
	LEDs          int
	LEDSpacing    float64
	StripeSpacing float64
	LEDSize       float64
	AngleSpeed    float64 // radians per render tick

	SampleRate float64
	FrameSize  int
	TargetFPS  int

	Animation string
	Layout    string
	Width     int
	Height    int
}

// Defaults returns the configuration of the built wall.
func Defaults() Wall {
	return Wall{
		Stripes:       16,
		LEDs:          67,
		LEDSpacing:    5,
		StripeSpacing: 70,
		LEDSize:       8,
		AngleSpeed:    0.01,
		SampleRate:    44_100,
		FrameSize:     1024,
		TargetFPS:     30,
		Animation:     string(animation.DefaultKind),
		Layout:        string(geometry.ModeCircular),
		Width:         1600,
		Height:        900,
	}
}

// FromEnv overrides fields of w with any LEDWALL_* variables that are set
// and parse.
func FromEnv(w Wall) Wall {
	w.Stripes = envInt("LEDWALL_STRIPES", w.Stripes)
	w.LEDs = envInt("LEDWALL_LEDS", w.LEDs)
	w.LEDSpacing = envFloat("LEDWALL_LED_SPACING", w.LEDSpacing)
	w.StripeSpacing = envFloat("LEDWALL_STRIPE_SPACING", w.StripeSpacing)
	w.LEDSize = envFloat("LEDWALL_LED_SIZE", w.LEDSize)
	w.AngleSpeed = envFloat("LEDWALL_ANGLE_SPEED", w.AngleSpeed)
	w.SampleRate = envFloat("LEDWALL_SAMPLE_RATE", w.SampleRate)
	w.FrameSize = envInt("LEDWALL_FRAME_SIZE", w.FrameSize)
	w.TargetFPS = envInt("LEDWALL_FPS", w.TargetFPS)
	w.Animation = envStr("LEDWALL_ANIMATION", w.Animation)
	w.Layout = envStr("LEDWALL_LAYOUT", w.Layout)
	w.Width = envInt("LEDWALL_WIDTH", w.Width)
	w.Height = envInt("LEDWALL_HEIGHT", w.Height)
	return w
}

// Validate reports every invalid field at once.
func (w Wall) Validate() error {
	var errs []error
	if w.Stripes < 1 {
		errs = append(errs, fmt.Errorf("stripes must be positive, got %d", w.Stripes))
	}
	if w.LEDs < 1 {
		errs = append(errs, fmt.Errorf("leds must be positive, got %d", w.LEDs))
	}
	if w.LEDSpacing < 0 || w.StripeSpacing < 0 {
		errs = append(errs, errors.New("spacing cannot be negative"))
	}
	if w.LEDSize <= 0 {
		errs = append(errs, fmt.Errorf("led size must be positive, got %g", w.LEDSize))
	}
	if w.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate must be positive, got %g", w.SampleRate))
	}
	if w.FrameSize < 2 {
		errs = append(errs, fmt.Errorf("frame size must be at least 2, got %d", w.FrameSize))
	} else if w.FrameSize/2 < w.Stripes {
		// spectral variants read one bin per stripe
		errs = append(errs, fmt.Errorf("frame size %d yields fewer bins than %d stripes", w.FrameSize, w.Stripes))
	}
	if w.TargetFPS < 1 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", w.TargetFPS))
	}
	if w.Width < 1 || w.Height < 1 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", w.Width, w.Height))
	}
	if _, err := animation.ParseKind(w.Animation); err != nil {
		errs = append(errs, err)
	}
	if _, err := geometry.ParseMode(w.Layout); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Kind returns the parsed animation. Call Validate first.
func (w Wall) Kind() animation.Kind {
	k, _ := animation.ParseKind(w.Animation)
	return k
}

// Mode returns the parsed layout mode. Call Validate first.
func (w Wall) Mode() geometry.Mode {
	m, err := geometry.ParseMode(w.Layout)
	if err != nil {
		return geometry.ModeCircular
	}
	return m
}

// Geometry returns the physical layout used for projection.
func (w Wall) Geometry() geometry.Layout {
	return geometry.Layout{
		Stripes:       w.Stripes,
		LEDs:          w.LEDs,
		StripeSpacing: w.StripeSpacing,
		LEDSpacing:    w.LEDSpacing,
		LEDSize:       w.LEDSize,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
