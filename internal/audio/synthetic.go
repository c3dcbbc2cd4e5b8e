package audio

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Synthetic generates a kick-like bass pulse under a slowly sweeping tone.
// It stands in for a device when running without audio hardware.
type Synthetic struct {
	rate      float64
	frameSize int
	rng       *rand.Rand
	pace      *pacer

	sample    int
	phaseTone float64
	sweep     float64
}

// SyntheticConfig controls a Synthetic source.
type SyntheticConfig struct {
	SampleRate float64
	FrameSize  int
	Seed       int64
	Realtime   bool
}

const (
	kickHz       = 55.0
	kickPeriod   = 0.5 // seconds between kicks
	kickDecay    = 12.0
	sweepLowHz   = 200.0
	sweepRangeHz = 1800.0
)

// NewSynthetic creates a generator. Equal seeds produce equal streams.
func NewSynthetic(cfg SyntheticConfig) *Synthetic {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44_100
	}
	if cfg.FrameSize <= 0 {
		cfg.FrameSize = defaultFrameSize
	}
	s := &Synthetic{
		rate:      cfg.SampleRate,
		frameSize: cfg.FrameSize,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
	if cfg.Realtime {
		s.pace = newPacer(FrameDuration(cfg.FrameSize, cfg.SampleRate))
	}
	return s
}

func (s *Synthetic) SampleRate() float64 { return s.rate }
func (s *Synthetic) Close() error        { return nil }

// ReadFrame synthesizes the next frame.
func (s *Synthetic) ReadFrame(ctx context.Context, dst []int16) error {
	if len(dst) != s.frameSize {
		return fmt.Errorf("%w: want %d samples, got buffer of %d", ErrShortRead, s.frameSize, len(dst))
	}
	if err := s.pace.wait(ctx); err != nil {
		return err
	}

	dt := 1.0 / s.rate
	for i := range dst {
		t := float64(s.sample) * dt
		sinceKick := math.Mod(t, kickPeriod)
		kick := math.Exp(-sinceKick*kickDecay) * math.Sin(2*math.Pi*kickHz*sinceKick)

		s.sweep += dt * 0.1
		toneHz := sweepLowHz + sweepRangeHz*(0.5+0.5*math.Sin(2*math.Pi*s.sweep))
		s.phaseTone += 2 * math.Pi * toneHz * dt
		if s.phaseTone > 2*math.Pi {
			s.phaseTone -= 2 * math.Pi
		}
		tone := 0.25 * math.Sin(s.phaseTone)

		noise := (s.rng.Float64()*2 - 1) * 0.02
		dst[i] = toInt16(float32(clamp(0.7*kick+tone+noise, -1, 1)))
		s.sample++
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
