// Package audio provides the frame sources the capture loop reads from:
// a PortAudio input device, decoded audio files and a synthetic generator.
package audio

import (
	"context"
	"errors"
	"time"
)

// ErrShortRead is returned when a source cannot deliver a full frame.
var ErrShortRead = errors.New("audio source delivered a partial frame")

// Source yields fixed-size mono int16 frames. ReadFrame blocks until dst is
// completely filled; len(dst) must equal the frame size the source was
// opened with.
type Source interface {
	ReadFrame(ctx context.Context, dst []int16) error
	SampleRate() float64
	Close() error
}

// FrameDuration is how long one frame of n samples lasts at rate Hz.
func FrameDuration(n int, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(n) / rate * float64(time.Second))
}

// pacer releases at most one frame per interval so non-device sources run
// at the cadence a real device would.
type pacer struct {
	interval time.Duration
	next     time.Time
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval}
}

func (p *pacer) wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return ctx.Err()
	}
	now := time.Now()
	if p.next.IsZero() || now.After(p.next.Add(p.interval)) {
		// first frame, or we fell far behind: restart the schedule
		p.next = now
	}
	delay := p.next.Sub(now)
	p.next = p.next.Add(p.interval)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func toInt16(v float32) int16 {
	s := v * 32768
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}
