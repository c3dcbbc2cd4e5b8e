// Package agc tracks a decaying upper bound per channel so that unbounded
// spectral energy can be scaled into a fixed display range.
package agc

const (
	// Epsilon is the lowest value a peak may take; normalization divides by it.
	Epsilon = 1e-3
	// InitialPeak is the starting ceiling for every channel.
	InitialPeak = 32767.0
	// DecayFactor shrinks a peak once the signal falls well below it.
	DecayFactor = 0.75
	// DecayRatio is the fraction of the peak under which decay kicks in.
	DecayRatio = 0.1
)

// Tracker holds one peak per logical channel. Channels are stripes, rings or
// blocks depending on the animation using it.
type Tracker struct {
	peaks   []float64
	initial float64
}

// New creates a tracker with channels peaks set to initial.
func New(channels int, initial float64) *Tracker {
	if channels < 1 {
		channels = 1
	}
	t := &Tracker{
		peaks:   make([]float64, channels),
		initial: floor(initial),
	}
	t.Reset()
	return t
}

// Reset restores every channel to the initial estimate.
func (t *Tracker) Reset() {
	for i := range t.peaks {
		t.peaks[i] = t.initial
	}
}

// Channels returns the number of tracked channels.
func (t *Tracker) Channels() int {
	return len(t.peaks)
}

// Peak returns the current estimate for channel c.
func (t *Tracker) Peak(c int) float64 {
	return t.peaks[c]
}

// Observe feeds magnitude m to channel c: adopt it if it exceeds the peak,
// otherwise decay when it is far below. Returns the updated peak.
func (t *Tracker) Observe(c int, m float64) float64 {
	if m > t.peaks[c] {
		t.peaks[c] = m
	}
	return t.Decay(c, m)
}

// Decay applies only the downward half of Observe.
func (t *Tracker) Decay(c int, m float64) float64 {
	p := t.peaks[c]
	if m < p*DecayRatio {
		p *= DecayFactor
	}
	t.peaks[c] = floor(p)
	return t.peaks[c]
}

// Set overrides the peak of channel c, respecting the floor.
func (t *Tracker) Set(c int, v float64) {
	t.peaks[c] = floor(v)
}

// Normalize scales value against peak into [0, outMax].
func Normalize(value, peak, outMax float64) float64 {
	if peak < Epsilon {
		peak = Epsilon
	}
	v := value / peak * outMax
	if v < 0 {
		return 0
	}
	if v > outMax {
		return outMax
	}
	return v
}

func floor(v float64) float64 {
	// NaN compares false, so route it to the floor as well.
	if !(v >= Epsilon) {
		return Epsilon
	}
	return v
}
