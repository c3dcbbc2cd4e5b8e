package analyzer

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// ErrFrameSize is returned when a frame does not carry exactly the configured
// number of samples. Frames are fixed-size by construction, so callers should
// treat it as fatal.
var ErrFrameSize = errors.New("audio frame has wrong sample count")

const defaultSize = 1024

// Analyzer turns fixed-size PCM frames into magnitude spectra. It applies no
// window and no overlap; the transform length equals the frame length.
type Analyzer struct {
	size   int
	buffer []float64
}

// New creates an Analyzer for frames of size samples.
func New(size int) *Analyzer {
	if size <= 0 {
		size = defaultSize
	}
	return &Analyzer{
		size:   size,
		buffer: make([]float64, size),
	}
}

// Size is the expected frame length.
func (a *Analyzer) Size() int {
	return a.size
}

// Analyze returns |DFT(frame)| with one entry per bin. The output keeps the
// redundant upper half so bin indices line up with the input.
func (a *Analyzer) Analyze(frame []int16) (Spectrum, error) {
	if len(frame) != a.size {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFrameSize, len(frame), a.size)
	}

	for i, s := range frame {
		a.buffer[i] = float64(s)
	}

	bins := fft.FFTReal(a.buffer)
	out := make(Spectrum, len(bins))
	for i, c := range bins {
		out[i] = cmag(c)
	}
	return out, nil
}

func cmag(c complex128) float64 {
	return math.Sqrt(real(c)*real(c) + imag(c)*imag(c))
}
