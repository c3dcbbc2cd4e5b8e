// Package analyzer computes magnitude spectra of audio frames.
package analyzer

// BassBins is how many of the lowest bins make up the bass energy.
const BassBins = 3

// Spectrum holds one non-negative magnitude per FFT bin.
type Spectrum []float64

// Sum adds bins [lo, hi), clipped to the spectrum length.
func (s Spectrum) Sum(lo, hi int) float64 {
	lo, hi = s.bounds(lo, hi)
	sum := 0.0
	for _, v := range s[lo:hi] {
		sum += v
	}
	return sum
}

// Max returns the largest magnitude in [lo, hi), or 0 for an empty range.
func (s Spectrum) Max(lo, hi int) float64 {
	lo, hi = s.bounds(lo, hi)
	peak := 0.0
	for _, v := range s[lo:hi] {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Bass is the energy of the lowest BassBins bins.
func (s Spectrum) Bass() float64 {
	return s.Sum(0, BassBins)
}

// Bin returns bin i, or 0 when i is out of range.
func (s Spectrum) Bin(i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func (s Spectrum) bounds(lo, hi int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > len(s) {
		hi = len(s)
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
