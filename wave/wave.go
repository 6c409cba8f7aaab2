// Package wave peak-normalizes synthesized waveforms and fits them to an
// exact duration.
package wave

import (
	"math"
	"time"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Epsilon guards the peak division against all-silent input.
const Epsilon = 1e-9

// Normalize returns a copy of signal divided by its peak absolute value plus
// Epsilon.
func Normalize(signal []float64) []float64 {
	out := make([]float64, len(signal))
	if len(signal) == 0 {
		return out
	}
	peak := floats.Norm(signal, math.Inf(1))
	f64.Scale(out, signal, 1/(peak+Epsilon))
	return out
}

// SampleCount returns the number of samples spanning d at sampleRate.
func SampleCount(sampleRate int, d time.Duration) int {
	return int(math.Round(float64(sampleRate) * d.Seconds()))
}

// FitLength returns a copy of signal zero padded on the right or cut to n samples.
func FitLength(signal []float64, n int) []float64 {
	out := make([]float64, max(n, 0))
	copy(out, signal)
	return out
}

// Fit peak-normalizes signal and fits it to exactly d at sampleRate.
func Fit(signal []float64, sampleRate int, d time.Duration) []float64 {
	return FitLength(Normalize(signal), SampleCount(sampleRate, d))
}
