// Package mix overlays a message waveform onto a host waveform.
package mix

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/neurlang/specstego/wave"
	"github.com/tphakala/simd/f64"
)

var ErrInvalidParams = errors.New("invalidParams")

// Params controls where and how loud the message is mixed.
type Params struct {
	StartOffset time.Duration
	GainDB      float64

	// OutputDuration, when positive, is the exact length of the result.
	// Otherwise the result keeps the host length.
	OutputDuration time.Duration
}

// Gain converts decibels to a linear amplitude factor.
func Gain(db float64) float64 {
	return math.Pow(10, db/20)
}

// Mix returns host with message scaled by GainDB added from StartOffset on.
// Message samples past the end of the result are dropped. Nothing is
// clipped, and neither input is modified.
func Mix(host, message []float64, sampleRate int, p Params) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidParams, sampleRate)
	}
	if p.StartOffset < 0 || p.OutputDuration < 0 {
		return nil, fmt.Errorf("%w: offset %v duration %v", ErrInvalidParams, p.StartOffset, p.OutputDuration)
	}
	if math.IsNaN(p.GainDB) || math.IsInf(p.GainDB, 0) {
		return nil, fmt.Errorf("%w: gain %v dB", ErrInvalidParams, p.GainDB)
	}

	n := len(host)
	if p.OutputDuration > 0 {
		n = wave.SampleCount(sampleRate, p.OutputDuration)
	}
	out := make([]float64, n)
	copy(out, host)

	start := wave.SampleCount(sampleRate, p.StartOffset)
	if start >= n || len(message) == 0 {
		return out, nil
	}
	overlap := min(len(message), n-start)

	scaled := make([]float64, overlap)
	f64.Scale(scaled, message[:overlap], Gain(p.GainDB))
	region := out[start : start+overlap]
	for i, v := range scaled {
		region[i] += v
	}
	return out, nil
}
