package phase

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Transform is a short-time Fourier transform with matching analysis and
// synthesis. Frames start at multiples of HopLength, there is no centering.
type Transform struct {
	FrameSize int
	HopLength int
	Window    []float64
}

// NewTransform creates a Transform with the named window.
func NewTransform(frameSize, hopLength int, kind Window) (*Transform, error) {
	if hopLength <= 0 || hopLength > frameSize {
		return nil, fmt.Errorf("%w: hop %d for frame %d", ErrInvalidTransform, hopLength, frameSize)
	}
	w, err := NewWindow(kind, frameSize)
	if err != nil {
		return nil, err
	}
	return &Transform{
		FrameSize: frameSize,
		HopLength: hopLength,
		Window:    w,
	}, nil
}

// Bins is the number of non-negative frequency bins per frame.
func (t *Transform) Bins() int {
	return t.FrameSize/2 + 1
}

// NumFrames returns how many whole frames fit in n samples.
func (t *Transform) NumFrames(n int) int {
	if n < t.FrameSize {
		return 0
	}
	return (n-t.FrameSize)/t.HopLength + 1
}

// SignalLength returns the number of samples Synthesize produces for frames frames.
func (t *Transform) SignalLength(frames int) int {
	if frames <= 0 {
		return 0
	}
	return t.HopLength*(frames-1) + t.FrameSize
}

// Analyze returns the windowed spectrum of every whole frame of signal,
// each holding Bins() coefficients.
func (t *Transform) Analyze(signal []float64) [][]complex128 {
	bins := t.Bins()
	out := make([][]complex128, t.NumFrames(len(signal)))
	frame := make([]float64, t.FrameSize)
	for i := range out {
		off := i * t.HopLength
		for j := range frame {
			frame[j] = signal[off+j] * t.Window[j]
		}
		spectrum := fft.FFTReal(frame)
		out[i] = append([]complex128(nil), spectrum[:bins]...)
	}
	return out
}

// Synthesize overlap-adds the inverse transform of every frame. Each frame
// holds Bins() coefficients, the negative frequencies are their conjugates.
// The sum is normalized by the summed synthesis window.
func (t *Transform) Synthesize(frames [][]complex128) []float64 {
	n := t.FrameSize
	out := make([]float64, t.SignalLength(len(frames)))
	windowSum := make([]float64, len(out))
	full := make([]complex128, n)

	for i, bins := range frames {
		for k := range full {
			full[k] = 0
		}
		copy(full, bins)
		for k := 1; k < n-k && k < len(bins); k++ {
			full[n-k] = cmplx.Conj(bins[k])
		}
		buf := fft.IFFT(full)
		off := i * t.HopLength
		for j := 0; j < n; j++ {
			out[off+j] += real(buf[j]) * t.Window[j]
			windowSum[off+j] += t.Window[j]
		}
	}

	for i := range out {
		if windowSum[i] != 0 {
			out[i] /= windowSum[i]
		}
	}
	return out
}
