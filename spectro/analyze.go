package spectro

import (
	"math"

	"github.com/neurlang/specstego/phase"
	"gonum.org/v1/gonum/mat"
)

// Analyze returns the magnitude spectrogram of signal. Signals shorter than
// one frame are zero padded.
func Analyze(signal []float64, frameSize, hopLength int, window phase.Window) (*mat.Dense, error) {
	t, err := phase.NewTransform(frameSize, hopLength, window)
	if err != nil {
		return nil, err
	}
	if len(signal) < frameSize {
		padded := make([]float64, frameSize)
		copy(padded, signal)
		signal = padded
	}

	frames := t.Analyze(signal)
	out := mat.NewDense(t.Bins(), len(frames), nil)
	for i, f := range frames {
		for k, c := range f {
			out.Set(k, i, math.Hypot(real(c), imag(c)))
		}
	}
	return out, nil
}
