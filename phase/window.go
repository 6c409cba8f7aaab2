package phase

import (
	"fmt"

	dspwindow "github.com/mjibson/go-dsp/window"
	"github.com/r9y9/gossp/window"
)

// Window names the analysis and synthesis window function.
type Window string

const (
	Hann    Window = "hann"
	Hamming Window = "hamming"
	Rect    Window = "rect"
)

// NewWindow returns the n-point window of the given kind.
func NewWindow(kind Window, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: window length %d", ErrInvalidTransform, n)
	}
	switch kind {
	case Hann, "":
		return window.CreateHanning(n), nil
	case Hamming:
		return window.CreateHamming(n), nil
	case Rect:
		return dspwindow.Rectangular(n), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWindow, string(kind))
}
