package phase

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// InitPhase selects the phase estimate the first round starts from.
type InitPhase string

const (
	RandomPhase InitPhase = "random"
	ZeroPhase   InitPhase = "zero"
)

var (
	ErrInvalidIterations = errors.New("invalidIterations")
	ErrShapeMismatch     = errors.New("shapeMismatch")
	ErrNegativeMagnitude = errors.New("negativeMagnitude")
	ErrInvalidMomentum   = errors.New("invalidMomentum")
	ErrInvalidTransform  = errors.New("invalidTransform")
	ErrUnknownWindow     = errors.New("unknownWindow")
	ErrUnknownInitPhase  = errors.New("unknownInitPhase")
)

const tiny = 1e-16

// Reconstructor represents the configuration for Griffin-Lim phase reconstruction.
type Reconstructor struct {
	FrameSize  int
	HopLength  int
	Iterations int
	Window     Window

	// Momentum of the fast Griffin-Lim update, 0 is the classic algorithm
	Momentum float64

	InitPhase InitPhase
	Seed      int64

	// Progress, when set, is called after every round.
	Progress func(done, total int)
}

// NewReconstructor creates a new Reconstructor instance with default values.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{
		FrameSize:  2048,
		HopLength:  512,
		Iterations: 80,
		Window:     Hann,
		Momentum:   0.99,
		InitPhase:  RandomPhase,
		Seed:       1,
	}
}

// Reconstruct estimates a waveform whose magnitude spectrogram approximates mag.
// Rows of mag are frequency bins (FrameSize/2+1 of them), columns are frames.
// The result has HopLength*(frames-1)+FrameSize samples.
func (r *Reconstructor) Reconstruct(mag mat.Matrix) ([]float64, error) {
	if r.Iterations <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, r.Iterations)
	}
	if r.Momentum < 0 || r.Momentum > 1 || math.IsNaN(r.Momentum) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMomentum, r.Momentum)
	}
	t, err := NewTransform(r.FrameSize, r.HopLength, r.Window)
	if err != nil {
		return nil, err
	}
	bins, frames := mag.Dims()
	if bins != t.Bins() || frames == 0 {
		return nil, fmt.Errorf("%w: got %dx%d, want %d bins", ErrShapeMismatch, bins, frames, t.Bins())
	}

	target := make([][]float64, frames)
	for i := range target {
		target[i] = make([]float64, bins)
		for k := range target[i] {
			v := mag.At(k, i)
			if v < 0 || math.IsNaN(v) {
				return nil, fmt.Errorf("%w: %v at bin %d frame %d", ErrNegativeMagnitude, v, k, i)
			}
			target[i][k] = v
		}
	}

	angles, err := r.initialAngles(frames, bins)
	if err != nil {
		return nil, err
	}

	spectrum := make([][]complex128, frames)
	for i := range spectrum {
		spectrum[i] = make([]complex128, bins)
	}

	alpha := complex(r.Momentum/(1+r.Momentum), 0)
	var previous [][]complex128
	for iter := 0; iter < r.Iterations; iter++ {
		combine(spectrum, target, angles)
		rebuilt := t.Analyze(t.Synthesize(spectrum))

		for i := range angles {
			for k := range angles[i] {
				a := rebuilt[i][k]
				if previous != nil {
					a -= alpha * previous[i][k]
				}
				angles[i][k] = a / complex(cmplx.Abs(a)+tiny, 0)
			}
		}
		previous = rebuilt

		if r.Progress != nil {
			r.Progress(iter+1, r.Iterations)
		}
	}

	combine(spectrum, target, angles)
	return t.Synthesize(spectrum), nil
}

func (r *Reconstructor) initialAngles(frames, bins int) ([][]complex128, error) {
	angles := make([][]complex128, frames)
	switch r.InitPhase {
	case RandomPhase, "":
		rng := rand.New(rand.NewSource(r.Seed))
		for i := range angles {
			angles[i] = make([]complex128, bins)
			for k := range angles[i] {
				angles[i][k] = cmplx.Rect(1, 2*math.Pi*rng.Float64())
			}
		}
	case ZeroPhase:
		for i := range angles {
			angles[i] = make([]complex128, bins)
			for k := range angles[i] {
				angles[i][k] = 1
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInitPhase, string(r.InitPhase))
	}
	return angles, nil
}

// combine writes magnitude times unit phase into spectrum.
func combine(spectrum [][]complex128, target [][]float64, angles [][]complex128) {
	for i := range spectrum {
		for k := range spectrum[i] {
			spectrum[i][k] = complex(target[i][k], 0) * angles[i][k]
		}
	}
}
