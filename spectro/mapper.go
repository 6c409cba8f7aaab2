package spectro

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/mat"
)

var ErrInvalidInput = errors.New("invalidInput")

// FreqBins returns the number of non-negative frequency bins of a frame.
func FreqBins(frameSize int) int {
	return frameSize/2 + 1
}

// TimeFrames returns how many hops of hopLength cover d at sampleRate.
func TimeFrames(sampleRate int, d time.Duration, hopLength int) int {
	return int(math.Ceil(d.Seconds() * float64(sampleRate) / float64(hopLength)))
}

// Mapper represents the configuration for turning an intensity grid into a
// magnitude spectrogram.
type Mapper struct {
	FrameSize    int
	HopLength    int
	MaxAmplitude float64
}

// NewMapper creates a new Mapper instance with default values.
func NewMapper() *Mapper {
	return &Mapper{
		FrameSize:    2048,
		HopLength:    512,
		MaxAmplitude: 12,
	}
}

// ToMagnitude resamples grid to FreqBins(FrameSize) rows, keeping its width as
// the number of frames, and scales intensities from [0, 255] to
// [0, MaxAmplitude]. Grid row r becomes frequency bin r.
func (m *Mapper) ToMagnitude(grid *image.Gray) (*mat.Dense, error) {
	if m.FrameSize < 2 || m.HopLength <= 0 || m.MaxAmplitude <= 0 || math.IsNaN(m.MaxAmplitude) {
		return nil, fmt.Errorf("%w: frame %d hop %d amplitude %v", ErrInvalidInput, m.FrameSize, m.HopLength, m.MaxAmplitude)
	}
	if grid == nil || grid.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidInput)
	}

	bins := FreqBins(m.FrameSize)
	frames := grid.Bounds().Dx()

	scaled := image.NewGray(image.Rect(0, 0, frames, bins))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), grid, grid.Bounds(), draw.Src, nil)

	scale := m.MaxAmplitude / 255
	out := mat.NewDense(bins, frames, nil)
	for k := 0; k < bins; k++ {
		row := scaled.Pix[k*scaled.Stride : k*scaled.Stride+frames]
		for t, v := range row {
			out.Set(k, t, float64(v)*scale)
		}
	}
	return out, nil
}
