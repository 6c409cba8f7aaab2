package spectro

import (
	"image"
	"testing"
	"time"

	"github.com/neurlang/specstego/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTimeFramesAndBins(t *testing.T) {
	assert.Equal(t, 87, TimeFrames(22050, 2*time.Second, 512))
	assert.Equal(t, 646, TimeFrames(22050, 15*time.Second, 512))
	assert.Equal(t, 1025, FreqBins(2048))
	assert.Equal(t, 129, FreqBins(256))
}

func TestToMagnitudeShapeAndRange(t *testing.T) {
	r := raster.NewRasterizer()
	r.Width = TimeFrames(22050, 2*time.Second, 512)
	grid := r.Rasterize("HI")

	m := NewMapper()
	mag, err := m.ToMagnitude(grid)
	require.NoError(t, err)

	rows, cols := mag.Dims()
	assert.Equal(t, 1025, rows)
	assert.Equal(t, 87, cols)
	assert.GreaterOrEqual(t, mat.Min(mag), 0.0)
	assert.LessOrEqual(t, mat.Max(mag), m.MaxAmplitude)
	assert.Positive(t, mat.Max(mag))
}

func TestToMagnitudeUniformScale(t *testing.T) {
	grid := image.NewGray(image.Rect(0, 0, 10, 64))
	for i := range grid.Pix {
		grid.Pix[i] = 255
	}
	m := &Mapper{FrameSize: 256, HopLength: 64, MaxAmplitude: 8}
	mag, err := m.ToMagnitude(grid)
	require.NoError(t, err)

	rows, cols := mag.Dims()
	require.Equal(t, 129, rows)
	require.Equal(t, 10, cols)
	for k := 0; k < rows; k++ {
		for f := 0; f < cols; f++ {
			assert.InDelta(t, 8.0, mag.At(k, f), 8.0/255*1.01)
		}
	}
}

func TestToMagnitudeRowIsFrequency(t *testing.T) {
	grid := image.NewGray(image.Rect(0, 0, 6, 32))
	for x := 0; x < 6; x++ {
		grid.SetGray(x, 31, raster.InkColor)
	}
	m := &Mapper{FrameSize: 256, HopLength: 64, MaxAmplitude: 1}
	mag, err := m.ToMagnitude(grid)
	require.NoError(t, err)

	assert.Zero(t, mag.At(0, 3))
	assert.Zero(t, mag.At(10, 3))
	assert.Positive(t, mag.At(128, 3))
}

func TestToMagnitudeSilentGrid(t *testing.T) {
	m := &Mapper{FrameSize: 256, HopLength: 64, MaxAmplitude: 5}
	mag, err := m.ToMagnitude(image.NewGray(image.Rect(0, 0, 4, 16)))
	require.NoError(t, err)
	assert.Zero(t, mat.Max(mag))
}

func TestToMagnitudeInvalidInput(t *testing.T) {
	grid := image.NewGray(image.Rect(0, 0, 4, 16))

	tests := []struct {
		name string
		m    *Mapper
		grid *image.Gray
	}{
		{"nil grid", NewMapper(), nil},
		{"empty grid", NewMapper(), image.NewGray(image.Rect(0, 0, 0, 16))},
		{"zero amplitude", &Mapper{FrameSize: 256, HopLength: 64}, grid},
		{"zero hop", &Mapper{FrameSize: 256, MaxAmplitude: 1}, grid},
		{"tiny frame", &Mapper{FrameSize: 1, HopLength: 1, MaxAmplitude: 1}, grid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.ToMagnitude(tt.grid)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
