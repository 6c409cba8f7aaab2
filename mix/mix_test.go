package mix

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rate = 22050

func ramp(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(float64(i)/7) + 0.1
	}
	return x
}

func TestGain(t *testing.T) {
	assert.InDelta(t, 1.0, Gain(0), 1e-12)
	assert.InDelta(t, 0.251188643, Gain(-12), 1e-9)
	assert.InDelta(t, 2.0, Gain(6.0206), 1e-4)
}

func TestMixScenario(t *testing.T) {
	host := make([]float64, 10*rate)
	message := ramp(2 * rate)

	out, err := Mix(host, message, rate, Params{
		StartOffset:    3 * time.Second,
		GainDB:         -12,
		OutputDuration: 8 * time.Second,
	})
	require.NoError(t, err)
	require.Len(t, out, 176400)

	g := math.Pow(10, -12.0/20)
	for i := 0; i < 66150; i++ {
		require.Zero(t, out[i], "sample %d", i)
	}
	for i := 66150; i < 110250; i++ {
		require.InDelta(t, message[i-66150]*g, out[i], 1e-12, "sample %d", i)
	}
	for i := 110250; i < 176400; i++ {
		require.Zero(t, out[i], "sample %d", i)
	}
}

func TestMixLocality(t *testing.T) {
	host := ramp(4 * rate)
	for i := range host {
		host[i] *= -0.3
	}
	orig := append([]float64(nil), host...)
	message := ramp(rate)

	out, err := Mix(host, message, rate, Params{StartOffset: time.Second, GainDB: -6})
	require.NoError(t, err)
	require.Len(t, out, len(host))

	assert.Equal(t, orig[:rate], out[:rate])
	assert.Equal(t, orig[2*rate:], out[2*rate:])
	assert.Equal(t, orig, host, "host must not change")
	assert.Equal(t, ramp(rate), message, "message must not change")
}

func TestMixGainMonotonic(t *testing.T) {
	host := make([]float64, rate)
	message := ramp(rate / 2)

	prev := -1.0
	for _, db := range []float64{-40, -12, -6, 0, 3} {
		out, err := Mix(host, message, rate, Params{GainDB: db})
		require.NoError(t, err)
		peak := 0.0
		for _, v := range out {
			peak = math.Max(peak, math.Abs(v))
		}
		assert.Greater(t, peak, prev, "gain %v dB", db)
		prev = peak
	}
}

func TestMixPadsShortHost(t *testing.T) {
	host := []float64{1, 1, 1}
	out, err := Mix(host, []float64{0.5, 0.5, 0.5, 0.5}, 10, Params{
		StartOffset:    200 * time.Millisecond,
		OutputDuration: 500 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1.5, 0.5, 0.5}, out)
}

func TestMixDropsMessageTail(t *testing.T) {
	out, err := Mix([]float64{0, 0, 0, 0}, []float64{1, 2, 3}, 10, Params{StartOffset: 200 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 2}, out)
}

func TestMixOffsetPastEnd(t *testing.T) {
	out, err := Mix([]float64{1, 2}, []float64{5}, 10, Params{StartOffset: time.Second})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, out)
}

func TestMixInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		rate int
		p    Params
	}{
		{"negative offset", rate, Params{StartOffset: -time.Second}},
		{"negative duration", rate, Params{OutputDuration: -time.Second}},
		{"nan gain", rate, Params{GainDB: math.NaN()}},
		{"zero rate", 0, Params{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Mix([]float64{0}, []float64{1}, tt.rate, tt.p)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}
