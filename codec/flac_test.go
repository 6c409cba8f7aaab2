package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFlac stores one verbatim 16-bit stereo frame at path.
func writeFlac(t *testing.T, path string, rate uint32, left, right []int32) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)

	n := len(left)
	enc, err := flac.NewEncoder(f, &meta.StreamInfo{
		BlockSizeMin:  uint16(n),
		BlockSizeMax:  uint16(n),
		SampleRate:    rate,
		NChannels:     2,
		BitsPerSample: 16,
		NSamples:      uint64(n),
	})
	require.NoError(t, err)

	sub := func(samples []int32) *frame.Subframe {
		return &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   samples,
			NSamples:  len(samples),
		}
	}
	require.NoError(t, enc.WriteFrame(&frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: true,
			BlockSize:         uint16(n),
			SampleRate:        rate,
			Channels:          frame.ChannelsLR,
			BitsPerSample:     16,
		},
		Subframes: []*frame.Subframe{sub(left), sub(right)},
	}))
	require.NoError(t, enc.Close())
}

func TestLoadFlacDownmixesStereo(t *testing.T) {
	left := make([]int32, 16)
	right := make([]int32, 16)
	copy(left, []int32{16384, 0, -16384, 8192})
	copy(right, []int32{0, 0, -16384, 8192})

	path := filepath.Join(t.TempDir(), "host.flac")
	writeFlac(t, path, 8000, left, right)

	out, err := Load(path, 8000)
	require.NoError(t, err)
	require.Len(t, out, 16)
	assert.InDeltaSlice(t, []float64{0.25, 0, -0.5, 0.25}, out[:4], 1e-12)
	for _, v := range out[4:] {
		assert.Zero(t, v)
	}
}

func TestLoadFlacResamples(t *testing.T) {
	left := make([]int32, 4000)
	for i := range left {
		left[i] = int32(i%64) * 256
	}
	path := filepath.Join(t.TempDir(), "host.flac")
	writeFlac(t, path, 8000, left, left)

	out, err := Load(path, 16000)
	require.NoError(t, err)
	assert.InDelta(t, 8000, len(out), 32)
}

func TestLoadInvalidFlac(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.flac")
	require.NoError(t, os.WriteFile(path, []byte("not a flac file"), 0o644))

	_, err := Load(path, 22050)
	assert.ErrorIs(t, err, ErrFileNotLoaded)
}
