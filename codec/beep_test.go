package codec

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gunshot.mp3 is 64 frames of 48 kHz mono MPEG-1 layer III.
const mp3Fixture = "testdata/gunshot.mp3"

func TestLoadMp3(t *testing.T) {
	out, err := Load(mp3Fixture, 48000)
	require.NoError(t, err)
	assert.InDelta(t, 64*1152, len(out), 2*1152)

	var peak float64
	for _, v := range out {
		require.False(t, math.IsNaN(v))
		assert.LessOrEqual(t, math.Abs(v), 1.0)
		peak = math.Max(peak, math.Abs(v))
	}
	assert.Greater(t, peak, 0.01)
}

func TestLoadMp3Resamples(t *testing.T) {
	native, err := Load(mp3Fixture, 48000)
	require.NoError(t, err)

	out, err := Load(mp3Fixture, 24000)
	require.NoError(t, err)
	assert.InDelta(t, len(native)/2, len(out), 16)
}

func TestLoadInvalidMp3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not an mp3 file"), 0o644))

	_, err := Load(path, 22050)
	assert.ErrorIs(t, err, ErrFileNotLoaded)
}
