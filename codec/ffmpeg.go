package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// loadFFmpeg runs ffmpeg to decode path to mono 16-bit PCM at sampleRate.
func loadFFmpeg(path string, sampleRate int) ([]float64, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("%w: %s needs ffmpeg: %v", ErrUnsupported, path, err)
	}
	cmd := exec.Command("ffmpeg",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", "1",
		"-loglevel", "error",
		"pipe:1",
	)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: ffmpeg decode %s: %s", ErrFileNotLoaded, path, exitErr.Stderr)
		}
		return nil, fmt.Errorf("ffmpeg decode %s: %w", path, err)
	}

	samples := make([]float64, len(out)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(out[i*2:]))) / 32768
	}
	return samples, nil
}
