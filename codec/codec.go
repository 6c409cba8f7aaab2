package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrFileNotLoaded = errors.New("fileNotLoaded")
	ErrUnsupported   = errors.New("unsupported")
)

// FFmpegRate is the rate containers without a native decoder are decoded at.
const FFmpegRate = 44100

// Decode reads the audio file at path as mono samples at its own rate.
func Decode(path string) ([]float64, int, error) {
	var (
		samples []float64
		rate    int
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		samples, rate, err = loadWav(path)
	case ".mp3":
		samples, rate, err = loadMp3(path)
	case ".flac":
		samples, rate, err = loadFlac(path)
	default:
		samples, err = loadFFmpeg(path, FFmpegRate)
		rate = FFmpegRate
	}
	if err != nil {
		return nil, 0, err
	}
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("%w: %s has no samples", ErrFileNotLoaded, path)
	}
	return samples, rate, nil
}

// Load decodes the audio file at path to mono samples at sampleRate.
func Load(path string, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrUnsupported, sampleRate)
	}
	if isFFmpeg(path) {
		// ffmpeg resamples on its own
		samples, err := loadFFmpeg(path, sampleRate)
		if err != nil {
			return nil, err
		}
		if len(samples) == 0 {
			return nil, fmt.Errorf("%w: %s has no samples", ErrFileNotLoaded, path)
		}
		return samples, nil
	}
	samples, rate, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return Resample(samples, rate, sampleRate)
}

func isFFmpeg(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave", ".mp3", ".flac":
		return false
	}
	return true
}
