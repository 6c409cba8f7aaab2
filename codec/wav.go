package codec

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func loadWav(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: invalid WAV file: %s", ErrFileNotLoaded, path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	scale := math.Ldexp(1, int(d.BitDepth)-1)
	offset := 0.0
	if d.BitDepth == 8 {
		// 8-bit WAV is unsigned
		offset = scale
	}

	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c]) - offset
		}
		out[i] = sum / float64(channels) / scale
	}
	return out, buf.Format.SampleRate, nil
}

// Save writes mono samples as a PCM WAV file of bitDepth 16 or 24 bits.
// Samples outside [-1, 1] are clipped.
func Save(path string, samples []float64, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: bit depth %d", ErrUnsupported, bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupported, sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	peak := math.Ldexp(1, bitDepth-1) - 1
	data := make([]int, len(samples))
	for i, v := range samples {
		s := math.Round(v * peak)
		data[i] = int(math.Max(-peak-1, math.Min(peak, s)))
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return f.Close()
}
