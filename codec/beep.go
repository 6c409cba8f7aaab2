package codec

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
)

const resampleQuality = 4

func loadMp3(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	stream, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrFileNotLoaded, path, err)
	}
	defer stream.Close()

	samples, err := drain(stream)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return samples, int(format.SampleRate), nil
}

// Resample converts mono samples from one rate to another.
func Resample(samples []float64, from, to int) ([]float64, error) {
	if from <= 0 || to <= 0 {
		return nil, fmt.Errorf("%w: resample %d Hz to %d Hz", ErrUnsupported, from, to)
	}
	if from == to {
		return append([]float64(nil), samples...), nil
	}
	r := beep.Resample(resampleQuality, beep.SampleRate(from), beep.SampleRate(to), &monoStreamer{samples: samples})
	return drain(r)
}

// drain reads s to the end and averages both channels.
func drain(s beep.Streamer) ([]float64, error) {
	var out []float64
	buf := make([][2]float64, 4096)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = append(out, (frame[0]+frame[1])/2)
		}
		if !ok {
			break
		}
	}
	return out, s.Err()
}

// monoStreamer plays a sample slice on both channels.
type monoStreamer struct {
	samples []float64
	pos     int
}

func (m *monoStreamer) Stream(buf [][2]float64) (int, bool) {
	if m.pos >= len(m.samples) {
		return 0, false
	}
	n := copy2(buf, m.samples[m.pos:])
	m.pos += n
	return n, true
}

func (m *monoStreamer) Err() error {
	return nil
}

func copy2(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = [2]float64{src[i], src[i]}
	}
	return n
}
