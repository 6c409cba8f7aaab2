package codec

import (
	"fmt"
	"io"
	"math"

	"github.com/mewkiz/flac"
)

func loadFlac(path string) ([]float64, int, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrFileNotLoaded, path, err)
	}
	defer stream.Close()

	scale := math.Ldexp(1, int(stream.Info.BitsPerSample)-1)
	var out []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		if len(frame.Subframes) == 0 {
			continue
		}
		channels := float64(len(frame.Subframes))
		for i := range frame.Subframes[0].Samples {
			var sum float64
			for _, sub := range frame.Subframes {
				sum += float64(sub.Samples[i])
			}
			out = append(out, sum/channels/scale)
		}
	}
	return out, int(stream.Info.SampleRate), nil
}
