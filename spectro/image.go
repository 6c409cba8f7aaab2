package spectro

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"
)

// Image renders mag as a grayscale picture with the lowest frequency at the
// bottom. With logScale, magnitudes are shown in decibels clamped to the top
// 80 dB.
func Image(mag mat.Matrix, logScale bool) *image.Gray {
	bins, frames := mag.Dims()
	img := image.NewGray(image.Rect(0, 0, frames, bins))

	value := func(v float64) float64 {
		if logScale {
			return 20 * math.Log10(math.Max(v, 1e-10))
		}
		return v
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for k := 0; k < bins; k++ {
		for t := 0; t < frames; t++ {
			v := value(mag.At(k, t))
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if logScale {
		lo = math.Max(lo, hi-80)
	}
	span := hi - lo
	if span <= 0 {
		return img
	}

	for k := 0; k < bins; k++ {
		for t := 0; t < frames; t++ {
			v := (value(mag.At(k, t)) - lo) / span
			v = math.Min(math.Max(v, 0), 1)
			img.SetGray(t, bins-k-1, color.Gray{Y: uint8(math.Round(255 * v))})
		}
	}
	return img
}

// WritePNG encodes Image(mag, logScale) as PNG.
func WritePNG(w io.Writer, mag mat.Matrix, logScale bool) error {
	return png.Encode(w, Image(mag, logScale))
}

// Pack returns mag as IEEE 754 half floats, bin-major.
func Pack(mag mat.Matrix) []uint16 {
	bins, frames := mag.Dims()
	out := make([]uint16, 0, bins*frames)
	for k := 0; k < bins; k++ {
		for t := 0; t < frames; t++ {
			out = append(out, float16.Fromfloat32(float32(mag.At(k, t))).Bits())
		}
	}
	return out
}
