package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Ink is the intensity of glyph pixels, the background is 0.
const Ink = 255

// InkColor is the color glyphs are drawn with.
var InkColor = color.Gray{Y: Ink}

// Rasterizer represents the configuration for rendering text to a grid.
type Rasterizer struct {
	Width    int
	Height   int
	FontSize float64

	// Flip mirrors the grid vertically so that row 0 holds the bottom of the
	// text. Mapped onto a spectrogram whose row 0 is the lowest frequency,
	// this makes the text read upright with frequency increasing upward.
	Flip bool

	Typeface *Typeface
}

// NewRasterizer creates a new Rasterizer instance with default values.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		Height:   256,
		FontSize: 80,
		Flip:     true,
		Typeface: Embedded(),
	}
}

// Rasterize renders text centered on a Width x Height grid. Text wider than
// the grid is shrunk once by the ratio of the widths.
func (r *Rasterizer) Rasterize(text string) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, max(r.Width, 0), max(r.Height, 0)))
	text = norm.NFC.String(text)
	if text == "" || r.Width <= 0 || r.Height <= 0 {
		return img
	}

	size := r.FontSize
	face := openFace(r.Typeface, size)
	defer func() {
		face.Close()
	}()
	bounds := measure(face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil()

	if w > r.Width && r.Typeface.Scalable() {
		size = math.Floor(size * float64(r.Width) / (float64(w) + 1e-9))
		if size < 1 {
			size = 1
		}
		face.Close()
		face = openFace(r.Typeface, size)
		bounds = measure(face, text)
		w = (bounds.Max.X - bounds.Min.X).Ceil()
	}
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(InkColor),
		Face: face,
	}
	x := (r.Width-w)/2 - bounds.Min.X.Floor()
	y := (r.Height-h)/2 - bounds.Min.Y.Floor()
	d.Dot = fixed.P(x, y)
	d.DrawString(text)

	if r.Flip {
		FlipVertical(img)
	}
	return img
}

var openFace = (*Typeface).Face

func measure(face font.Face, text string) fixed.Rectangle26_6 {
	bounds, _ := font.BoundString(face, text)
	return bounds
}

// FlipVertical mirrors img top to bottom in place.
func FlipVertical(img *image.Gray) {
	b := img.Bounds()
	w := b.Dx()
	tmp := make([]uint8, w)
	for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		rowT := img.Pix[top*img.Stride : top*img.Stride+w]
		rowB := img.Pix[bottom*img.Stride : bottom*img.Stride+w]
		copy(tmp, rowT)
		copy(rowT, rowB)
		copy(rowB, tmp)
	}
}
