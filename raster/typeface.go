package raster

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
)

// Typeface is either a scalable TrueType font or, when none could be
// loaded, the fixed 7x13 bitmap face.
type Typeface struct {
	ttf  *truetype.Font
	Name string
}

// Fallback returns the fixed bitmap typeface.
func Fallback() *Typeface {
	return &Typeface{Name: "basicfont 7x13"}
}

// Embedded returns the Go Bold typeface compiled into the binary.
func Embedded() *Typeface {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return Fallback()
	}
	return &Typeface{ttf: f, Name: "Go Bold"}
}

// OpenTypeface loads a TrueType font file. An empty path selects the
// embedded font. A missing or unparsable file yields the fallback typeface.
// Other read errors are returned.
func OpenTypeface(path string) (*Typeface, error) {
	if path == "" {
		return Embedded(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Fallback(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return Fallback(), nil
	}
	return &Typeface{ttf: f, Name: path}, nil
}

// Scalable reports whether the typeface can be drawn at arbitrary sizes.
func (t *Typeface) Scalable() bool {
	return t != nil && t.ttf != nil
}

// Face returns a face at size points. The fallback face ignores size.
func (t *Typeface) Face(size float64) font.Face {
	if !t.Scalable() {
		return basicfont.Face7x13
	}
	return truetype.NewFace(t.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
