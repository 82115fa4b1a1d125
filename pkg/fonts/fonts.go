// Package fonts provides the font used for raster output and for measuring
// text before a figure is sized.
//
// The Go Regular TrueType font ships with golang.org/x/image, so PNG output
// needs no system fonts.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS font-family used in SVG output.
const FontFamily = "Go, 'DejaVu Sans', Helvetica, Arial, sans-serif"

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font.
// The result is cached after the first call.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
		if regularErr != nil {
			regularErr = fmt.Errorf("parse go regular font: %w", regularErr)
		}
	})
	return regular, regularErr
}

// Measure returns the advance width of the widest of texts set in Go Regular
// at size. The width is in the unit of size, so points in give points out.
func Measure(size float64, texts ...string) (float64, error) {
	f, err := Regular()
	if err != nil {
		return 0, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	defer face.Close()

	var widest fixed.Int26_6
	for _, s := range texts {
		widest = max(widest, font.MeasureString(face, s))
	}
	return float64(widest) / 64, nil
}

// Face returns a Go Regular face of the given size in pixels.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}
