// Package fonts provides embedded fonts for raster rendering.
//
// The Go font family is compiled into the binary via golang.org/x/image, so
// PNG output does not depend on fonts installed on the host.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family used in SVG output.
const FontFamily = "Helvetica"

// FallbackFontFamily lists fallbacks for systems without Helvetica.
const FallbackFontFamily = `Helvetica, Arial, 'Liberation Sans', sans-serif`

// Parsed fonts (computed once on first access).
var (
	regular, bold *truetype.Font
	parseErr      error
	parseOnce     sync.Once
)

func parse() error {
	parseOnce.Do(func() {
		if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
			parseErr = fmt.Errorf("parse regular font: %w", parseErr)
			return
		}
		if bold, parseErr = truetype.Parse(gobold.TTF); parseErr != nil {
			parseErr = fmt.Errorf("parse bold font: %w", parseErr)
		}
	})
	return parseErr
}

// Face returns a font face of the given size in points at 72 DPI.
func Face(isBold bool, size float64) (font.Face, error) {
	if err := parse(); err != nil {
		return nil, err
	}
	f := regular
	if isBold {
		f = bold
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}
