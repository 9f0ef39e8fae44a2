package charts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// Both backends draw with the embedded Go Bold face, so output does not
// depend on fonts installed on the machine.
var (
	fontOnce  sync.Once
	chartFont *truetype.Font
	fontErr   error
)

func boldFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		chartFont, fontErr = truetype.Parse(gobold.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("failed to parse chart font: %w", fontErr)
		}
	})
	return chartFont, fontErr
}

// textWidth in pixels at size px (72 dpi, 1pt = 1px).
func textWidth(f *truetype.Font, s string, size float64) float64 {
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	defer face.Close()
	return float64(font.MeasureString(face, s).Ceil())
}

// fitText shortens s with a trailing ellipsis until it fits in maxWidth.
func fitText(f *truetype.Font, s string, size, maxWidth float64) string {
	if maxWidth <= 0 || textWidth(f, s, size) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "…"
		if textWidth(f, candidate, size) <= maxWidth {
			return candidate
		}
	}
	return "…"
}
