package charts

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
)

// paintPNG rasterizes l with gg.
func paintPNG(l *Layout, w io.Writer) error {
	f, err := boldFont()
	if err != nil {
		return err
	}

	dc := gg.NewContext(l.Width, l.Height)
	dc.SetColor(l.Background)
	dc.Clear()

	for _, b := range l.Bars {
		dc.SetColor(b.Color)
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		dc.Fill()
	}

	for _, t := range l.texts() {
		face := truetype.NewFace(f, &truetype.Options{Size: t.Size})
		dc.SetFontFace(face)
		dc.SetColor(t.Color)
		dc.DrawStringAnchored(t.Body, t.X, t.Y, t.AnchorX, 0.5)
		face.Close()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
