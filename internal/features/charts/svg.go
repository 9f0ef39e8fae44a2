package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// svgCSS makes every label bold in whatever font the viewer falls back to.
// The title is the first <text> element (see Layout.texts) and is centered
// by the viewer, so its position does not depend on Go Bold metrics.
const svgCSS = "text{font-weight:bold}text:first-of-type{text-anchor:middle}"

// paintSVG draws l with the go-chart vector renderer.
func paintSVG(l *Layout, w io.Writer) error {
	r, err := chart.SVGWithCSS(svgCSS, "")(l.Width, l.Height)
	if err != nil {
		return fmt.Errorf("failed to create svg renderer: %w", err)
	}
	f, err := boldFont()
	if err != nil {
		return err
	}
	r.SetFont(f)

	fillRect(r, Rect{W: float64(l.Width), H: float64(l.Height)}, l.Background)
	for _, b := range l.Bars {
		fillRect(r, b.Rect, b.Color)
	}
	for _, t := range l.texts() {
		drawSVGText(r, t)
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to encode svg: %w", err)
	}
	return nil
}

func fillRect(r chart.Renderer, rect Rect, c drawing.Color) {
	x0, y0 := iround(rect.X), iround(rect.Y)
	x1, y1 := iround(rect.X+rect.W), iround(rect.Y+rect.H)

	r.ResetStyle()
	r.SetFillColor(c)
	r.SetStrokeColor(drawing.ColorTransparent)
	r.SetStrokeWidth(0)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.LineTo(x0, y0)
	r.Close()
	r.Fill()
}

// drawSVGText converts the pixel size to points at the renderer DPI, then
// shifts the baseline so the text is centered on t.Y. x is written as is:
// left-aligned text starts there and the centered title is anchored there by svgCSS.
func drawSVGText(r chart.Renderer, t Text) {
	r.ResetStyle()
	f, _ := boldFont()
	r.SetFont(f)
	r.SetFontColor(t.Color)
	r.SetFontSize(t.Size * 72 / r.GetDPI())

	box := r.MeasureText(t.Body)
	y := t.Y + float64(box.Height())/2
	r.Text(t.Body, iround(t.X), iround(y))
}

func iround(v float64) int {
	return int(math.Round(v))
}
