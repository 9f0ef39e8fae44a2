package charts

import (
	"errors"

	"activity-charts/internal/activity"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	// Logical canvas: a 7.62 x 2.56 in figure at 100 dpi.
	DefaultWidth  = 762
	DefaultHeight = 256

	// DefaultLabelOffset - duration text x as a fraction of the longest bar
	DefaultLabelOffset = -0.5
	// AlternateLabelOffset - tighter duration column
	AlternateLabelOffset = -0.3

	labelX         = -0.95 // record label x, fraction of the longest bar
	extentRight    = 1.1   // right edge, 10% past the longest bar
	barHeightRatio = 0.6   // bar thickness vs row pitch

	titleFontSize = 22.0
	textFontSize  = 14.0
	titleBand     = 48.0 // title row above the plot
	marginX       = 12.0
	marginBottom  = 12.0
	labelGap      = 8.0 // min space between a label and the duration column
)

var errNoRecords = errors.New("no records to render")

// Geometry - canvas size and label placement
type Geometry struct {
	Width       int
	Height      int
	Scale       float64 // pixel multiplier for raster output
	LabelOffset float64 // 0 means DefaultLabelOffset
}

// Rect in pixels, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

// Bar - one filled row
type Bar struct {
	Rect
	Color  drawing.Color
	Record activity.Record
}

// Text is anchored at (X, Y): Y is the vertical center, AnchorX is 0 for
// left-aligned and 0.5 for centered text.
type Text struct {
	Body    string
	X, Y    float64
	Size    float64
	Color   drawing.Color
	AnchorX float64
}

// Layout - everything a backend needs to paint one chart
type Layout struct {
	Width      int
	Height     int
	Background drawing.Color
	Title      Text
	Bars       []Bar  // draw order: bottom row first
	Labels     []Text // same order as Bars
	Durations  []Text // same order as Bars
	MaxHour    float64
}

// BuildLayout places records (largest first) as horizontal bars, largest on
// top. The left part of the x extent [-maxHour, 1.1*maxHour] holds labels.
func BuildLayout(records []activity.Record, theme Theme, title string, g Geometry) (*Layout, error) {
	if len(records) == 0 {
		return nil, errNoRecords
	}
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	f, err := boldFont()
	if err != nil {
		return nil, err
	}

	if g.Width <= 0 {
		g.Width = DefaultWidth
	}
	if g.Height <= 0 {
		g.Height = DefaultHeight
	}
	if g.Scale <= 0 {
		g.Scale = 1
	}
	if g.LabelOffset == 0 {
		g.LabelOffset = DefaultLabelOffset
	}
	s := g.Scale

	// reverse: the primitive stacks rows bottom-up by index
	rows := make([]activity.Record, len(records))
	for i, r := range records {
		rows[len(records)-1-i] = r
	}

	maxHour := 0.0
	for _, r := range rows {
		if h := r.Hours(); h > maxHour {
			maxHour = h
		}
	}
	if maxHour == 0 {
		maxHour = 1
	}

	width := float64(g.Width) * s
	height := float64(g.Height) * s
	left, right := marginX*s, width-marginX*s
	top, bottom := titleBand*s, height-marginBottom*s

	xMin, xMax := -maxHour, extentRight*maxHour
	toPX := func(x float64) float64 {
		return left + (x-xMin)/(xMax-xMin)*(right-left)
	}

	pitch := (bottom - top) / float64(len(rows))
	barH := pitch * barHeightRatio
	size := textFontSize * s

	labelPX := toPX(labelX * maxHour)
	durationPX := toPX(g.LabelOffset * maxHour)
	labelRoom := durationPX - labelPX - labelGap*s

	foreground := mustColor(theme.Foreground)
	secondary := mustColor(theme.Secondary)

	l := &Layout{
		Width:      int(width),
		Height:     int(height),
		Background: mustColor(theme.Background),
		Title: Text{
			Body:    title,
			X:       width / 2,
			Y:       titleBand * s / 2,
			Size:    titleFontSize * s,
			Color:   foreground,
			AnchorX: 0.5,
		},
		MaxHour: maxHour,
	}

	for i, r := range rows {
		cy := bottom - (float64(i)+0.5)*pitch
		x0 := toPX(0)
		l.Bars = append(l.Bars, Bar{
			Rect:   Rect{X: x0, Y: cy - barH/2, W: toPX(r.Hours()) - x0, H: barH},
			Color:  mustColor(theme.Palette[i%len(theme.Palette)]),
			Record: r,
		})
		l.Labels = append(l.Labels, Text{
			Body:  fitText(f, r.Label, size, labelRoom),
			X:     labelPX,
			Y:     cy,
			Size:  size,
			Color: foreground,
		})
		l.Durations = append(l.Durations, Text{
			Body:  activity.FormatDuration(r.Seconds),
			X:     durationPX,
			Y:     cy,
			Size:  size,
			Color: secondary,
		})
	}
	return l, nil
}

// texts returns the title followed by every row label, in paint order.
func (l *Layout) texts() []Text {
	out := make([]Text, 0, 1+len(l.Labels)+len(l.Durations))
	out = append(out, l.Title)
	for i := range l.Labels {
		out = append(out, l.Labels[i], l.Durations[i])
	}
	return out
}
