package charts

// Package charts renders activity records as horizontal bar charts.
// SVG goes through the go-chart vector renderer, PNG through gg; the output
// format is picked per call from the file extension.

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"activity-charts/internal/activity"
	"activity-charts/internal/infra/fs"
	"activity-charts/internal/infra/log"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Format - output encoding
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// FormatForPath maps a file extension to a Format.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q", filepath.Ext(path))
	}
}

// Options - renderer settings shared by every chart
type Options struct {
	Width       int
	Height      int
	PNGScale    float64 // raster pixel multiplier
	LabelOffset float64 // duration column, fraction of the longest bar; 0 means DefaultLabelOffset
}

// DefaultOptions is a 7.62x2.56in figure at 100 dpi.
func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		PNGScale:    2,
		LabelOffset: DefaultLabelOffset,
	}
}

// Renderer writes chart files.
type Renderer struct {
	opts Options
}

// NewRenderer fills zero options from DefaultOptions.
func NewRenderer(opts Options) *Renderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.PNGScale <= 0 {
		opts.PNGScale = def.PNGScale
	}
	if opts.LabelOffset == 0 {
		opts.LabelOffset = def.LabelOffset
	}
	return &Renderer{opts: opts}
}

// Options returns the effective settings.
func (r *Renderer) Options() Options { return r.opts }

// Render draws records (largest first) with theme and writes outputPath.
// Every failure is an *activity.RenderError.
func (r *Renderer) Render(records []activity.Record, theme Theme, title, outputPath string) error {
	startTime := time.Now()

	if len(records) == 0 {
		return &activity.RenderError{Path: outputPath, Err: errNoRecords}
	}
	format, err := FormatForPath(outputPath)
	if err != nil {
		return &activity.RenderError{Path: outputPath, Err: err}
	}

	geometry := Geometry{
		Width:       r.opts.Width,
		Height:      r.opts.Height,
		Scale:       1,
		LabelOffset: r.opts.LabelOffset,
	}
	paint := paintSVG
	if format == FormatPNG {
		geometry.Scale = r.opts.PNGScale
		paint = paintPNG
	}

	layout, err := BuildLayout(records, theme, title, geometry)
	if err != nil {
		return &activity.RenderError{Path: outputPath, Err: err}
	}

	size, err := fs.WriteFileAtomic(outputPath, func(w io.Writer) error {
		return paint(layout, w)
	})
	if err != nil {
		return &activity.RenderError{Path: outputPath, Err: err}
	}

	log.LogSuccess(fmt.Sprintf("Chart saved as %s (%s)", outputPath, humanize.Bytes(uint64(size))),
		zap.String("theme", theme.Name),
		zap.String("format", string(format)),
		zap.Int("bars", len(layout.Bars)),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return nil
}
