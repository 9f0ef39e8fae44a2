package pipeline

// Package pipeline runs fetch -> select -> render for one stats source.
// Fetch failures and empty data degrade to "no chart"; only render failures
// reach the caller.

import (
	"context"
	"errors"
	"path/filepath"

	"activity-charts/internal/activity"
	"activity-charts/internal/features/charts"
	"activity-charts/internal/infra/log"

	"go.uber.org/zap"
)

// RenderConfig - per-source selection and titles
type RenderConfig struct {
	MinSeconds    int64
	MaxRecords    int
	Title         string
	FallbackTitle string   // used when the recent window is empty
	Palette       []string // overrides every output theme palette when set
}

// Output - one file to write
type Output struct {
	Theme charts.Theme
	Path  string
}

// Outputs returns light and dark outputs for base under dir:
// base.svg, base_dark.svg and, with withPNG, the .png siblings.
func Outputs(dir, base string, light, dark charts.Theme, withPNG bool) []Output {
	exts := []string{".svg"}
	if withPNG {
		exts = append(exts, ".png")
	}
	var out []Output
	for _, ext := range exts {
		out = append(out,
			Output{Theme: light, Path: filepath.Join(dir, base+ext)},
			Output{Theme: dark, Path: filepath.Join(dir, base+"_dark"+ext)},
		)
	}
	return out
}

// ChartRenderer writes one chart file.
type ChartRenderer interface {
	Render(records []activity.Record, theme charts.Theme, title, outputPath string) error
}

// Chart - a written chart handed to a Publisher
type Chart struct {
	Source  string
	Title   string
	Theme   string
	Path    string
	Records []activity.Record
}

// Publisher delivers written charts somewhere else.
type Publisher interface {
	Publish(ctx context.Context, chart Chart) error
}

// SummaryFunc receives the selected records before rendering.
type SummaryFunc func(source, title string, records []activity.Record)

type Option func(*Pipeline)

func WithPublisher(p Publisher) Option {
	return func(pl *Pipeline) { pl.publisher = p }
}

func WithSummary(fn SummaryFunc) Option {
	return func(pl *Pipeline) { pl.summary = fn }
}

// Pipeline - one source, many outputs
type Pipeline struct {
	source    activity.Source
	renderer  ChartRenderer
	cfg       RenderConfig
	outputs   []Output
	publisher Publisher
	summary   SummaryFunc
}

// Result of one Run.
type Result struct {
	Source   string
	Title    string
	Records  []activity.Record
	Files    []string
	Fallback bool // lifetime data was used
	Skipped  bool // nothing to draw, no file written
}

func New(source activity.Source, renderer ChartRenderer, cfg RenderConfig, outputs []Output, opts ...Option) *Pipeline {
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = activity.DefaultMaxRecords
	}
	p := &Pipeline{
		source:   source,
		renderer: renderer,
		cfg:      cfg,
		outputs:  outputs,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run fetches once, falls back to lifetime data when the recent window is
// empty and renders every output. The returned error is always an
// *activity.RenderError.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	name := p.source.Name()
	res := &Result{Source: name, Title: p.cfg.Title}

	records := p.fetch(ctx, activity.Recent)
	if len(records) == 0 {
		log.LogWarn("No recent activity, showing lifetime totals", zap.String("source", name))
		records = p.fetch(ctx, activity.Lifetime)
		res.Title = p.cfg.FallbackTitle
		res.Fallback = true
	}

	selected := activity.Select(records, p.cfg.MinSeconds, p.cfg.MaxRecords)
	if len(selected) == 0 {
		empty := &activity.EmptyDataError{Source: name}
		log.LogWarn("Chart generation skipped", zap.String("source", name), zap.Error(empty))
		res.Skipped = true
		return res, nil
	}
	res.Records = selected

	log.LogInfo("Records selected",
		zap.String("source", name),
		zap.String("title", res.Title),
		zap.Int("fetched", len(records)),
		zap.Int("selected", len(selected)))

	if p.summary != nil {
		p.summary(name, res.Title, selected)
	}

	for _, out := range p.outputs {
		theme := out.Theme.WithPalette(p.cfg.Palette)
		if err := p.renderer.Render(selected, theme, res.Title, out.Path); err != nil {
			var re *activity.RenderError
			if !errors.As(err, &re) {
				err = &activity.RenderError{Path: out.Path, Err: err}
			}
			return res, err
		}
		res.Files = append(res.Files, out.Path)

		if p.publisher != nil {
			chart := Chart{Source: name, Title: res.Title, Theme: theme.Name, Path: out.Path, Records: selected}
			if err := p.publisher.Publish(ctx, chart); err != nil {
				log.LogWarn("Failed to publish chart", zap.String("path", out.Path), zap.Error(err))
			}
		}
	}
	return res, nil
}

// fetch turns fetch failures into an empty result.
func (p *Pipeline) fetch(ctx context.Context, mode activity.Mode) []activity.Record {
	records, err := p.source.Fetch(ctx, mode)
	if err != nil {
		log.LogError("Failed to fetch activity",
			zap.String("source", p.source.Name()),
			zap.String("mode", mode.String()),
			zap.Error(err))
		return nil
	}
	return records
}
