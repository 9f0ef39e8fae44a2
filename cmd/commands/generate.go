package commands

// Shared runner for the chart commands
// Loads configuration and builds the renderer; Telegram connects only for a valid live source
// Runs one pipeline per source; only a failed file write is an error

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"activity-charts/internal/activity"
	"activity-charts/internal/config"
	"activity-charts/internal/features/charts"
	"activity-charts/internal/features/pipeline"
	"activity-charts/internal/infra/log"
	"activity-charts/internal/notify/telegram"
	"activity-charts/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// chartJob - how one source is configured and built
type chartJob struct {
	name     string
	validate func(*config.Config) error
	settings func(*config.Config) config.SourceConfig
	source   func(*config.Config) activity.Source
}

func runCharts(cmd *cobra.Command, jobs ...chartJob) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		log.LogError("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := log.Init(log.Options{Dir: cfg.App.LogDir, Debug: cfg.App.Debug}); err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.App.TestMode {
		log.LogWarn("Running in test mode with sample data")
	}

	renderer := charts.NewRenderer(charts.Options{
		Width:       cfg.App.Width,
		Height:      cfg.App.Height,
		PNGScale:    cfg.App.PNGScale,
		LabelOffset: cfg.App.LabelOffset,
	})

	var opts []pipeline.Option
	if cfg.App.Summary {
		opts = append(opts, pipeline.WithSummary(report.Writer(cmd.OutOrStdout())))
	}
	publisher := newLazyPublisher(cfg)

	for _, job := range jobs {
		if err := job.validate(cfg); err != nil {
			var cfgErr *activity.ConfigError
			if errors.As(err, &cfgErr) {
				log.LogError("Configuration incomplete, skipping "+job.name,
					zap.String("source", job.name),
					zap.Strings("missing", cfgErr.Missing))
				continue
			}
			return err
		}

		jobOpts := append([]pipeline.Option(nil), opts...)
		if pub := publisher(); pub != nil {
			jobOpts = append(jobOpts, pipeline.WithPublisher(pub))
		}

		set := job.settings(cfg)
		outputs := pipeline.Outputs(cfg.App.OutputDir, set.OutputName,
			charts.Light.WithPalette(set.LightPalette),
			charts.Dark.WithPalette(set.DarkPalette),
			cfg.App.PNG)

		p := pipeline.New(job.source(cfg), renderer, pipeline.RenderConfig{
			MinSeconds:    set.MinSeconds,
			MaxRecords:    set.MaxRecords,
			Title:         set.Title,
			FallbackTitle: set.FallbackTitle,
			Palette:       set.Palette,
		}, outputs, jobOpts...)

		res, err := p.Run(ctx)
		if err != nil {
			log.LogError("Chart generation failed", zap.String("source", job.name), zap.Error(err))
			return err
		}
		if res.Skipped {
			continue
		}
		log.LogSuccess(fmt.Sprintf("%s charts generated", job.name),
			zap.String("title", res.Title),
			zap.Bool("fallback", res.Fallback),
			zap.Strings("files", res.Files))
	}
	return nil
}

// newLazyPublisher connects to Telegram on first use, at most once.
// Test mode never connects.
func newLazyPublisher(cfg *config.Config) func() pipeline.Publisher {
	var (
		done      bool
		publisher pipeline.Publisher
	)
	return func() pipeline.Publisher {
		if done {
			return publisher
		}
		done = true
		if !cfg.Telegram.Enabled() {
			return nil
		}
		if cfg.App.TestMode {
			log.LogWarn("Telegram delivery skipped in test mode")
			return nil
		}
		p, err := telegram.NewPublisher(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.LogWarn("Telegram delivery disabled", zap.Error(err))
			return nil
		}
		publisher = p
		return publisher
	}
}
