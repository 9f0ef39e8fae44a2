package commands

// Command to generate WakaTime coding charts
// Languages of the last 7 days, all-time languages when the week is empty

import (
	"activity-charts/internal/activity"
	"activity-charts/internal/clients_api/wakatime"
	"activity-charts/internal/config"

	"github.com/spf13/cobra"
)

var wakaTimeJob = chartJob{
	name:     "wakatime",
	validate: (*config.Config).ValidateWakaTime,
	settings: func(cfg *config.Config) config.SourceConfig { return cfg.WakaTime.SourceConfig },
	source: func(cfg *config.Config) activity.Source {
		if cfg.App.TestMode {
			return activity.WakaTimeFixture()
		}
		return wakatime.NewClient(wakatime.Config{
			APIKey:      cfg.WakaTime.APIKey,
			BaseURL:     cfg.WakaTime.BaseURL,
			Timeout:     cfg.App.Timeout(),
			RecentRange: cfg.WakaTime.Range,
		})
	},
}

func newWakaTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wakatime",
		Short: "Generate WakaTime coding activity charts",
		Long:  `Fetch language stats from the WakaTime API and write wakatime_stats.svg and wakatime_stats_dark.svg.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharts(cmd, wakaTimeJob)
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Generate Steam and WakaTime charts",
		Long:  `Run the steam and wakatime commands in sequence. A source with missing credentials is skipped.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharts(cmd, steamJob, wakaTimeJob)
		},
	}
}
