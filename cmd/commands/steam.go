package commands

// Command to generate Steam playtime charts
// Recent two weeks of playtime, lifetime top games when nothing was played

import (
	"activity-charts/internal/activity"
	"activity-charts/internal/clients_api/steam"
	"activity-charts/internal/config"

	"github.com/spf13/cobra"
)

var steamJob = chartJob{
	name:     "steam",
	validate: (*config.Config).ValidateSteam,
	settings: func(cfg *config.Config) config.SourceConfig { return cfg.Steam.SourceConfig },
	source: func(cfg *config.Config) activity.Source {
		if cfg.App.TestMode {
			return activity.SteamFixture()
		}
		return steam.NewClient(steam.Config{
			APIKey:  cfg.Steam.APIKey,
			SteamID: cfg.Steam.SteamID,
			BaseURL: cfg.Steam.BaseURL,
			Timeout: cfg.App.Timeout(),
		})
	},
}

func newSteamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steam",
		Short: "Generate Steam gaming activity charts",
		Long:  `Fetch recently played games from the Steam Web API and write steam_stats.svg and steam_stats_dark.svg.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharts(cmd, steamJob)
		},
	}
}
