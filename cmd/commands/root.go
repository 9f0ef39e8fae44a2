package commands

// Root command for Cobra CLI
// Defines the flags shared by every chart command
// Registers the chart subcommands (steam, wakatime, all)

import (
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "activity-charts",
		Short: "Activity Charts - horizontal bar charts of Steam playtime and WakaTime coding stats",
		Long: `Activity Charts fetches recent gaming (Steam) and coding (WakaTime) activity, 
keeps the top entries and writes light and dark themed SVG charts for a profile README.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.Bool("test", false, "Use built-in sample data instead of the live APIs")
	flags.Bool("png", false, "Also write PNG versions of every chart")
	flags.String("output-dir", ".", "Directory for generated charts (env: OUTPUT_DIR)")
	flags.Float64("label-offset", -0.5, "Duration label position as a fraction of the longest bar (-0.5 or -0.3)")
	flags.Bool("summary", false, "Print a table of the charted records")
	flags.String("config", "", "Config file (default ./config.yaml)")
	flags.String("log-dir", "", "Write a detailed log to DIR/app.log (env: LOG_DIR)")
	flags.Bool("debug", false, "Show debug output on the console")

	root.AddCommand(newSteamCmd())
	root.AddCommand(newWakaTimeCmd())
	root.AddCommand(newAllCmd())
	return root
}

func Execute() error {
	return rootCmd.Execute()
}
