// Package cmd wires the cobra commands of the time-report CLI.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "time-report",
	Short: "Interval-based work logging daemon",
	Long: `time-report logs what you worked on, one block at a time.

Usage:
  time-report run                               Start the interval scheduler
  time-report run --minutes 30 --immediate     30-minute blocks, first tick now
  time-report summary                           Weekly summary for the current week
  time-report summary --week 2026-W06           Weekly summary for a given ISO week

The scheduler prompts you at the end of every block during work hours
and appends each answer to the day's JSONL and CSV logs, keeping a
rendered Markdown summary current. Outside work hours it sleeps until
the next work day. Stop it any time with Ctrl+C; the summary is
exported on the way out.`,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(summaryCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"time-report version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
