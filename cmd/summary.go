package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Emma-Ok/time-report/internal/cli"
	"github.com/Emma-Ok/time-report/internal/clock"
	"github.com/Emma-Ok/time-report/internal/config"
	"github.com/Emma-Ok/time-report/internal/weekly"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate the weekly Markdown summary",
	Long: `Aggregate one ISO week of logs into a Markdown summary with totals
per day and per tag.

The week defaults to the current one; pass --week 2026-W06 for a
specific week. Days are read from the JSONL logs first, falling back
to CSV and to the legacy flat layout for older data.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSummary(cmd)
	},
}

func init() {
	f := summaryCmd.Flags()
	f.String("base-dir", "logs", "Directory holding the log files")
	f.String("tz", "America/Bogota", "IANA timezone used to resolve the current week")
	f.String("week", weekly.CurrentWeek, "ISO week to summarize (current or YYYY-Www)")
	f.Bool("details", false, "Include the chronological detail table")
}

func runSummary(cmd *cobra.Command) {
	deps := cli.GetDeps()
	if deps.FileErr != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", deps.FileErr)
		deps.Exit(1)
		return
	}
	f := cmd.Flags()

	baseDir := deps.File.BaseDir
	if f.Changed("base-dir") {
		baseDir, _ = f.GetString("base-dir")
	}
	timezone := deps.File.Timezone
	if f.Changed("tz") {
		timezone, _ = f.GetString("tz")
	}
	week, _ := f.GetString("week")
	details, _ := f.GetBool("details")

	cfg, err := config.BuildSummaryConfig(baseDir, timezone, week, details)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	clk := clock.SystemClock{Location: cfg.Location}
	path, warnings, err := weekly.Generate(cfg.BaseDir, cfg.Week, clk, cfg.IncludeDetails)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(warnings) > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "⚠️ %d línea(s) ilegible(s) ignoradas:\n", len(warnings))
		for _, w := range warnings {
			_, _ = fmt.Fprintln(deps.Stderr, cli.FormatParseWarning(w))
		}
	}
	_, _ = fmt.Fprintf(deps.Stdout, "📄 Resumen semanal: %s\n", path)
}
