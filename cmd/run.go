package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Emma-Ok/time-report/internal/cli"
	"github.com/Emma-Ok/time-report/internal/clock"
	"github.com/Emma-Ok/time-report/internal/config"
	"github.com/Emma-Ok/time-report/internal/notify"
	"github.com/Emma-Ok/time-report/internal/prompt"
	"github.com/Emma-Ok/time-report/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interval scheduler",
	Long: `Start the scheduler daemon. At the end of every interval during work
hours it asks what you did and appends the answer to the day's logs.

Flags override the config file, which overrides the built-in defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		runScheduler(cmd)
	},
}

func init() {
	f := runCmd.Flags()
	f.Int("minutes", 60, "Block length in minutes")
	f.String("base-dir", "logs", "Directory holding the log files")
	f.String("start", "07:00", "Work window start (HH:MM)")
	f.String("end", "17:00", "Work window end (HH:MM)")
	f.String("tags", "", "Default tags for entries recorded without tags")
	f.Bool("notify", true, "Fire a desktop notification on each tick")
	f.Bool("immediate", false, "Fire the first tick immediately instead of after one interval")
	f.String("tz", "America/Bogota", "IANA timezone of the work schedule")
	f.String("break-start", "13:00", "Break window start (HH:MM)")
	f.String("break-end", "14:00", "Break window end (HH:MM)")
	f.Bool("no-break", false, "Disable automatic break entries")
	f.Int("input-timeout", 120, "Seconds to wait for prompt input before auto-recording (0 = wait forever)")
}

// gatherRunOptions layers flag values over the config file defaults.
// Only flags the operator actually set override the file.
func gatherRunOptions(cmd *cobra.Command, fc config.FileConfig) config.RunOptions {
	opts := config.RunOptions{
		Minutes:         fc.IntervalMinutes,
		BaseDir:         fc.BaseDir,
		Start:           fc.WorkStart,
		End:             fc.WorkEnd,
		Tags:            fc.DefaultTags,
		Notify:          fc.Notify,
		Timezone:        fc.Timezone,
		BreakStart:      fc.BreakStart,
		BreakEnd:        fc.BreakEnd,
		BreakEnabled:    fc.BreakEnabled,
		InputTimeoutSec: fc.InputTimeoutSec,
	}

	f := cmd.Flags()
	if f.Changed("minutes") {
		opts.Minutes, _ = f.GetInt("minutes")
	}
	if f.Changed("base-dir") {
		opts.BaseDir, _ = f.GetString("base-dir")
	}
	if f.Changed("start") {
		opts.Start, _ = f.GetString("start")
	}
	if f.Changed("end") {
		opts.End, _ = f.GetString("end")
	}
	if f.Changed("tags") {
		opts.Tags, _ = f.GetString("tags")
	}
	if f.Changed("notify") {
		opts.Notify, _ = f.GetBool("notify")
	}
	if f.Changed("tz") {
		opts.Timezone, _ = f.GetString("tz")
	}
	if f.Changed("break-start") {
		opts.BreakStart, _ = f.GetString("break-start")
	}
	if f.Changed("break-end") {
		opts.BreakEnd, _ = f.GetString("break-end")
	}
	if f.Changed("no-break") {
		noBreak, _ := f.GetBool("no-break")
		opts.BreakEnabled = !noBreak
	}
	if f.Changed("input-timeout") {
		opts.InputTimeoutSec, _ = f.GetInt("input-timeout")
	}
	opts.Immediate, _ = f.GetBool("immediate")

	return opts
}

func runScheduler(cmd *cobra.Command) {
	deps := cli.GetDeps()
	if deps.FileErr != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", deps.FileErr)
		deps.Exit(1)
		return
	}

	opts := gatherRunOptions(cmd, deps.File)
	cfg, err := config.BuildRunConfig(opts)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	clk := clock.SystemClock{Location: cfg.Location}
	var notifier runner.Notifier
	if cfg.Notify {
		notifier = notify.New(clk.Now)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(cfg, clk, prompt.NewTerminal(), notifier, deps.Stdout, deps.Stderr)
	if err := r.Run(ctx); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
	}
}
