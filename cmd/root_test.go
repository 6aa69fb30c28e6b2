package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Emma-Ok/time-report/internal/cli"
	"github.com/Emma-Ok/time-report/internal/config"
	"github.com/Emma-Ok/time-report/internal/entry"
	"github.com/Emma-Ok/time-report/internal/storage"
)

// testDeps installs test dependencies with captured output.
func testDeps(t *testing.T, fc config.FileConfig) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cli.SetDeps(&cli.Deps{
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  strings.NewReader(""),
		Exit:   func(code int) {},
		File:   fc,
	})
	t.Cleanup(cli.ResetDeps)
	return stdout, stderr
}

func TestGatherRunOptionsLayering(t *testing.T) {
	fc := config.DefaultFileConfig()
	fc.IntervalMinutes = 45
	fc.DefaultTags = "oficina"

	opts := gatherRunOptions(runCmd, fc)
	if opts.Minutes != 45 {
		t.Errorf("file default not honored: Minutes = %d, want 45", opts.Minutes)
	}
	if opts.Tags != "oficina" {
		t.Errorf("file default not honored: Tags = %q, want oficina", opts.Tags)
	}
	if !opts.BreakEnabled {
		t.Errorf("break should default to enabled")
	}

	if err := runCmd.Flags().Set("minutes", "30"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := runCmd.Flags().Set("no-break", "true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	opts = gatherRunOptions(runCmd, fc)
	if opts.Minutes != 30 {
		t.Errorf("flag must win over file: Minutes = %d, want 30", opts.Minutes)
	}
	if opts.Tags != "oficina" {
		t.Errorf("unset flag must keep file value: Tags = %q", opts.Tags)
	}
	if opts.BreakEnabled {
		t.Errorf("--no-break must disable the break window")
	}
}

func TestSummaryCommandGeneratesReport(t *testing.T) {
	baseDir := t.TempDir()

	// One entry on Monday of 2026-W06.
	start := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	paths, err := storage.PathsForDay(baseDir, "2026-02-02")
	if err != nil {
		t.Fatalf("PathsForDay: %v", err)
	}
	e := entry.New(start, start.Add(time.Hour), "planning", "gestion")
	if err := storage.AppendJSONL(paths.JSONL, e); err != nil {
		t.Fatalf("AppendJSONL: %v", err)
	}

	stdout, stderr := testDeps(t, config.DefaultFileConfig())

	rootCmd.SetArgs([]string{"summary", "--base-dir", baseDir, "--week", "2026-W06"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if stderr.Len() != 0 {
		t.Errorf("unexpected stderr: %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "Resumen semanal") {
		t.Errorf("missing confirmation line in %q", stdout.String())
	}

	report := filepath.Join(baseDir, "worklog_md", "weekly", "2026-W06_summary.md")
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "# Weekly Worklog 2026-W06") {
		t.Errorf("report missing header:\n%s", data)
	}
	if !strings.Contains(string(data), "gestion") {
		t.Errorf("report missing tag total:\n%s", data)
	}
}

func TestSummaryCommandFailsOnBrokenConfigFile(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := -1
	cli.SetDeps(&cli.Deps{
		Stdout:  stdout,
		Stderr:  stderr,
		Stdin:   strings.NewReader(""),
		Exit:    func(code int) { exitCode = code },
		File:    config.DefaultFileConfig(),
		FileErr: errors.New("reading config config.toml: toml: incomplete number"),
	})
	t.Cleanup(cli.ResetDeps)

	rootCmd.SetArgs([]string{"summary", "--base-dir", t.TempDir()})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
	if !strings.Contains(stderr.String(), "config.toml") {
		t.Errorf("stderr must name the broken file, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("no report must be generated, got %q", stdout.String())
	}
}

func TestSummaryCommandRejectsBadWeek(t *testing.T) {
	_, stderr := testDeps(t, config.DefaultFileConfig())

	rootCmd.SetArgs([]string{"summary", "--base-dir", t.TempDir(), "--week", "not-a-week"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(stderr.String(), "Error") {
		t.Errorf("expected an error message, got %q", stderr.String())
	}
}

func TestVersionTemplate(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-08-29")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"--version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := out.String()
	for _, want := range []string{"1.2.3", "abc123", "2026-08-29"} {
		if !strings.Contains(got, want) {
			t.Errorf("version output missing %q:\n%s", want, got)
		}
	}
}
