// Package config loads the optional TOML configuration file and builds
// the validated run/summary configurations the commands consume.
// Precedence is flag over file over built-in default; the file only
// supplies defaults for flags the operator did not set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Emma-Ok/time-report/internal/clock"
	"github.com/Emma-Ok/time-report/internal/osutil"
)

const (
	// AppName is the application name used for the config directory.
	AppName = "time-report"
	// ConfigFile is the name of the TOML configuration file.
	ConfigFile = "config.toml"
)

// FileConfig mirrors the TOML file. Every field has a flag counterpart.
type FileConfig struct {
	IntervalMinutes int    `toml:"interval_minutes"`
	BaseDir         string `toml:"base_dir"`
	WorkStart       string `toml:"work_start"`
	WorkEnd         string `toml:"work_end"`
	DefaultTags     string `toml:"default_tags"`
	Notify          bool   `toml:"notify"`
	Timezone        string `toml:"timezone"`
	BreakStart      string `toml:"break_start"`
	BreakEnd        string `toml:"break_end"`
	BreakEnabled    bool   `toml:"break_enabled"`
	InputTimeoutSec int    `toml:"input_timeout_sec"`
}

// DefaultFileConfig returns the built-in defaults used when the config
// file is absent or silent on a key.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		IntervalMinutes: 60,
		BaseDir:         "logs",
		WorkStart:       "07:00",
		WorkEnd:         "17:00",
		DefaultTags:     "",
		Notify:          true,
		Timezone:        "America/Bogota",
		BreakStart:      "13:00",
		BreakEnd:        "14:00",
		BreakEnabled:    true,
		InputTimeoutSec: 120,
	}
}

// GetConfigPath returns the path to the config file under the user
// config directory, creating the application directory as needed.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads a config file, layering it over the defaults. Unknown keys
// are ignored; a file that does not parse is an error (fail fast, never
// silently defaulted).
func Load(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads the config file if it exists, otherwise returns
// the defaults. A missing file is the common case, not an error.
func LoadOrDefault(path string) (FileConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultFileConfig(), nil
	}
	return Load(path)
}

// RunConfig is the validated configuration of the scheduler daemon.
type RunConfig struct {
	Interval     time.Duration
	BaseDir      string
	Window       clock.WorkWindow
	DefaultTags  string
	Notify       bool
	Immediate    bool
	Location     *time.Location
	TimezoneName string
	Break        clock.BreakWindow
	BreakEnabled bool
	InputTimeout time.Duration // zero disables the prompt deadline
}

// RunOptions are the raw, unvalidated values gathered from flags and
// the config file.
type RunOptions struct {
	Minutes         int
	BaseDir         string
	Start           string
	End             string
	Tags            string
	Notify          bool
	Immediate       bool
	Timezone        string
	BreakStart      string
	BreakEnd        string
	BreakEnabled    bool
	InputTimeoutSec int
}

// BuildRunConfig validates raw options into a RunConfig. Time strings
// must parse; the interval clamps to at least one minute and the input
// timeout to at least zero.
func BuildRunConfig(opts RunOptions) (RunConfig, error) {
	window, err := clock.ParseWorkWindow(opts.Start, opts.End)
	if err != nil {
		return RunConfig{}, fmt.Errorf("work window: %w", err)
	}

	var brk clock.BreakWindow
	if opts.BreakEnabled {
		brk, err = clock.ParseBreakWindow(opts.BreakStart, opts.BreakEnd)
		if err != nil {
			return RunConfig{}, fmt.Errorf("break window: %w", err)
		}
	}

	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return RunConfig{}, fmt.Errorf("timezone %q: %w", opts.Timezone, err)
	}

	minutes := opts.Minutes
	if minutes < 1 {
		minutes = 1
	}
	timeoutSec := opts.InputTimeoutSec
	if timeoutSec < 0 {
		timeoutSec = 0
	}

	return RunConfig{
		Interval:     time.Duration(minutes) * time.Minute,
		BaseDir:      opts.BaseDir,
		Window:       window,
		DefaultTags:  opts.Tags,
		Notify:       opts.Notify,
		Immediate:    opts.Immediate,
		Location:     loc,
		TimezoneName: opts.Timezone,
		Break:        brk,
		BreakEnabled: opts.BreakEnabled,
		InputTimeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}

// SummaryConfig is the validated configuration of the weekly aggregator.
type SummaryConfig struct {
	BaseDir        string
	Location       *time.Location
	Week           string // "current" or "YYYY-Www"
	IncludeDetails bool
}

// BuildSummaryConfig validates the summary options. The week label
// itself is validated later when it is resolved against the calendar.
func BuildSummaryConfig(baseDir, timezone, week string, details bool) (SummaryConfig, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return SummaryConfig{}, fmt.Errorf("timezone %q: %w", timezone, err)
	}
	return SummaryConfig{
		BaseDir:        baseDir,
		Location:       loc,
		Week:           week,
		IncludeDetails: details,
	}, nil
}
