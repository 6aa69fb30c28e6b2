// Package storage persists the day's entries in three parallel
// artifacts: an append-only JSON Lines log, an append-only CSV log and
// a rendered markdown summary. The two logs are the source of truth;
// the markdown file is a derived view regenerated after every write.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Subdirectories of the base directory holding each format in the
// current layout. Older installations wrote everything flat into the
// base directory; see LegacyPathsForDay.
const (
	jsonlDir = "worklog_jsonl"
	csvDir   = "worklog_csv"
	mdDir    = "worklog_md"
)

// DayPaths is the artifact triple for one calendar day.
type DayPaths struct {
	JSONL    string
	CSV      string
	Markdown string
}

// PathsForDay returns the current-layout paths for day (YYYY-MM-DD),
// creating the per-format directories as needed. A directory that
// cannot be created is fatal for the caller: nothing can be persisted
// without it.
func PathsForDay(baseDir, day string) (DayPaths, error) {
	for _, dir := range []string{jsonlDir, csvDir, mdDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0755); err != nil {
			return DayPaths{}, fmt.Errorf("creating %s: %w", filepath.Join(baseDir, dir), err)
		}
	}
	return DayPaths{
		JSONL:    filepath.Join(baseDir, jsonlDir, day+"_worklog.jsonl"),
		CSV:      filepath.Join(baseDir, csvDir, day+"_worklog.csv"),
		Markdown: filepath.Join(baseDir, mdDir, day+"_worklog.md"),
	}, nil
}

// LegacyPathsForDay returns the pre-migration flat layout for day.
// Read-only compatibility: nothing is ever written here.
func LegacyPathsForDay(baseDir, day string) DayPaths {
	return DayPaths{
		JSONL:    filepath.Join(baseDir, day+"_worklog.jsonl"),
		CSV:      filepath.Join(baseDir, day+"_worklog.csv"),
		Markdown: filepath.Join(baseDir, day+"_worklog.md"),
	}
}

// ResolutionOrder is the ordered list of files consulted when reading a
// day back: current JSONL, current CSV, then the legacy flat variants.
// Pure (no directory creation) so precedence can be asserted without
// touching the filesystem.
func ResolutionOrder(baseDir, day string) []string {
	legacy := LegacyPathsForDay(baseDir, day)
	return []string{
		filepath.Join(baseDir, jsonlDir, day+"_worklog.jsonl"),
		filepath.Join(baseDir, csvDir, day+"_worklog.csv"),
		legacy.JSONL,
		legacy.CSV,
	}
}
