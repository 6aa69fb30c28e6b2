package storage

import (
	"path/filepath"
	"strings"
)

// ReadDayWithFallback reads one day's entries, consulting sources in
// the ResolutionOrder precedence: current-layout JSONL, current-layout
// CSV, then the legacy flat variants. The first source yielding any
// entries wins, so weekly aggregation keeps working across the storage
// layout migration. Warnings from every consulted source are returned.
func ReadDayWithFallback(baseDir, day string) (ReadResult, error) {
	var warnings []ParseWarning

	for _, path := range ResolutionOrder(baseDir, day) {
		var (
			res ReadResult
			err error
		)
		if isJSONL(path) {
			res, err = ReadJSONL(path)
		} else {
			res, err = ReadCSV(path)
		}
		if err != nil {
			return ReadResult{Warnings: warnings}, err
		}
		warnings = append(warnings, res.Warnings...)
		if len(res.Entries) > 0 {
			return ReadResult{Entries: res.Entries, Warnings: warnings}, nil
		}
	}

	return ReadResult{Warnings: warnings}, nil
}

func isJSONL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".jsonl")
}
