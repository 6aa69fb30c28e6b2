package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/Emma-Ok/time-report/internal/entry"
)

// ParseWarning describes a corrupted or malformed record that was
// skipped during a read. One bad record never aborts the read.
type ParseWarning struct {
	Path    string // File the record came from
	Line    int    // 1-indexed line (JSONL) or row (CSV) number
	Content string // Raw content of the skipped record
	Err     string // Description of the parsing error
}

// ReadResult holds the entries recovered from one file plus warnings
// about anything that had to be skipped.
type ReadResult struct {
	Entries  []entry.Entry
	Warnings []ParseWarning
}

// AppendJSONL appends a single entry to the JSON Lines log. Each call
// opens, writes and closes the file so a crash loses at most the
// in-flight record.
func AppendJSONL(path string, e entry.Entry) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	if _, err := file.Write(append(line, '\n')); err != nil {
		return err
	}
	return file.Sync()
}

// ReadJSONL reads all entries from a JSON Lines log. A missing file is
// "no entries", not an error. Malformed lines are collected as warnings
// and skipped so partial corruption never loses the rest of the day.
func ReadJSONL(path string) (ReadResult, error) {
	result := ReadResult{}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		content := strings.TrimSpace(scanner.Text())
		if content == "" {
			continue
		}

		var e entry.Entry
		err := json.Unmarshal([]byte(content), &e)
		if err == nil {
			err = validate(e)
		}
		if err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				Path:    path,
				Line:    line,
				Content: content,
				Err:     err.Error(),
			})
			continue
		}
		result.Entries = append(result.Entries, e)
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// validate rejects records that decoded but are structurally unusable.
// An incomplete trailing line written by a live scheduler often decodes
// to an empty object; it must not surface as a zero-valued entry.
func validate(e entry.Entry) error {
	if e.Date == "" || e.Start == "" || e.End == "" {
		return errMissingFields
	}
	if e.Minutes < 1 {
		return errBadMinutes
	}
	return nil
}

var (
	errMissingFields = errors.New("missing date, start or end field")
	errBadMinutes    = errors.New("minutes must be at least 1")
)
