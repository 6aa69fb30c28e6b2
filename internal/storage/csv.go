package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Emma-Ok/time-report/internal/entry"
)

var csvHeader = []string{"date", "start", "end", "minutes", "activity", "tags"}

// InitCSVIfNeeded writes the header row if the CSV log does not exist
// or is empty. Idempotent: an existing non-empty file is left alone, so
// repeated initialization never duplicates the header.
func InitCSVIfNeeded(path string) error {
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Sync()
}

// AppendCSV appends a single entry row to the CSV log. Opens, writes
// and closes per call, matching the JSONL append discipline.
func AppendCSV(path string, e entry.Entry) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	record := []string{e.Date, e.Start, e.End, strconv.Itoa(e.Minutes), e.Activity, e.Tags}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Sync()
}

// ReadCSV reads all entries from a CSV log. The header row is skipped;
// malformed rows become warnings, never failures. A missing file reads
// as empty.
func ReadCSV(path string) (ReadResult, error) {
	result := ReadResult{}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1 // row length validated below so short rows warn instead of abort
	row := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				Path: path,
				Line: row,
				Err:  err.Error(),
			})
			continue
		}

		if row == 1 && isHeader(record) {
			continue
		}

		e, perr := parseCSVRecord(record)
		if perr != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				Path:    path,
				Line:    row,
				Content: fmt.Sprint(record),
				Err:     perr.Error(),
			})
			continue
		}
		result.Entries = append(result.Entries, e)
	}

	return result, nil
}

func isHeader(record []string) bool {
	if len(record) != len(csvHeader) {
		return false
	}
	for i, field := range csvHeader {
		if record[i] != field {
			return false
		}
	}
	return true
}

func parseCSVRecord(record []string) (entry.Entry, error) {
	if len(record) != 6 {
		return entry.Entry{}, fmt.Errorf("expected 6 fields, got %d", len(record))
	}
	minutes, err := strconv.Atoi(record[3])
	if err != nil {
		return entry.Entry{}, fmt.Errorf("invalid minutes %q", record[3])
	}
	e := entry.Entry{
		Date:     record[0],
		Start:    record[1],
		End:      record[2],
		Minutes:  minutes,
		Activity: record[4],
		Tags:     record[5],
	}
	if err := validate(e); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}
