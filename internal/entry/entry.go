// Package entry defines the immutable record representing one logged
// time block. The JSON field names are the on-disk contract shared with
// older versions of the log files and must not change.
package entry

import (
	"math"
	"strings"
	"time"
)

// Sentinel activity values. These are reserved strings distinguished
// from free-form user text; they are stored verbatim so existing log
// files keep parsing.
const (
	NoDetail = "(sin detalle)"
	Skipped  = "(sin registro / skip)"
	OnBreak  = "(break / descanso)"
)

// NoTags is the bucket label used in summaries for untagged entries.
const NoTags = "(sin tags)"

// DateFormat is the calendar-date layout used in Date fields and file names.
const DateFormat = "2006-01-02"

// Entry is a single logged time block. Entries are never mutated after
// creation; storage only ever appends them.
type Entry struct {
	Date     string `json:"date"`     // YYYY-MM-DD, the day the block started
	Start    string `json:"start"`    // ISO-8601 with offset, seconds precision
	End      string `json:"end"`      // ISO-8601 with offset, seconds precision
	Minutes  int    `json:"minutes"`  // >= 1
	Activity string `json:"activity"` // free-form, may be multi-line
	Tags     string `json:"tags"`     // comma-separated labels, "" = untagged
}

// New builds an Entry from a block's boundaries. Minutes is the rounded
// block length with a floor of one minute, and Date is derived from the
// start timestamp.
func New(start, end time.Time, activity, tags string) Entry {
	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return Entry{
		Date:     start.Format(DateFormat),
		Start:    FormatTime(start),
		End:      FormatTime(end),
		Minutes:  minutes,
		Activity: activity,
		Tags:     tags,
	}
}

// FormatTime renders a timestamp in the ISO-8601 seconds-precision form
// used by Start and End.
func FormatTime(t time.Time) string {
	return t.Truncate(time.Second).Format(time.RFC3339)
}

// IsSentinel reports whether activity is one of the reserved no-op
// values rather than real user text.
func IsSentinel(activity string) bool {
	switch activity {
	case NoDetail, Skipped, OnBreak:
		return true
	}
	return false
}

// SplitTags splits a comma-separated tag string into trimmed, non-empty
// labels. Returns nil for an untagged entry.
func SplitTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TagsOrDefault returns the entry's tag labels, or the untagged bucket
// label when it has none.
func TagsOrDefault(tags string) []string {
	if split := SplitTags(tags); split != nil {
		return split
	}
	return []string{NoTags}
}
