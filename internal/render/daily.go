// Package render produces the human-readable daily summary. Rendering
// is a pure function of the entry list so the file can be regenerated
// from the durable logs at any point and always come out identical.
package render

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Emma-Ok/time-report/internal/entry"
)

// Daily renders the markdown summary for one day's entries: the total,
// per-tag totals in descending order, and the chronological table. The
// headings are kept exactly as older versions wrote them so regenerated
// files diff cleanly against historical ones.
func Daily(entries []entry.Entry) []byte {
	tagMinutes := map[string]int{}
	total := 0
	for _, e := range entries {
		total += e.Minutes
		for _, tag := range entry.TagsOrDefault(e.Tags) {
			tagMinutes[tag] += e.Minutes
		}
	}

	day := "N/A"
	if len(entries) > 0 {
		day = entries[0].Date
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Worklog %s\n\n", day)
	fmt.Fprintf(&b, "**Total:** %d min (%s h)\n\n", total, hours(total))
	b.WriteString("## Resumen por tags\n")

	if len(tagMinutes) == 0 {
		b.WriteString("- (sin registros)\n")
	} else {
		for _, tc := range sortTagTotals(tagMinutes) {
			fmt.Fprintf(&b, "- **%s**: %d min (%s h)\n", tc.tag, tc.minutes, hours(tc.minutes))
		}
	}

	b.WriteString("\n## Detalle cronológico\n\n")
	b.WriteString("| Inicio | Fin | Min | Actividad | Tags |\n")
	b.WriteString("|---|---|---:|---|---|\n")

	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n",
			timeOfDay(e.Start), timeOfDay(e.End), e.Minutes,
			activityCell(e.Activity), strings.ReplaceAll(e.Tags, "\n", " "))
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n")
}

// WriteDaily overwrites path with the rendered summary. Full rewrite,
// never append: the summary must match the durable logs after every
// persisted entry even if the process dies between writes.
func WriteDaily(path string, entries []entry.Entry) error {
	return os.WriteFile(path, Daily(entries), 0644)
}

type tagCount struct {
	tag     string
	minutes int
}

// sortTagTotals orders tags by minutes descending, tag name ascending
// on ties so rendering stays deterministic.
func sortTagTotals(m map[string]int) []tagCount {
	out := make([]tagCount, 0, len(m))
	for tag, minutes := range m {
		out = append(out, tagCount{tag, minutes})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].minutes != out[j].minutes {
			return out[i].minutes > out[j].minutes
		}
		return out[i].tag < out[j].tag
	})
	return out
}

// hours formats minutes as decimal hours rounded to two decimals with
// at least one kept (60 -> "1.0", 90 -> "1.5", 100 -> "1.67"), the
// exact shape historical summary files use.
func hours(minutes int) string {
	s := fmt.Sprintf("%.2f", float64(minutes)/60)
	return strings.TrimSuffix(s, "0")
}

// timeOfDay extracts the HH:MM:SS±offset portion of an ISO timestamp.
func timeOfDay(iso string) string {
	if _, after, found := strings.Cut(iso, "T"); found {
		return after
	}
	return iso
}

// activityCell flattens an activity for a table cell: multi-line text
// becomes a bullet list joined with <br> so the table stays valid.
func activityCell(activity string) string {
	if !strings.Contains(activity, "\n") {
		return strings.TrimSpace(activity)
	}
	var lines []string
	for _, line := range strings.Split(activity, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, "- "+line)
		}
	}
	return strings.Join(lines, "<br>")
}
