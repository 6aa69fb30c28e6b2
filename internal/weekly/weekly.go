// Package weekly reconstructs a full ISO week from the per-day logs and
// renders the aggregate report. Days are read through the storage
// fallback chain, so a week whose logs straddle the layout migration
// still aggregates completely.
package weekly

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Emma-Ok/time-report/internal/clock"
	"github.com/Emma-Ok/time-report/internal/entry"
	"github.com/Emma-Ok/time-report/internal/storage"
)

// CurrentWeek is the week argument meaning "the week containing today".
const CurrentWeek = "current"

var weekLabelPattern = regexp.MustCompile(`^(\d{4})-W(\d{1,2})$`)

// Week is a resolved ISO week: its Monday, its Sunday and the
// normalized YYYY-Www label.
type Week struct {
	Monday time.Time
	Sunday time.Time
	Label  string
}

// Resolve turns a week argument ("current" or an explicit YYYY-Www
// label) into the concrete week. Invalid labels are configuration
// errors and fail before anything is read.
func Resolve(week string, clk clock.Clock) (Week, error) {
	var isoYear, isoWeek int
	if week == CurrentWeek {
		isoYear, isoWeek = clk.Now().ISOWeek()
	} else {
		m := weekLabelPattern.FindStringSubmatch(week)
		if m == nil {
			return Week{}, fmt.Errorf("invalid week %q: use %q or YYYY-Www (e.g. 2026-W06)", week, CurrentWeek)
		}
		isoYear, _ = strconv.Atoi(m[1])
		isoWeek, _ = strconv.Atoi(m[2])
	}

	monday, err := mondayOfISOWeek(isoYear, isoWeek, clk.Now().Location())
	if err != nil {
		return Week{}, err
	}
	return Week{
		Monday: monday,
		Sunday: monday.AddDate(0, 0, 6),
		Label:  fmt.Sprintf("%04d-W%02d", isoYear, isoWeek),
	}, nil
}

// mondayOfISOWeek inverts time.Time.ISOWeek. January 4th is always in
// week 1, which anchors the scan; the result is validated so week 53 is
// only accepted in years that have one.
func mondayOfISOWeek(isoYear, isoWeek int, loc *time.Location) (time.Time, error) {
	if isoWeek < 1 || isoWeek > 53 {
		return time.Time{}, fmt.Errorf("invalid week number %d: must be 1-53", isoWeek)
	}

	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, -(weekday - 1))
	monday := week1Monday.AddDate(0, 0, (isoWeek-1)*7)

	if y, w := monday.ISOWeek(); y != isoYear || w != isoWeek {
		return time.Time{}, fmt.Errorf("invalid week %04d-W%02d: year %d has no week %d", isoYear, isoWeek, isoYear, isoWeek)
	}
	return monday, nil
}

// Days enumerates the week's seven calendar days, Monday through
// Sunday. Weekend days usually have no logs and contribute nothing,
// but they are always consulted.
func (w Week) Days() []string {
	days := make([]string, 7)
	for i := range days {
		days[i] = w.Monday.AddDate(0, 0, i).Format(entry.DateFormat)
	}
	return days
}

// Collect pulls every day of the week through the storage fallback
// chain. Parse warnings from any source are returned for reporting;
// they never abort the aggregation.
func Collect(baseDir string, w Week) ([]entry.Entry, []storage.ParseWarning, error) {
	var (
		entries  []entry.Entry
		warnings []storage.ParseWarning
	)
	for _, day := range w.Days() {
		res, err := storage.ReadDayWithFallback(baseDir, day)
		if err != nil {
			return nil, warnings, fmt.Errorf("reading %s: %w", day, err)
		}
		entries = append(entries, res.Entries...)
		warnings = append(warnings, res.Warnings...)
	}
	return entries, warnings, nil
}

// DayTotal is one day's aggregate.
type DayTotal struct {
	Date    string
	Minutes int
}

// TagTotal is one tag's aggregate.
type TagTotal struct {
	Tag     string
	Minutes int
}

// Summary aggregates a week's entries.
type Summary struct {
	TotalMinutes int
	ByDay        []DayTotal // ascending by date
	ByTag        []TagTotal // descending by minutes
}

// Summarize computes the weekly aggregates. An entry with several tags
// contributes its full duration to each of them, so tag totals can
// exceed the grand total; untagged entries land in the (sin tags)
// bucket.
func Summarize(entries []entry.Entry) Summary {
	s := Summary{}
	byDay := map[string]int{}
	byTag := map[string]int{}

	for _, e := range entries {
		s.TotalMinutes += e.Minutes
		byDay[e.Date] += e.Minutes
		for _, tag := range entry.TagsOrDefault(e.Tags) {
			byTag[tag] += e.Minutes
		}
	}

	for date, minutes := range byDay {
		s.ByDay = append(s.ByDay, DayTotal{Date: date, Minutes: minutes})
	}
	sort.Slice(s.ByDay, func(i, j int) bool { return s.ByDay[i].Date < s.ByDay[j].Date })

	for tag, minutes := range byTag {
		s.ByTag = append(s.ByTag, TagTotal{Tag: tag, Minutes: minutes})
	}
	sort.Slice(s.ByTag, func(i, j int) bool {
		if s.ByTag[i].Minutes != s.ByTag[j].Minutes {
			return s.ByTag[i].Minutes > s.ByTag[j].Minutes
		}
		return s.ByTag[i].Tag < s.ByTag[j].Tag
	})

	return s
}

// Render produces the weekly markdown report. Deterministic for a given
// entry set, so regeneration is idempotent.
func Render(w Week, entries []entry.Entry, includeDetails bool) []byte {
	s := Summarize(entries)

	var b strings.Builder
	fmt.Fprintf(&b, "# Weekly Worklog %s\n\n", w.Label)
	fmt.Fprintf(&b, "**Rango:** %s → %s\n", w.Monday.Format(entry.DateFormat), w.Sunday.Format(entry.DateFormat))
	fmt.Fprintf(&b, "**Total:** %d min (%s h)\n\n", s.TotalMinutes, hours(s.TotalMinutes))

	b.WriteString("## Totales por día\n")
	if len(s.ByDay) == 0 {
		b.WriteString("- (sin registros)\n")
	} else {
		for _, d := range s.ByDay {
			fmt.Fprintf(&b, "- **%s**: %d min (%s h)\n", d.Date, d.Minutes, hours(d.Minutes))
		}
	}

	b.WriteString("\n## Totales por tags\n")
	if len(s.ByTag) == 0 {
		b.WriteString("- (sin registros)\n")
	} else {
		for _, tt := range s.ByTag {
			fmt.Fprintf(&b, "- **%s**: %d min (%s h)\n", tt.Tag, tt.Minutes, hours(tt.Minutes))
		}
	}

	if includeDetails {
		b.WriteString("\n## Detalle\n\n")
		b.WriteString("| Fecha | Inicio | Fin | Min | Actividad | Tags |\n")
		b.WriteString("|---|---|---|---:|---|---|\n")

		sorted := make([]entry.Entry, len(entries))
		copy(sorted, entries)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Date != sorted[j].Date {
				return sorted[i].Date < sorted[j].Date
			}
			return sorted[i].Start < sorted[j].Start
		})

		for _, e := range sorted {
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s |\n",
				e.Date, timeOfDay(e.Start), timeOfDay(e.End), e.Minutes,
				strings.ReplaceAll(e.Activity, "\n", "<br>"),
				strings.ReplaceAll(e.Tags, "\n", " "))
		}
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n")
}

// OutputPath is the deterministic weekly report location under the base
// directory, keyed by the week label.
func OutputPath(baseDir, label string) string {
	return filepath.Join(baseDir, "worklog_md", "weekly", label+"_summary.md")
}

// Generate resolves the week, collects its entries and writes the
// report. Returns the output path and any parse warnings encountered
// along the way.
func Generate(baseDir, week string, clk clock.Clock, includeDetails bool) (string, []storage.ParseWarning, error) {
	w, err := Resolve(week, clk)
	if err != nil {
		return "", nil, err
	}

	entries, warnings, err := Collect(baseDir, w)
	if err != nil {
		return "", warnings, err
	}

	outPath := OutputPath(baseDir, w.Label)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", warnings, fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
	}
	if err := os.WriteFile(outPath, Render(w, entries, includeDetails), 0644); err != nil {
		return "", warnings, err
	}
	return outPath, warnings, nil
}

func hours(minutes int) string {
	s := fmt.Sprintf("%.2f", float64(minutes)/60)
	return strings.TrimSuffix(s, "0")
}

func timeOfDay(iso string) string {
	if _, after, found := strings.Cut(iso, "T"); found {
		return after
	}
	return iso
}
