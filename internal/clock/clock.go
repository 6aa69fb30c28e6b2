// Package clock provides the time arithmetic for the work day: work
// window membership, next-start computation and "HH:MM" parsing. It is
// pure apart from the Clock interface, which is the single source of
// "now" for every time-dependent component so tests can substitute a
// fixed clock.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock supplies the current time in the configured timezone.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// Now implements Clock.
func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant. Test helper.
type FixedClock struct {
	Time time.Time
}

// Now implements Clock.
func (c FixedClock) Now() time.Time {
	return c.Time
}

// WorkWindow is the weekday hour range considered on duty. Saturdays
// and Sundays are never work time regardless of the window.
type WorkWindow struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// ParseHHMM parses a "HH:MM" time-of-day string.
// Valid range is 00:00 through 23:59.
func ParseHHMM(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM (e.g. 07:00)", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM (e.g. 07:00)", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM (e.g. 07:00)", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: hour must be 00-23 and minute 00-59", value)
	}
	return hour, minute, nil
}

// ParseWorkWindow builds a WorkWindow from "HH:MM" start and end strings.
func ParseWorkWindow(start, end string) (WorkWindow, error) {
	sh, sm, err := ParseHHMM(start)
	if err != nil {
		return WorkWindow{}, err
	}
	eh, em, err := ParseHHMM(end)
	if err != nil {
		return WorkWindow{}, err
	}
	return WorkWindow{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em}, nil
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// startOn returns the window's start instant on t's calendar day.
func (w WorkWindow) startOn(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), w.StartHour, w.StartMinute, 0, 0, t.Location())
}

// endOn returns the window's end instant on t's calendar day.
func (w WorkWindow) endOn(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), w.EndHour, w.EndMinute, 0, 0, t.Location())
}

// IsWorkTime reports whether t falls inside the work window. The window
// is half-open: the start instant is working, the end instant is not.
func IsWorkTime(t time.Time, w WorkWindow) bool {
	if isWeekend(t) {
		return false
	}
	start := w.startOn(t)
	end := w.endOn(t)
	return !t.Before(start) && t.Before(end)
}

// NextWorkStart returns the next instant the work window opens at or
// after t: today's start if it is still ahead on a weekday, otherwise
// the start on the next weekday. Terminates within seven day steps.
func NextWorkStart(t time.Time, w WorkWindow) time.Time {
	if candidate := w.startOn(t); t.Before(candidate) && !isWeekend(t) {
		return candidate
	}
	d := t
	for {
		d = w.startOn(d.AddDate(0, 0, 1))
		if !isWeekend(d) {
			return d
		}
	}
}

// SecondsUntil returns the whole seconds from now until target, never
// negative, so sleep durations stay sane if the clock drifts past the
// target between computing and sleeping.
func SecondsUntil(target, now time.Time) int {
	s := int(target.Sub(now).Seconds())
	if s < 0 {
		return 0
	}
	return s
}

// BreakWindow is an optional daily range logged automatically without
// prompting.
type BreakWindow struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// ParseBreakWindow builds a BreakWindow from "HH:MM" start and end strings.
func ParseBreakWindow(start, end string) (BreakWindow, error) {
	sh, sm, err := ParseHHMM(start)
	if err != nil {
		return BreakWindow{}, err
	}
	eh, em, err := ParseHHMM(end)
	if err != nil {
		return BreakWindow{}, err
	}
	return BreakWindow{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em}, nil
}

// Overlaps reports whether the half-open block [blockStart, blockEnd)
// intersects the break range on blockStart's calendar day.
func (b BreakWindow) Overlaps(blockStart, blockEnd time.Time) bool {
	day := blockStart
	start := time.Date(day.Year(), day.Month(), day.Day(), b.StartHour, b.StartMinute, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), b.EndHour, b.EndMinute, 0, 0, day.Location())
	if !end.After(start) {
		return false
	}
	return blockStart.Before(end) && blockEnd.After(start)
}
