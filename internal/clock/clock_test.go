package clock

import (
	"testing"
	"time"
)

var bogota = time.FixedZone("-05", -5*60*60)

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{"morning", "07:30", 7, 30, false},
		{"midnight", "00:00", 0, 0, false},
		{"last minute", "23:59", 23, 59, false},
		{"hour out of range", "25:00", 0, 0, true},
		{"minute out of range", "12:60", 0, 0, true},
		{"negative hour", "-1:00", 0, 0, true},
		{"missing colon", "0730", 0, 0, true},
		{"too many parts", "07:30:00", 0, 0, true},
		{"not a number", "ab:cd", 0, 0, true},
		{"empty", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, err := ParseHHMM(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHHMM(%q) expected error, got %d:%d", tt.input, h, m)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHHMM(%q) unexpected error: %v", tt.input, err)
			}
			if h != tt.wantHour || m != tt.wantMinute {
				t.Errorf("ParseHHMM(%q) = %d:%d, expected %d:%d", tt.input, h, m, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestIsWorkTime(t *testing.T) {
	w := WorkWindow{StartHour: 7, EndHour: 17}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"monday mid-morning", time.Date(2026, 2, 2, 9, 0, 0, 0, bogota), true},
		{"monday at exact start", time.Date(2026, 2, 2, 7, 0, 0, 0, bogota), true},
		{"monday at exact end is off duty", time.Date(2026, 2, 2, 17, 0, 0, 0, bogota), false},
		{"monday before start", time.Date(2026, 2, 2, 6, 59, 59, 0, bogota), false},
		{"friday afternoon", time.Date(2026, 2, 6, 16, 59, 59, 0, bogota), true},
		{"saturday mid-morning", time.Date(2026, 2, 7, 9, 0, 0, 0, bogota), false},
		{"sunday mid-morning", time.Date(2026, 2, 8, 9, 0, 0, 0, bogota), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWorkTime(tt.t, w); got != tt.want {
				t.Errorf("IsWorkTime(%v) = %v, expected %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestNextWorkStart(t *testing.T) {
	w := WorkWindow{StartHour: 7, EndHour: 17}

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			"weekday before start returns same day",
			time.Date(2026, 2, 2, 6, 0, 0, 0, bogota),
			time.Date(2026, 2, 2, 7, 0, 0, 0, bogota),
		},
		{
			"weekday during work returns next day",
			time.Date(2026, 2, 2, 9, 0, 0, 0, bogota),
			time.Date(2026, 2, 3, 7, 0, 0, 0, bogota),
		},
		{
			"friday evening skips the weekend",
			time.Date(2026, 2, 6, 18, 0, 0, 0, bogota),
			time.Date(2026, 2, 9, 7, 0, 0, 0, bogota),
		},
		{
			"saturday returns monday start",
			time.Date(2026, 2, 7, 10, 0, 0, 0, bogota),
			time.Date(2026, 2, 9, 7, 0, 0, 0, bogota),
		},
		{
			"sunday returns monday start",
			time.Date(2026, 2, 8, 3, 0, 0, 0, bogota),
			time.Date(2026, 2, 9, 7, 0, 0, 0, bogota),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextWorkStart(tt.from, w)
			if !got.Equal(tt.want) {
				t.Errorf("NextWorkStart(%v) = %v, expected %v", tt.from, got, tt.want)
			}
			if got.Weekday() == time.Saturday || got.Weekday() == time.Sunday {
				t.Errorf("NextWorkStart landed on a weekend: %v", got)
			}
		})
	}
}

func TestSecondsUntil(t *testing.T) {
	now := time.Date(2026, 2, 2, 12, 0, 0, 0, bogota)

	if got := SecondsUntil(now.Add(90*time.Second), now); got != 90 {
		t.Errorf("SecondsUntil future = %d, expected 90", got)
	}
	if got := SecondsUntil(now.Add(-time.Minute), now); got != 0 {
		t.Errorf("SecondsUntil past = %d, expected 0", got)
	}
	if got := SecondsUntil(now, now); got != 0 {
		t.Errorf("SecondsUntil now = %d, expected 0", got)
	}
}

func TestBreakWindowOverlaps(t *testing.T) {
	b := BreakWindow{StartHour: 13, EndHour: 14}
	day := func(h, m int) time.Time {
		return time.Date(2026, 2, 2, h, m, 0, 0, bogota)
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"block inside break", day(13, 15), day(13, 45), true},
		{"block covers break", day(12, 30), day(14, 30), true},
		{"block straddles break start", day(12, 30), day(13, 30), true},
		{"block straddles break end", day(13, 30), day(14, 30), true},
		{"block before break", day(12, 0), day(13, 0), false},
		{"block after break", day(14, 0), day(15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, expected %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestParseWorkWindow(t *testing.T) {
	w, err := ParseWorkWindow("07:00", "17:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.StartHour != 7 || w.EndHour != 17 {
		t.Errorf("ParseWorkWindow = %+v", w)
	}

	if _, err := ParseWorkWindow("07:00", "24:00"); err == nil {
		t.Error("expected error for out-of-range end time")
	}
	if _, err := ParseWorkWindow("7am", "17:00"); err == nil {
		t.Error("expected error for malformed start time")
	}
}
