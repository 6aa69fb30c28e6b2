package cli

import (
	"strings"
	"testing"

	"github.com/Emma-Ok/time-report/internal/storage"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{30, "30m"},
		{59, "59m"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{605, "10h 5m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatParseWarning(t *testing.T) {
	w := storage.ParseWarning{
		Path:    "/logs/2026-02-02_worklog.jsonl",
		Line:    3,
		Content: "{bad json",
		Err:     "invalid character 'b'",
	}
	got := FormatParseWarning(w)
	if !strings.Contains(got, "2026-02-02_worklog.jsonl:3") {
		t.Errorf("warning missing location: %q", got)
	}
	if !strings.Contains(got, "{bad json") {
		t.Errorf("warning missing content: %q", got)
	}
}

func TestFormatParseWarningTruncatesLongContent(t *testing.T) {
	w := storage.ParseWarning{
		Path:    "x.jsonl",
		Line:    1,
		Content: strings.Repeat("a", 80),
		Err:     "boom",
	}
	got := FormatParseWarning(w)
	if !strings.Contains(got, "...") {
		t.Errorf("expected truncated content in %q", got)
	}
	if strings.Contains(got, strings.Repeat("a", 60)) {
		t.Errorf("content not truncated: %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"single line", "daily standup", 60, "daily standup"},
		{"multi line keeps first", "review PR\nfix tests", 60, "review PR"},
		{"long line truncated", strings.Repeat("x", 70), 60, strings.Repeat("x", 57) + "..."},
		{"exact fit untouched", strings.Repeat("x", 60), 60, strings.Repeat("x", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstLine(tt.in, tt.max); got != tt.want {
				t.Errorf("FirstLine(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
