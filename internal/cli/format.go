// Package cli provides the presentation layer shared by commands and
// the scheduler: injectable IO dependencies, output styles and small
// formatting helpers.
package cli

import (
	"fmt"
	"strings"

	"github.com/Emma-Ok/time-report/internal/storage"
)

// FormatDuration formats minutes as a human-readable string.
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatParseWarning formats a ParseWarning into a human-readable line.
func FormatParseWarning(w storage.ParseWarning) string {
	content := w.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  %s:%d: %s (%v)", w.Path, w.Line, content, w.Err)
}

// FirstLine collapses a multi-line activity to its first line,
// truncated to max runes for menu display.
func FirstLine(s string, max int) string {
	line := s
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if max > 3 && len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return line
}
