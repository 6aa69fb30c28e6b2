package prompt

import (
	"strconv"
	"strings"
)

// ChoiceKind enumerates what a tick-menu response means. The raw string
// is parsed exactly once, here; everything downstream dispatches on the
// closed type instead of re-matching strings.
type ChoiceKind int

const (
	// ChoiceBlank is an empty response: capture a fresh description.
	ChoiceBlank ChoiceKind = iota
	// ChoiceQuit stops the scheduler cleanly.
	ChoiceQuit
	// ChoiceSkip records the skip sentinel.
	ChoiceSkip
	// ChoiceBreak records the break sentinel.
	ChoiceBreak
	// ChoiceRepeatLast reuses the most recent activity.
	ChoiceRepeatLast
	// ChoiceRecent picks a quick-pick menu slot (Index is 1-based).
	ChoiceRecent
	// ChoiceFreeText takes the response verbatim as the activity.
	ChoiceFreeText
)

// Choice is one parsed tick-menu response.
type Choice struct {
	Kind  ChoiceKind
	Index int    // set for ChoiceRecent
	Text  string // set for ChoiceFreeText, original casing preserved
}

// ParseChoice interprets a raw menu response. Reserved keys are matched
// case-insensitively; anything else non-empty is the activity as typed.
func ParseChoice(input string) Choice {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Choice{Kind: ChoiceBlank}
	}

	switch strings.ToLower(trimmed) {
	case "q":
		return Choice{Kind: ChoiceQuit}
	case "s":
		return Choice{Kind: ChoiceSkip}
	case "b":
		return Choice{Kind: ChoiceBreak}
	case "r":
		return Choice{Kind: ChoiceRepeatLast}
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		return Choice{Kind: ChoiceRecent, Index: n}
	}

	return Choice{Kind: ChoiceFreeText, Text: trimmed}
}
