package prompt

import "testing"

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Choice
	}{
		{"empty", "", Choice{Kind: ChoiceBlank}},
		{"whitespace only", "   ", Choice{Kind: ChoiceBlank}},
		{"quit", "q", Choice{Kind: ChoiceQuit}},
		{"quit uppercase", "Q", Choice{Kind: ChoiceQuit}},
		{"skip", "s", Choice{Kind: ChoiceSkip}},
		{"break", "b", Choice{Kind: ChoiceBreak}},
		{"repeat last", "r", Choice{Kind: ChoiceRepeatLast}},
		{"repeat last padded", " r ", Choice{Kind: ChoiceRepeatLast}},
		{"recent slot", "3", Choice{Kind: ChoiceRecent, Index: 3}},
		{"recent slot nine", "9", Choice{Kind: ChoiceRecent, Index: 9}},
		{"recent out of menu still numeric", "12", Choice{Kind: ChoiceRecent, Index: 12}},
		{"free text", "daily standup", Choice{Kind: ChoiceFreeText, Text: "daily standup"}},
		{"free text keeps case", "Revisar PRs", Choice{Kind: ChoiceFreeText, Text: "Revisar PRs"}},
		{"reserved letter inside word is text", "sprint", Choice{Kind: ChoiceFreeText, Text: "sprint"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseChoice(tt.input); got != tt.want {
				t.Errorf("ParseChoice(%q) = %+v, expected %+v", tt.input, got, tt.want)
			}
		})
	}
}
