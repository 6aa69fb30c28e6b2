package cli

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles shared by the banner, the tick
// menu and command output.
type Styles struct {
	Title   lipgloss.Style
	Path    lipgloss.Style
	Block   lipgloss.Style
	Menu    lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the default console styles.
func DefaultStyles() Styles {
	primary := lipgloss.Color("99")  // Purple
	muted := lipgloss.Color("240")   // Gray
	success := lipgloss.Color("82")  // Green
	warning := lipgloss.Color("214") // Orange

	return Styles{
		Title:   lipgloss.NewStyle().Foreground(primary).Bold(true),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Block:   lipgloss.NewStyle().Bold(true),
		Menu:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Warning: lipgloss.NewStyle().Foreground(warning),
		Success: lipgloss.NewStyle().Foreground(success),
	}
}
