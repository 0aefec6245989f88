package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the title line.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	phaseStyles = map[string]lipgloss.Style{
		// Terminal states
		"installed": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached":    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"complete":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		// Active states
		"checking":    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"downloading": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		// Error
		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		// Pending
		"pending": lipgloss.NewStyle().Faint(true),
	}
)

// PhaseStyle returns the lipgloss style for the given phase string.
func PhaseStyle(phase string) lipgloss.Style {
	if s, ok := phaseStyles[phase]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
