package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the placement views.
type Styles struct {
	Frame     lipgloss.Style
	Badge     lipgloss.Style
	Title     lipgloss.Style
	Body      lipgloss.Style
	Action    lipgloss.Style
	Disabled  lipgloss.Style
	ErrorBox  lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Selected  lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the standard placement look.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		Body: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1),
		Correct: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true),
		Incorrect: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
