package cli

import "github.com/charmbracelet/lipgloss"

// Shared output styles. lipgloss degrades to plain text when the
// output is not a terminal, so these are safe in scripts and tests.
var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	promptLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)
