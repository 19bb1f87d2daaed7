package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	optionKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	candidateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	candidateTopStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("213"))

	guessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(1, 3)

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("84")).
			MarginTop(1)

	faintStyle = lipgloss.NewStyle().Faint(true)
)
