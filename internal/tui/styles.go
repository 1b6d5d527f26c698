package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)

	markXStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	markOStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	cellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))
	cursorCellStyle  = cellStyle.BorderForeground(lipgloss.Color("12"))
	winningCellStyle = cellStyle.BorderForeground(lipgloss.Color("42")).Background(lipgloss.Color("22"))

	winStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	drawStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	turnStyle = lipgloss.NewStyle().Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(1, 2)
)
