package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary = lipgloss.Color("#bd93f9") // Dracula Purple
	ColorSuccess = lipgloss.Color("#50fa7b") // Dracula Green
	ColorError   = lipgloss.Color("#ff5555") // Dracula Red
	ColorSubtext = lipgloss.Color("#6272a4") // Dracula Comment

	// Styles
	ArrowStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	MethodStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	CounterStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)
)
