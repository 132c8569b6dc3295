package tui

import "github.com/charmbracelet/lipgloss"

// Teal for navigation, green for a dose logged, red for anything destructive
var (
	accent = lipgloss.AdaptiveColor{Light: "30", Dark: "44"}
	muted  = lipgloss.AdaptiveColor{Light: "245", Dark: "241"}

	tabStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2)

	currentTabStyle = tabStyle.
			Foreground(accent).
			Bold(true).
			Underline(true)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "78"}).
			PaddingLeft(2)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).
			Bold(true).
			PaddingLeft(2)

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).
			Padding(1, 3)

	contentStyle = lipgloss.NewStyle().Padding(1, 2)
)
