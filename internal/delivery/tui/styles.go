package tui

import "github.com/charmbracelet/lipgloss"

var (
	green     = lipgloss.Color("10")
	dimGreen  = lipgloss.Color("22")
	midGreen  = lipgloss.Color("28")
	red       = lipgloss.Color("9")
	yellow    = lipgloss.Color("11")
	white     = lipgloss.Color("15")
	darkGreen = lipgloss.Color("235")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(green)
	glitchStyle    = lipgloss.NewStyle().Bold(true).Foreground(red).Background(lipgloss.Color("6"))
	dimStyle       = lipgloss.NewStyle().Foreground(midGreen)
	labelStyle     = lipgloss.NewStyle().Foreground(midGreen).Bold(true)
	valueStyle     = lipgloss.NewStyle().Foreground(green).Bold(true)
	targetStyle    = lipgloss.NewStyle().Foreground(white).Bold(true)
	activeStyle    = lipgloss.NewStyle().Foreground(yellow).Bold(true)
	triggeredStyle = lipgloss.NewStyle().Foreground(red).Bold(true)
	aboveBadge     = lipgloss.NewStyle().Foreground(green).Background(lipgloss.Color("22")).Padding(0, 1)
	belowBadge     = lipgloss.NewStyle().Foreground(red).Background(lipgloss.Color("52")).Padding(0, 1)
	selectedStyle  = lipgloss.NewStyle().Background(darkGreen)
	errorStyle     = lipgloss.NewStyle().Foreground(red)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(dimGreen).
			Padding(0, 1)

	toggleOn  = lipgloss.NewStyle().Foreground(green).Bold(true).Border(lipgloss.NormalBorder()).BorderForeground(green).Padding(0, 1)
	toggleOff = lipgloss.NewStyle().Foreground(dimGreen).Border(lipgloss.NormalBorder()).BorderForeground(dimGreen).Padding(0, 1)
)
