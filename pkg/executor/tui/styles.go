package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // primary accent
	coralPink   = lipgloss.Color("#FFCCCB") // secondary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // success states
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	buttonStyle = lipgloss.NewStyle().
			Foreground(coralPink).
			Bold(true)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(mutedGray)

	resultStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(mutedGray).
				Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	copiedStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	noteStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(salmonPink).
			Padding(0, 1)
)
