// ABOUTME: Colors and lipgloss styles for the workout session screen.
// ABOUTME: Shared by every render helper in the tui package.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    = lipgloss.AdaptiveColor{Light: "#1e1e2e", Dark: "#cdd6f4"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#bcc0cc", Dark: "#45475a"}
	colorAccent  = lipgloss.Color("#89b4fa")
	colorSuccess = lipgloss.Color("#a6e3a1")
	colorWarn    = lipgloss.Color("#fab387")
	colorDanger  = lipgloss.Color("#f38ba8")

	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	timerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	textStyle  = lipgloss.NewStyle().Foreground(colorText)
	doneStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(colorDanger)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	cardActiveStyle = cardStyle.BorderForeground(colorAccent)

	cursorStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)
