// Package views provides the individual views for the skillx TUI.
package views

import "github.com/charmbracelet/lipgloss"

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffe66d")).
				Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	skillTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#4ecdc4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff6b6b")).
			Padding(0, 2).
			Margin(1, 0, 0, 0)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 2).
			Margin(1, 0, 0, 0)

	resultHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ff6b6b")).
				Bold(true)

	resultTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))
)
