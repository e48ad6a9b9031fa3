// Package tui provides the interactive terminal UI for skillx.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - subtitles
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - keys
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Italic(true).
			PaddingLeft(1)

	HeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorBorder).
			MarginBottom(1)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)

// Help overlay styles
var (
	HelpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	HelpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary).
				MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	HelpFooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2).
			Width(50)
)
