// Package tui provides the live-updating terminal dashboard for statz.
// It uses Charmbracelet's Bubble Tea and Lip Gloss for the terminal UI.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the TUI.
var (
	// Primary colors
	primaryColor = lipgloss.Color("#7D56F4")
	accentColor  = lipgloss.Color("#00D9FF")

	// Status colors
	successColor = lipgloss.Color("#28A745")
	warningColor = lipgloss.Color("#FFC107")
	dangerColor  = lipgloss.Color("#DC3545")

	// Neutral colors
	mutedColor  = lipgloss.Color("#666666")
	borderColor = lipgloss.Color("#333333")
)

// Box styles for containers.
var (
	// outerBoxStyle is the main container style.
	outerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	// dividerStyle creates horizontal dividers.
	dividerStyle = lipgloss.NewStyle().
			Foreground(borderColor)
)

// Text styles.
var (
	// titleStyle for main titles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// sectionStyle for metric group headers.
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	// labelStyle for metric labels.
	labelStyle = lipgloss.NewStyle().
			Width(12).
			Foreground(mutedColor)

	// valueStyle for metric values.
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	// errorTextStyle for unavailable components.
	errorTextStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	// keyStyle for key hints.
	keyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// keyDescStyle for key hint descriptions.
	keyDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// Gauge styles. A gauge's fill color shifts with its load.
var (
	gaugeLowStyle = lipgloss.NewStyle().
			Foreground(successColor)

	gaugeMidStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	gaugeHighStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	gaugeEmptyStyle = lipgloss.NewStyle().
			Foreground(borderColor)
)
