// Package ui holds the lipgloss themes for the TUI. Two palettes exist:
// night (default) and day, toggled at runtime.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme is one resolved color palette.
type Theme struct {
	Title     lipgloss.Style
	Status    lipgloss.Style
	Ready     lipgloss.Style
	Recording lipgloss.Style
	Countdown lipgloss.Style

	Error     lipgloss.Style
	ErrorText lipgloss.Style

	Interim   lipgloss.Style
	Selected  lipgloss.Style
	Dim       lipgloss.Style
	Divider   lipgloss.Style
	Timestamp lipgloss.Style

	Star      lipgloss.Style
	StarEmpty lipgloss.Style
	Streak    lipgloss.Style
	Bookmark  lipgloss.Style

	FooterKey  lipgloss.Style
	FooterDesc lipgloss.Style
}

// Night returns the dark palette.
func Night() Theme {
	return makeTheme(
		lipgloss.Color("#00FFFF"), // accent
		lipgloss.Color("#666666"), // dim
		lipgloss.Color("#444444"), // faint
	)
}

// Day returns the light palette.
func Day() Theme {
	return makeTheme(
		lipgloss.Color("#0066CC"), // accent
		lipgloss.Color("#888888"), // dim
		lipgloss.Color("#BBBBBB"), // faint
	)
}

func makeTheme(accent, dim, faint lipgloss.Color) Theme {
	red := lipgloss.Color("#FF0000")
	green := lipgloss.Color("#00CC66")
	yellow := lipgloss.Color("#FFCC00")
	magenta := lipgloss.Color("#FF00FF")

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Status:    lipgloss.NewStyle().Foreground(dim),
		Ready:     lipgloss.NewStyle().Foreground(green),
		Recording: lipgloss.NewStyle().Bold(true).Foreground(red),
		Countdown: lipgloss.NewStyle().Bold(true).Foreground(yellow),

		Error:     lipgloss.NewStyle().Bold(true).Foreground(red),
		ErrorText: lipgloss.NewStyle().Foreground(red),

		Interim:   lipgloss.NewStyle().Foreground(yellow),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Dim:       lipgloss.NewStyle().Foreground(dim),
		Divider:   lipgloss.NewStyle().Foreground(faint),
		Timestamp: lipgloss.NewStyle().Foreground(dim),

		Star:      lipgloss.NewStyle().Foreground(yellow),
		StarEmpty: lipgloss.NewStyle().Foreground(faint),
		Streak:    lipgloss.NewStyle().Bold(true).Foreground(magenta),
		Bookmark:  lipgloss.NewStyle().Foreground(green),

		FooterKey:  lipgloss.NewStyle().Bold(true).Foreground(yellow),
		FooterDesc: lipgloss.NewStyle().Foreground(dim),
	}
}
