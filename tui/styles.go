package tui

import "github.com/charmbracelet/lipgloss"

type theme struct {
	title      lipgloss.Style
	text       lipgloss.Style
	muted      lipgloss.Style
	selected   lipgloss.Style
	errorText  lipgloss.Style
	alert      lipgloss.Style
	skeleton   lipgloss.Style
	panel      lipgloss.Style
	temp       lipgloss.Style
	dayCursor  lipgloss.Style
	helpKey    lipgloss.Style
	helpAction lipgloss.Style
}

// newTheme палитра для светлой или темной темы
func newTheme(dark bool) theme {
	fg, bg, accent, muted := lipgloss.Color("#1E293B"), lipgloss.Color("#E0F2FE"), lipgloss.Color("#0369A1"), lipgloss.Color("#64748B")
	if dark {
		fg, bg, accent, muted = lipgloss.Color("#F1F5F9"), lipgloss.Color("#1F2937"), lipgloss.Color("#38BDF8"), lipgloss.Color("#9CA3AF")
	}

	return theme{
		title:      lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		text:       lipgloss.NewStyle().Foreground(fg),
		muted:      lipgloss.NewStyle().Foreground(muted),
		selected:   lipgloss.NewStyle().Bold(true).Foreground(bg).Background(accent),
		errorText:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC2626")),
		alert:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FACC15")).Padding(0, 1),
		skeleton:   lipgloss.NewStyle().Foreground(muted).Faint(true),
		panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		temp:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		dayCursor:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		helpKey:    lipgloss.NewStyle().Foreground(accent),
		helpAction: lipgloss.NewStyle().Foreground(muted),
	}
}
