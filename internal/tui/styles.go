package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gitc/internal/config"
)

// Styles holds all the lipgloss styles
type Styles struct {
	added        lipgloss.Style
	removed      lipgloss.Style
	addedEmph    lipgloss.Style
	removedEmph  lipgloss.Style
	unchanged    lipgloss.Style
	hunk         lipgloss.Style
	header       lipgloss.Style
	lineNumber   lipgloss.Style
	title        lipgloss.Style
	paneTitle    lipgloss.Style
	help         lipgloss.Style
	statusBar    lipgloss.Style
	menuBar      lipgloss.Style
	selected     lipgloss.Style
	errorText    lipgloss.Style
	edge         lipgloss.Style
	box          lipgloss.Style
	boxFocused   lipgloss.Style
	modal        lipgloss.Style
	modalError   lipgloss.Style
	tabActive    lipgloss.Style
	tabInactive  lipgloss.Style
	untrackedTag lipgloss.Style
	modifiedTag  lipgloss.Style
}

// createStyles initializes all lipgloss styles based on theme
func createStyles(theme config.Theme) *Styles {
	return &Styles{
		added: lipgloss.NewStyle().
			Foreground(theme.AddedFg).
			Background(theme.AddedBg),
		removed: lipgloss.NewStyle().
			Foreground(theme.RemovedFg).
			Background(theme.RemovedBg),
		addedEmph: lipgloss.NewStyle().
			Foreground(theme.AddedFg).
			Background(theme.AddedBg).
			Bold(true).
			Underline(true),
		removedEmph: lipgloss.NewStyle().
			Foreground(theme.RemovedFg).
			Background(theme.RemovedBg).
			Bold(true).
			Underline(true),
		unchanged: lipgloss.NewStyle().
			Foreground(theme.UnchangedFg),
		hunk: lipgloss.NewStyle().
			Foreground(theme.HunkFg),
		header: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Bold(true),
		lineNumber: lipgloss.NewStyle().
			Foreground(theme.LineNumberFg).
			Width(5).
			Align(lipgloss.Right),
		title: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Bold(true).
			Padding(0, 1),
		paneTitle: lipgloss.NewStyle().
			Foreground(theme.FocusFg).
			Bold(true),
		help: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Italic(true),
		statusBar: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Padding(0, 1),
		menuBar: lipgloss.NewStyle().
			Foreground(theme.UnchangedFg).
			Background(theme.SelectedBg),
		selected: lipgloss.NewStyle().
			Background(theme.SelectedBg).
			Bold(true),
		errorText: lipgloss.NewStyle().
			Foreground(theme.ErrorFg).
			Bold(true),
		edge: lipgloss.NewStyle().
			Foreground(theme.EdgeFg),
		box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderFg),
		boxFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.FocusFg),
		modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.FocusFg).
			Padding(1, 2),
		modalError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ErrorFg).
			Padding(1, 2),
		tabActive: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Padding(0, 1).
			Bold(true),
		tabInactive: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Padding(0, 1),
		untrackedTag: lipgloss.NewStyle().
			Foreground(theme.HunkFg),
		modifiedTag: lipgloss.NewStyle().
			Foreground(theme.RemovedFg),
	}
}
