package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/cj3636/gitc/internal/config"
)

type keyMap struct {
	Quit        key.Binding
	Open        key.Binding
	Refresh     key.Binding
	ToggleTheme key.Binding
	About       key.Binding
	Menu        key.Binding
	Status      key.Binding
	Help        key.Binding
	Commit      key.Binding
	NextPane    key.Binding
	PrevPane    key.Binding
	ToggleCheck key.Binding
	Select      key.Binding
	Up          key.Binding
	Down        key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	Top         key.Binding
	Bottom      key.Binding
	CopyDiff    key.Binding
	ExportDiff  key.Binding
}

func newKeyMap(kb config.Keybindings) keyMap {
	bind := func(action, desc string) key.Binding {
		keys := kb[action]
		label := strings.ReplaceAll(strings.Join(keys, "/"), " ", "space")
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
	}
	return keyMap{
		Quit:        bind("quit", "quit"),
		Open:        bind("open", "open repository"),
		Refresh:     bind("refresh", "refresh"),
		ToggleTheme: bind("toggle_theme", "light/dark"),
		About:       bind("about", "about"),
		Menu:        bind("menu", "menu"),
		Status:      bind("status", "git status"),
		Help:        bind("help", "keys"),
		Commit:      bind("commit", "commit checked"),
		NextPane:    bind("next_pane", "next pane"),
		PrevPane:    bind("prev_pane", "previous pane"),
		ToggleCheck: bind("toggle_check", "check file"),
		Select:      bind("select", "open/expand"),
		Up:          bind("up", "up"),
		Down:        bind("down", "down"),
		PageDown:    bind("page_down", "page down"),
		PageUp:      bind("page_up", "page up"),
		Top:         bind("go_top", "top"),
		Bottom:      bind("go_bottom", "bottom"),
		CopyDiff:    bind("copy_diff", "copy diff"),
		ExportDiff:  bind("export_diff", "export diff"),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Open, k.Menu, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Refresh, k.Status, k.ToggleTheme, k.About, k.Menu, k.Quit},
		{k.NextPane, k.PrevPane, k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.ToggleCheck, k.Select, k.Commit, k.CopyDiff, k.ExportDiff, k.Help},
	}
}
