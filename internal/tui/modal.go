package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalInfo
	modalWarning
	modalError
	modalAbout
	modalStatus
	modalHelp
)

type modal struct {
	kind  modalKind
	title string
	body  []string
}

func (d modal) visible() bool { return d.kind != modalNone }

func (m *Model) showModal(kind modalKind, title string, body ...string) {
	m.modal = modal{kind: kind, title: title, body: body}
}

func (m *Model) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", "q", " ":
		m.modal = modal{}
	}
	return nil
}

const aboutText = "gitc is a terminal git inspector: browse changed files, diffs, " +
	"commit history and a simple commit graph, then stage and commit files."

func (m *Model) showAbout() {
	m.showModal(modalAbout, "About gitc", aboutText, "", "Built with go-git, Bubble Tea and Lip Gloss.")
}

func (m *Model) showStatus() {
	lines := m.access.Status()
	if len(lines) == 0 {
		lines = []string{"No repository open."}
	}
	m.showModal(modalStatus, "git status", lines...)
}

func (m *Model) showKeys() {
	m.showModal(modalHelp, "Keys", m.help.FullHelpView(m.keys.FullHelp()))
}

func (m Model) renderModal() string {
	d := m.modal
	style := m.styles.modal
	title := m.styles.title.Render(d.title)
	if d.kind == modalError {
		style = m.styles.modalError
		title = m.styles.errorText.Render(d.title)
	}

	width := min(max(30, m.width-10), 100)
	body := make([]string, 0, len(d.body))
	for _, line := range d.body {
		body = append(body, expandTabs(line, m.config.TabSize))
	}
	footer := m.styles.help.Render("enter/esc: close")

	content := title + "\n\n" + strings.Join(body, "\n") + "\n\n" + footer
	return style.Width(width).Render(content)
}

// menuItem is one entry of the menu overlay.
type menuItem struct {
	group  string
	label  string
	action func(m *Model) tea.Cmd
}

func menuItems() []menuItem {
	return []menuItem{
		{"File", "Open repository", func(m *Model) tea.Cmd { return m.picker.open() }},
		{"File", "Exit", func(m *Model) tea.Cmd { return tea.Quit }},
		{"View", "Refresh status", func(m *Model) tea.Cmd { m.refresh(); return nil }},
		{"View", "Show git status", func(m *Model) tea.Cmd { m.showStatus(); return nil }},
		{"Settings", "Toggle light/dark theme", func(m *Model) tea.Cmd { m.toggleTheme(); return nil }},
		{"Help", "Keys", func(m *Model) tea.Cmd { m.showKeys(); return nil }},
		{"Help", "About gitc", func(m *Model) tea.Cmd { m.showAbout(); return nil }},
	}
}

type menuState struct {
	open   bool
	cursor int
	items  []menuItem
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "esc" || msg.String() == "f10":
		m.menu.open = false
	case msg.String() == "up" || msg.String() == "k":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case msg.String() == "down" || msg.String() == "j":
		if m.menu.cursor < len(m.menu.items)-1 {
			m.menu.cursor++
		}
	case msg.String() == "enter":
		item := m.menu.items[m.menu.cursor]
		m.menu.open = false
		return item.action(m)
	}
	return nil
}

func (m Model) renderMenuBar() string {
	var groups []string
	seen := map[string]bool{}
	for _, item := range m.menu.items {
		if seen[item.group] {
			continue
		}
		seen[item.group] = true
		groups = append(groups, item.group)
	}
	label := " " + strings.Join(groups, "   ") + "   (" + m.keys.Menu.Help().Key + ")"
	return m.styles.menuBar.Width(m.width).Render(truncate(label, m.width))
}

func (m Model) renderMenu() string {
	var lines []string
	lines = append(lines, m.styles.title.Render("Menu"))
	group := ""
	for i, item := range m.menu.items {
		if item.group != group {
			group = item.group
			lines = append(lines, "", m.styles.header.Render(group))
		}
		line := "  " + item.label
		if i == m.menu.cursor {
			line = m.styles.selected.Render("➜ " + item.label)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", m.styles.help.Render("enter: select • esc: close"))
	return m.styles.modal.Render(strings.Join(lines, "\n"))
}
