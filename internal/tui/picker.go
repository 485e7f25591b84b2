package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DirPicker is a lightweight directory chooser used to open a repository.
// The path field can be edited directly; arrows move through the listing.
type DirPicker struct {
	Visible    bool
	Entries    []dirEntry
	Cursor     int
	WorkingDir string
	Input      textinput.Model
	Err        error
}

type dirEntry struct {
	Name   string
	Path   string
	IsRepo bool
	Here   bool // opens WorkingDir itself
}

func newDirPicker(dir string) DirPicker {
	ti := textinput.New()
	ti.Prompt = "path: "
	ti.CharLimit = 0
	return DirPicker{WorkingDir: dir, Input: ti}
}

func (p *DirPicker) open() tea.Cmd {
	p.Visible = true
	p.Cursor = 0
	p.Err = nil
	p.refresh()
	return p.Input.Focus()
}

func (p *DirPicker) close() {
	p.Visible = false
	p.Input.Blur()
}

func (p *DirPicker) refresh() {
	p.Input.SetValue(p.WorkingDir)
	p.Input.CursorEnd()

	entries, err := os.ReadDir(p.WorkingDir)
	if err != nil {
		p.Err = err
		p.Entries = []dirEntry{{Name: ".", Path: p.WorkingDir, Here: true}}
		return
	}
	p.Err = nil

	items := []dirEntry{{Name: ".", Path: p.WorkingDir, IsRepo: isRepoDir(p.WorkingDir), Here: true}}
	if parent := filepath.Dir(p.WorkingDir); parent != p.WorkingDir {
		items = append(items, dirEntry{Name: "..", Path: parent})
	}

	var dirs []dirEntry
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == ".git" {
			continue
		}
		path := filepath.Join(p.WorkingDir, entry.Name())
		dirs = append(dirs, dirEntry{Name: entry.Name(), Path: path, IsRepo: isRepoDir(path)})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })

	p.Entries = append(items, dirs...)
	if p.Cursor >= len(p.Entries) {
		p.Cursor = max(0, len(p.Entries)-1)
	}
}

func isRepoDir(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// handleKey returns the directory to open once the user confirms one.
func (p *DirPicker) handleKey(msg tea.KeyMsg) (string, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.close()
		return "", false, nil
	case "up":
		if p.Cursor > 0 {
			p.Cursor--
		}
		return "", false, nil
	case "down":
		if p.Cursor < len(p.Entries)-1 {
			p.Cursor++
		}
		return "", false, nil
	case "enter":
		if typed := expandHome(strings.TrimSpace(p.Input.Value())); typed != "" && typed != p.WorkingDir {
			p.close()
			return typed, true, nil
		}
		if len(p.Entries) == 0 {
			return "", false, nil
		}
		entry := p.Entries[p.Cursor]
		if entry.Here {
			p.close()
			return entry.Path, true, nil
		}
		p.WorkingDir = entry.Path
		p.Cursor = 0
		p.refresh()
		return "", false, nil
	}

	var cmd tea.Cmd
	p.Input, cmd = p.Input.Update(msg)
	return "", false, cmd
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func (m Model) renderPicker() string {
	p := m.picker
	var lines []string
	lines = append(lines, m.styles.title.Render("Open git repository"))
	lines = append(lines, p.Input.View())

	if p.Err != nil {
		lines = append(lines, m.styles.errorText.Render("Error: "+p.Err.Error()))
	}

	height := max(3, m.height-12)
	start, end := visibleRange(p.Cursor, len(p.Entries), height)
	for i := start; i < end; i++ {
		entry := p.Entries[i]
		prefix := "  "
		if i == p.Cursor {
			prefix = "➜ "
		}
		name := entry.Name + "/"
		if entry.Here {
			name = "[open this directory]"
		}
		rendered := m.styles.unchanged.Render(name)
		if entry.IsRepo {
			rendered += m.styles.untrackedTag.Render(" (git)")
		}
		lines = append(lines, prefix+rendered)
	}

	footer := m.styles.help.Render("enter: open/descend • edit path + enter: open typed path • esc: close")
	lines = append(lines, footer)

	return m.styles.modal.Width(max(20, m.width-8)).Render(strings.Join(lines, "\n"))
}
