package tui

import (
	"fmt"
	"strings"

	"github.com/cj3636/gitc/internal/repo"
)

// fileItem is one row of the changed-file list.
type fileItem struct {
	change  repo.FileChange
	checked bool
}

func (m *Model) loadFiles() {
	changes := m.access.ChangedFiles()
	m.files = make([]fileItem, 0, len(changes))
	for _, c := range changes {
		m.files = append(m.files, fileItem{change: c})
	}
	m.fileCursor = 0
}

func (m *Model) checkedPaths() []string {
	var paths []string
	for _, f := range m.files {
		if f.checked {
			paths = append(paths, f.change.Path)
		}
	}
	return paths
}

func (m *Model) toggleChecked() {
	if m.fileCursor < len(m.files) {
		m.files[m.fileCursor].checked = !m.files[m.fileCursor].checked
	}
}

func (m *Model) moveFileCursor(delta int) {
	if len(m.files) == 0 {
		return
	}
	m.fileCursor = max(0, min(len(m.files)-1, m.fileCursor+delta))
	m.selectFile()
}

// selectFile loads the diff of the file under the cursor.
func (m *Model) selectFile() {
	if m.fileCursor >= len(m.files) {
		return
	}
	change := m.files[m.fileCursor].change
	text := m.access.Diff(change.Path)
	if change.State == repo.StateUntracked {
		m.setPlain(change.Path, text)
		return
	}
	m.setDiff(change.Path, text)
}

func (m Model) renderFiles(width, height int) string {
	if !m.access.Bound() {
		return m.styles.help.Render("No repository open.")
	}
	if len(m.files) == 0 {
		return m.styles.help.Render("Working tree clean.")
	}

	start, end := visibleRange(m.fileCursor, len(m.files), height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		f := m.files[i]
		box := "[ ]"
		if f.checked {
			box = "[x]"
		}
		tag := m.styles.modifiedTag.Render("M")
		if f.change.State == repo.StateUntracked {
			tag = m.styles.untrackedTag.Render("?")
		}
		name := truncate(f.change.Path, max(0, width-7))
		line := fmt.Sprintf("%s %s %s", box, tag, name)
		if i == m.fileCursor && m.focus == paneFiles {
			line = m.styles.selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
