package tui

import (
	"strings"

	"github.com/cj3636/gitc/internal/repo"
)

// historyEntry is a commit row in the history tree. Its files are fetched
// the first time the row is expanded.
type historyEntry struct {
	commit   repo.Commit
	expanded bool
	loaded   bool
	files    []string
}

// historyRow addresses a visible row: a commit, or one of its files when
// file >= 0.
type historyRow struct {
	entry int
	file  int
}

func (m *Model) loadHistory() {
	commits := m.access.History(m.config.HistoryLimit)
	m.history = make([]historyEntry, 0, len(commits))
	for _, c := range commits {
		m.history = append(m.history, historyEntry{commit: c})
	}
	m.historyCursor = 0
}

// historyRows flattens the tree into the rows currently visible.
func (m Model) historyRows() []historyRow {
	rows := make([]historyRow, 0, len(m.history))
	for i, e := range m.history {
		rows = append(rows, historyRow{entry: i, file: -1})
		if !e.expanded {
			continue
		}
		for j := range e.files {
			rows = append(rows, historyRow{entry: i, file: j})
		}
	}
	return rows
}

func (m *Model) moveHistoryCursor(delta int) {
	rows := m.historyRows()
	if len(rows) == 0 {
		return
	}
	m.historyCursor = max(0, min(len(rows)-1, m.historyCursor+delta))
}

// activateHistoryRow expands or collapses a commit row, or shows the diff of
// a file row against the commit's first parent.
func (m *Model) activateHistoryRow() {
	rows := m.historyRows()
	if m.historyCursor >= len(rows) {
		return
	}
	row := rows[m.historyCursor]
	entry := &m.history[row.entry]

	if row.file < 0 {
		if !entry.loaded {
			entry.files = m.access.CommitFiles(entry.commit.ID)
			entry.loaded = true
		}
		entry.expanded = !entry.expanded
		return
	}

	path := entry.files[row.file]
	title := entry.commit.ShortID() + ":" + path
	m.setDiff(title, m.access.CommitFileDiff(entry.commit.ID, path))
}

func (m Model) renderHistory(width, height int) string {
	if len(m.history) == 0 {
		return m.styles.help.Render("No commits.")
	}

	rows := m.historyRows()
	start, end := visibleRange(m.historyCursor, len(rows), height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := rows[i]
		e := m.history[row.entry]

		var line string
		if row.file < 0 {
			arrow := "▸"
			if e.expanded {
				arrow = "▾"
			}
			meta := e.commit.ShortID() + " " + e.commit.When.Format(repo.TimeLayout) + " " + e.commit.Author + " "
			line = arrow + " " + m.styles.hunk.Render(meta) +
				truncate(e.commit.Summary, max(0, width-len(meta)-2))
		} else {
			line = "    " + truncate(e.files[row.file], max(0, width-4))
		}
		line = fitLine(line, width)
		if i == m.historyCursor && m.focus == paneHistory {
			line = m.styles.selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
