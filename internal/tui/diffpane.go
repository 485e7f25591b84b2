package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gitc/internal/diff"
	"github.com/cj3636/gitc/internal/export"
)

const noDifferences = "No differences or file deleted"

// setDiff replaces the diff pane content with a unified diff. Empty text
// shows the placeholder.
func (m *Model) setDiff(title, text string) {
	m.showText(title, text, diff.Parse)
}

// setPlain shows text as file content, never as diff markup.
func (m *Model) setPlain(title, text string) {
	m.showText(title, text, diff.Plain)
}

func (m *Model) showText(title, text string, parse func(text, name string) *diff.DiffResult) {
	m.diffTitle = title
	m.diffText = text
	if text == "" {
		m.diffResult = nil
	} else {
		m.diffResult = parse(text, title)
	}
	m.renderDiffContent()
	m.diffVP.GotoTop()
}

func (m *Model) clearDiff() {
	m.setDiff("", "")
}

// renderDiffContent redraws the viewport content, e.g. after a theme change.
func (m *Model) renderDiffContent() {
	if m.diffResult == nil {
		if m.diffTitle == "" {
			m.diffVP.SetContent(m.styles.help.Render("Select a file to see its diff."))
			return
		}
		m.diffVP.SetContent(m.styles.unchanged.Render(noDifferences))
		return
	}

	pairs := m.diffResult.Pairs()
	lines := make([]string, 0, len(m.diffResult.Lines))
	for i, line := range m.diffResult.Lines {
		partner, paired := pairs[i]
		var other *diff.DiffLine
		if paired {
			other = &m.diffResult.Lines[partner]
		}
		lines = append(lines, m.renderLine(line, other))
	}
	m.diffVP.SetContent(strings.Join(lines, "\n"))
}

// renderLine renders a single diff line. When other is set, the words that
// differ between the pair are emphasised.
func (m Model) renderLine(line diff.DiffLine, other *diff.DiffLine) string {
	content := expandTabs(line.Content, m.config.TabSize)

	switch line.Type {
	case diff.Header:
		return m.styles.header.Render(content)
	case diff.Hunk:
		return m.styles.hunk.Render(content)
	}

	var parts []string
	if m.config.ShowLineNo {
		parts = append(parts,
			m.styles.lineNumber.Render(lineNo(line.LineNo1)),
			m.styles.lineNumber.Render(lineNo(line.LineNo2)),
			" ")
	}

	var symbol string
	var style, emph lipgloss.Style
	switch line.Type {
	case diff.Added:
		symbol, style, emph = "+", m.styles.added, m.styles.addedEmph
	case diff.Removed:
		symbol, style, emph = "-", m.styles.removed, m.styles.removedEmph
	default:
		symbol, style = " ", m.styles.unchanged
	}

	if other == nil {
		parts = append(parts, style.Render(symbol+" "+content))
		return strings.Join(parts, "")
	}

	var segs []diff.Segment
	partner := expandTabs(other.Content, m.config.TabSize)
	if line.Type == diff.Removed {
		segs, _ = diff.Inline(content, partner)
	} else {
		_, segs = diff.Inline(partner, content)
	}
	parts = append(parts, style.Render(symbol+" "))
	for _, seg := range segs {
		if seg.Changed {
			parts = append(parts, emph.Render(seg.Text))
		} else {
			parts = append(parts, style.Render(seg.Text))
		}
	}
	return strings.Join(parts, "")
}

func lineNo(no int) string {
	if no <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", no)
}

func (m *Model) copyDiff() {
	if m.diffText == "" {
		m.notice = "Nothing to copy"
		return
	}
	if err := export.CopyToClipboard(m.diffText, m.clipboard); err != nil {
		m.showModal(modalError, "Copy failed", err.Error())
		return
	}
	m.notice = "Diff copied to clipboard"
}

func (m *Model) exportDiff() {
	if m.diffResult == nil {
		m.notice = "Nothing to export"
		return
	}
	out, err := export.Render(m.diffResult, m.exportFormat, export.Options{
		Title:           m.diffTitle,
		ShowLineNumbers: m.config.ShowLineNo,
	})
	if err != nil {
		m.showModal(modalError, "Export failed", err.Error())
		return
	}
	path := filepath.Join(m.exportDir, exportName(m.diffTitle)+m.exportFormat.Extension())
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		m.showModal(modalError, "Export failed", err.Error())
		return
	}
	m.log.Info("diff exported", "path", path, "format", string(m.exportFormat))
	m.notice = "Exported to " + path
}

// exportName turns a diff title into a file name.
func exportName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, title)
	if name == "" {
		name = "diff"
	}
	return "gitc-" + name
}
