package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gitc/internal/config"
	"github.com/cj3636/gitc/internal/diff"
	"github.com/cj3636/gitc/internal/export"
	"github.com/cj3636/gitc/internal/logging"
	"github.com/cj3636/gitc/internal/repo"
)

type pane int

const (
	paneFiles pane = iota
	paneGraph
	paneHistory
	paneDiff
	paneMessage
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneFiles:
		return "files"
	case paneGraph:
		return "graph"
	case paneHistory:
		return "history"
	case paneDiff:
		return "diff"
	case paneMessage:
		return "message"
	default:
		return "?"
	}
}

// Options configures a Model.
type Options struct {
	// Path is opened on start. When empty and the Access is unbound, the
	// directory picker is shown instead.
	Path string
	// StartDir is where the directory picker starts browsing.
	StartDir     string
	ExportDir    string
	ExportFormat export.Format
	// Clipboard receives OSC52 sequences; stdout when nil.
	Clipboard io.Writer
	Logger    logging.Logger
}

// Model represents the application state
type Model struct {
	access *repo.Access
	config *config.Config
	styles *Styles
	keys   keyMap
	help   help.Model
	log    logging.Logger

	focus  pane
	branch string

	files      []fileItem
	fileCursor int

	history       []historyEntry
	historyCursor int

	graph   []repo.GraphNode
	graphVP viewport.Model

	diffVP     viewport.Model
	diffTitle  string
	diffText   string
	diffResult *diff.DiffResult

	message textarea.Model
	picker  DirPicker
	modal   modal
	menu    menuState
	notice  string

	clipboard    io.Writer
	exportDir    string
	exportFormat export.Format

	width  int
	height int
}

// NewModel creates a new TUI model on top of access.
func NewModel(access *repo.Access, cfg *config.Config, opts Options) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	startDir := opts.StartDir
	if startDir == "" {
		startDir, _ = os.Getwd()
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}
	format := opts.ExportFormat
	if format == "" {
		format = export.FormatMarkdown
	}

	ta := textarea.New()
	ta.Placeholder = "Commit message"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0

	m := Model{
		access:       access,
		config:       cfg,
		styles:       createStyles(cfg.Theme),
		keys:         newKeyMap(cfg.Keybindings),
		help:         help.New(),
		log:          logger,
		branch:       repo.NoBranch,
		graphVP:      viewport.New(0, 0),
		diffVP:       viewport.New(0, 0),
		message:      ta,
		picker:       newDirPicker(startDir),
		menu:         menuState{items: menuItems()},
		clipboard:    opts.Clipboard,
		exportDir:    exportDir,
		exportFormat: format,
		width:        100,
		height:       30,
	}
	m.resize()

	switch {
	case opts.Path != "":
		m.openRepo(opts.Path)
	case access.Bound():
		m.reload()
	default:
		m.reload()
		m.picker.open()
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.picker.Visible {
		return textinput.Blink
	}
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	if m.picker.Visible {
		m.picker.Input, cmd = m.picker.Input.Update(msg)
	} else if m.focus == paneMessage {
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd
}

// typing reports whether msg is text meant for an input field.
func (m *Model) typing(msg tea.KeyMsg) bool {
	if !m.picker.Visible && m.focus != paneMessage {
		return false
	}
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) && !m.typing(msg) {
		return tea.Quit
	}

	switch {
	case m.modal.visible():
		return m.handleModalKey(msg)
	case m.menu.open:
		return m.handleMenuKey(msg)
	case m.picker.Visible:
		path, done, cmd := m.picker.handleKey(msg)
		if done {
			m.openRepo(path)
		}
		return cmd
	}

	if m.typing(msg) {
		var cmd tea.Cmd
		m.message, cmd = m.message.Update(msg)
		return cmd
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Open):
		return m.picker.open()
	case key.Matches(msg, m.keys.Refresh):
		m.refresh()
		return nil
	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return nil
	case key.Matches(msg, m.keys.About):
		m.showAbout()
		return nil
	case key.Matches(msg, m.keys.Menu):
		m.menu.open = true
		m.menu.cursor = 0
		return nil
	case key.Matches(msg, m.keys.Status):
		m.showStatus()
		return nil
	case key.Matches(msg, m.keys.Help):
		m.showKeys()
		return nil
	case key.Matches(msg, m.keys.Commit):
		m.commitChanges()
		return nil
	case key.Matches(msg, m.keys.NextPane):
		return m.setFocus((m.focus + 1) % paneCount)
	case key.Matches(msg, m.keys.PrevPane):
		return m.setFocus((m.focus + paneCount - 1) % paneCount)
	}

	switch m.focus {
	case paneFiles:
		m.handleFilesKey(msg)
	case paneGraph:
		handleViewportKey(&m.graphVP, m.keys, msg, max(1, m.config.GraphSpacing))
	case paneHistory:
		m.handleHistoryKey(msg)
	case paneDiff:
		switch {
		case key.Matches(msg, m.keys.CopyDiff):
			m.copyDiff()
		case key.Matches(msg, m.keys.ExportDiff):
			m.exportDiff()
		default:
			handleViewportKey(&m.diffVP, m.keys, msg, 1)
		}
	case paneMessage:
		var cmd tea.Cmd
		m.message, cmd = m.message.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) handleFilesKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFileCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFileCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveFileCursor(-len(m.files))
	case key.Matches(msg, m.keys.Bottom):
		m.moveFileCursor(len(m.files))
	case key.Matches(msg, m.keys.ToggleCheck):
		m.toggleChecked()
	case key.Matches(msg, m.keys.Select):
		m.selectFile()
	case key.Matches(msg, m.keys.CopyDiff):
		m.copyDiff()
	case key.Matches(msg, m.keys.ExportDiff):
		m.exportDiff()
	}
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveHistoryCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveHistoryCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.historyCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.moveHistoryCursor(len(m.historyRows()))
	case key.Matches(msg, m.keys.Select):
		m.activateHistoryRow()
	}
}

func handleViewportKey(vp *viewport.Model, keys keyMap, msg tea.KeyMsg, step int) {
	switch {
	case key.Matches(msg, keys.Up):
		vp.ScrollUp(step)
	case key.Matches(msg, keys.Down):
		vp.ScrollDown(step)
	case key.Matches(msg, keys.PageUp):
		vp.PageUp()
	case key.Matches(msg, keys.PageDown):
		vp.PageDown()
	case key.Matches(msg, keys.Top):
		vp.GotoTop()
	case key.Matches(msg, keys.Bottom):
		vp.GotoBottom()
	}
}

func (m *Model) setFocus(p pane) tea.Cmd {
	m.focus = p
	if p == paneMessage {
		return m.message.Focus()
	}
	m.message.Blur()
	return nil
}

// reload re-reads everything shown from the repository: branch, changed
// files (all unchecked), history and graph. The diff pane is cleared.
func (m *Model) reload() {
	m.branch = m.access.CurrentBranch()
	m.loadFiles()
	m.clearDiff()
	m.loadHistory()
	m.graph = m.access.CommitGraph(m.config.GraphLimit)
	m.graphVP.SetContent(m.renderGraph(m.graphVP.Width))
	m.graphVP.GotoTop()
}

func (m *Model) refresh() {
	if !m.access.Bound() {
		m.notice = "No repository open"
		return
	}
	m.message.Reset()
	m.reload()
	m.notice = "Refreshed"
}

func (m *Model) openRepo(path string) {
	if err := m.access.Open(path); err != nil {
		m.reload()
		m.showModal(modalError, "Cannot open repository", err.Error())
		return
	}
	m.picker.WorkingDir = m.access.Root()
	m.reload()
	m.log.Info("repository opened", "root", m.access.Root(), "branch", m.branch)
	m.notice = "Opened " + m.access.Root()
}

// commitChanges stages the checked files and commits them. Every check runs
// before the repository is touched, so a rejected commit changes nothing.
func (m *Model) commitChanges() {
	if !m.access.Bound() {
		m.showModal(modalWarning, "No repository", "Open a repository before committing.")
		return
	}
	message := strings.TrimSpace(m.message.Value())
	if message == "" {
		m.showModal(modalWarning, "Empty message", "Please enter a commit message.")
		return
	}
	paths := m.checkedPaths()
	if len(paths) == 0 {
		m.showModal(modalInfo, "Nothing to commit", "Check at least one file to commit.")
		return
	}

	if err := m.access.Stage(paths); err != nil {
		m.showModal(modalError, "Commit failed", err.Error())
		return
	}
	if err := m.access.Commit(message); err != nil {
		m.showModal(modalError, "Commit failed", err.Error())
		return
	}

	m.log.Info("committed", "files", len(paths))
	m.message.Reset()
	m.reload()
	m.showModal(modalInfo, "Committed", fmt.Sprintf("Committed %d file(s).", len(paths)))
}

func (m *Model) toggleTheme() {
	m.config.ToggleAppearance()
	m.styles = createStyles(m.config.Theme)
	m.renderDiffContent()
	m.graphVP.SetContent(m.renderGraph(m.graphVP.Width))
	mode := "light"
	if m.config.IsDark() {
		mode = "dark"
	}
	m.notice = "Theme: " + string(m.config.ThemePreset) + " (" + mode + ")"
}

// layout holds the outer size of every box.
type layout struct {
	leftW, rightW   int
	filesH, graphH  int
	historyH, diffH int
	messageH, bodyH int
}

const messageRows = 3

func (m Model) layout() layout {
	var l layout
	l.bodyH = max(12, m.height-3)
	l.leftW = max(20, m.width*2/5)
	l.rightW = max(20, m.width-l.leftW)
	l.filesH = l.bodyH / 2
	l.graphH = l.bodyH - l.filesH
	l.messageH = messageRows + 3
	l.historyH = (l.bodyH - l.messageH) / 2
	l.diffH = l.bodyH - l.messageH - l.historyH
	return l
}

// inner returns the content size of a box of the given outer size: border
// and title row excluded.
func inner(w, h int) (int, int) {
	return max(1, w-2), max(1, h-3)
}

func (m *Model) resize() {
	l := m.layout()
	m.graphVP.Width, m.graphVP.Height = inner(l.leftW, l.graphH)
	m.diffVP.Width, m.diffVP.Height = inner(l.rightW, l.diffH)
	w, _ := inner(l.rightW, l.messageH)
	m.message.SetWidth(w)
	m.message.SetHeight(messageRows)
	m.help.Width = m.width
	m.graphVP.SetContent(m.renderGraph(m.graphVP.Width))
	m.renderDiffContent()
}

// View renders the UI
func (m Model) View() string {
	switch {
	case m.modal.visible():
		return m.overlay(m.renderModal())
	case m.menu.open:
		return m.overlay(m.renderMenu())
	case m.picker.Visible:
		return m.overlay(m.renderPicker())
	}

	l := m.layout()

	filesW, filesH := inner(l.leftW, l.filesH)
	historyW, historyH := inner(l.rightW, l.historyH)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderBox("Changes", m.renderFiles(filesW, filesH), paneFiles, l.leftW, l.filesH),
		m.renderBox("Graph", m.graphVP.View(), paneGraph, l.leftW, l.graphH),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderBox("History", m.renderHistory(historyW, historyH), paneHistory, l.rightW, l.historyH),
		m.renderBox(m.diffPaneTitle(), m.diffVP.View(), paneDiff, l.rightW, l.diffH),
		m.renderBox("Commit message", m.message.View(), paneMessage, l.rightW, l.messageH),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderMenuBar(),
		m.renderBranch(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderStatusBar(),
	)
}

func (m Model) overlay(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderBox draws a bordered pane of outer size w x h. Body lines beyond
// the box are dropped.
func (m Model) renderBox(title, body string, p pane, w, h int) string {
	style := m.styles.box
	if m.focus == p {
		style = m.styles.boxFocused
	}
	innerW, innerH := inner(w, h)

	lines := []string{m.styles.paneTitle.Render(truncate(title, innerW))}
	for _, line := range strings.Split(body, "\n") {
		if len(lines) > innerH {
			break
		}
		lines = append(lines, fitLine(line, innerW))
	}
	return style.Width(innerW).Height(innerH + 1).Render(strings.Join(lines, "\n"))
}

func (m Model) diffPaneTitle() string {
	if m.diffTitle == "" {
		return "Diff"
	}
	return "Diff: " + m.diffTitle
}

func (m Model) renderBranch() string {
	root := m.access.Root()
	if root == "" {
		root = "(none)"
	}
	line := fmt.Sprintf(" Branch: %s   Repository: %s", m.branch, root)
	return m.styles.header.Render(truncate(line, m.width))
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	var parts []string
	if m.diffResult != nil && m.diffResult.HasChanges() {
		added, removed, _ := m.diffResult.GetStats()
		parts = append(parts, fmt.Sprintf("+%d -%d", added, removed))
	}
	parts = append(parts, "Pane: "+m.focus.String())
	if m.focus == paneGraph {
		if tip := m.graphTooltip(); tip != "" {
			parts = append(parts, tip)
		}
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	parts = append(parts, strings.Join(hints, " "))

	status := strings.Join(parts, " | ")
	return m.styles.statusBar.Width(m.width).Render(truncate(status, max(0, m.width-2)))
}
