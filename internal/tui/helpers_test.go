package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/gitc/internal/config"
	"github.com/cj3636/gitc/internal/repo"
)

// mockProvider answers queries from its fields and records mutations and
// commit-file lookups through testify's mock.
type mockProvider struct {
	mock.Mock

	root      string
	branch    string
	status    []string
	modified  []string
	untracked []string
	contents  map[string]string
	diffs     map[string]string
	commits   []repo.Commit
	patches   map[string]string
}

func newMockProvider() *mockProvider {
	when := time.Date(2024, 4, 21, 10, 0, 0, 0, time.UTC)
	return &mockProvider{
		root:      "/work",
		branch:    "main",
		status:    []string{"On branch main", "Untracked files:", "\ta.txt"},
		untracked: []string{"a.txt"},
		contents:  map[string]string{"a.txt": "hi"},
		diffs:     map[string]string{},
		commits: []repo.Commit{
			{ID: "c2c2c2c2c2", Summary: "second", Author: "Ann", When: when.Add(time.Minute), Parents: []string{"c1c1c1c1c1"}},
			{ID: "c1c1c1c1c1", Summary: "first", Author: "Ann", When: when},
		},
		patches: map[string]string{
			"c2c2c2c2c2:b.txt": "diff --git a/b.txt b/b.txt\n--- a/b.txt\n+++ b/b.txt\n@@ -1 +1 @@\n-one\n+two\n",
		},
	}
}

func (p *mockProvider) Root() string                   { return p.root }
func (p *mockProvider) Branch() (string, error)        { return p.branch, nil }
func (p *mockProvider) StatusLines() ([]string, error) { return p.status, nil }
func (p *mockProvider) Modified() ([]string, error)    { return p.modified, nil }
func (p *mockProvider) Untracked() ([]string, error)   { return p.untracked, nil }

func (p *mockProvider) ReadWorktreeFile(path string) ([]byte, error) {
	return []byte(p.contents[path]), nil
}

func (p *mockProvider) WorktreeDiff(path string) (string, error) {
	return p.diffs[path], nil
}

func (p *mockProvider) Add(paths []string) error {
	return p.Called(paths).Error(0)
}

func (p *mockProvider) Commit(message string) (string, error) {
	args := p.Called(message)
	return args.String(0), args.Error(1)
}

func (p *mockProvider) Log(limit int) ([]repo.Commit, error) {
	if len(p.commits) > limit {
		return p.commits[:limit], nil
	}
	return p.commits, nil
}

func (p *mockProvider) CommitFiles(id string) ([]string, error) {
	args := p.Called(id)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

func (p *mockProvider) CommitFileDiff(id, path string) (string, error) {
	patch, ok := p.patches[id+":"+path]
	if !ok {
		return "", repo.ErrDiffUnavailable
	}
	return patch, nil
}

type testModel struct {
	Model
	clipboard *bytes.Buffer
	exportDir string
}

func newTestModel(t *testing.T, p repo.Provider) *testModel {
	t.Helper()
	a := repo.New()
	if p != nil {
		a.Bind(p)
	}
	return newTestModelWith(t, a, "")
}

func newTestModelWith(t *testing.T, a *repo.Access, path string) *testModel {
	t.Helper()
	clip := &bytes.Buffer{}
	dir := t.TempDir()
	m := NewModel(a, config.DefaultConfig(), Options{
		Path:      path,
		StartDir:  t.TempDir(),
		ExportDir: dir,
		Clipboard: clip,
	})
	return &testModel{Model: m, clipboard: clip, exportDir: dir}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "f10":
		return tea.KeyMsg{Type: tea.KeyF10}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys through Update and returns the last command.
func (tm *testModel) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = tm.Update(keyMsg(k))
		m, ok := next.(Model)
		require.True(t, ok)
		tm.Model = m
	}
	return cmd
}

func (tm *testModel) focusPane(t *testing.T, p pane) {
	t.Helper()
	for i := 0; tm.focus != p && i < int(paneCount); i++ {
		tm.press(t, "tab")
	}
	require.Equal(t, p, tm.focus)
}

func (tm *testModel) typeMessage(t *testing.T, text string) {
	t.Helper()
	tm.focusPane(t, paneMessage)
	tm.press(t, text)
}
