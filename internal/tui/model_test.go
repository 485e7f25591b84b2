package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cj3636/gitc/internal/config"
	"github.com/cj3636/gitc/internal/diff"
	"github.com/cj3636/gitc/internal/repo"
)

func TestNewModel_LoadsRepositoryState(t *testing.T) {
	p := newMockProvider()
	p.modified = []string{"b.txt"}
	tm := newTestModel(t, p)

	assert.Equal(t, "main", tm.branch)
	require.Len(t, tm.files, 2)
	assert.Equal(t, "b.txt", tm.files[0].change.Path)
	assert.Equal(t, repo.StateModified, tm.files[0].change.State)
	assert.Equal(t, "a.txt", tm.files[1].change.Path)
	assert.Equal(t, repo.StateUntracked, tm.files[1].change.State)
	assert.Empty(t, tm.checkedPaths())

	require.Len(t, tm.history, 2)
	assert.Equal(t, "second", tm.history[0].commit.Summary)
	require.Len(t, tm.graph, 2)
	assert.Equal(t, []int{1}, tm.graph[0].Parents)
	assert.False(t, tm.picker.Visible)
}

func TestNewModel_UnboundStartsInPicker(t *testing.T) {
	tm := newTestModel(t, nil)

	assert.True(t, tm.picker.Visible)
	assert.Equal(t, repo.NoBranch, tm.branch)
	assert.Empty(t, tm.files)
	assert.Contains(t, tm.View(), "Open git repository")
}

func TestModel_SelectFileShowsDiff(t *testing.T) {
	p := newMockProvider()
	tm := newTestModel(t, p)

	tm.press(t, "enter")
	assert.Equal(t, "a.txt", tm.diffTitle)
	assert.Equal(t, "hi", tm.diffText)
	assert.Contains(t, tm.diffVP.View(), "hi")
}

func TestModel_UntrackedContentIsNotParsedAsDiff(t *testing.T) {
	p := newMockProvider()
	p.contents["a.txt"] = "@@ notes\n- item one\n+ item two\n"
	tm := newTestModel(t, p)

	tm.press(t, "enter")
	require.NotNil(t, tm.diffResult)
	require.Len(t, tm.diffResult.Lines, 3)
	for i, want := range []string{"@@ notes", "- item one", "+ item two"} {
		assert.Equal(t, diff.Equal, tm.diffResult.Lines[i].Type)
		assert.Equal(t, want, tm.diffResult.Lines[i].Content)
		assert.Equal(t, i+1, tm.diffResult.Lines[i].LineNo2)
	}
	assert.False(t, tm.diffResult.HasChanges())
	assert.NotContains(t, tm.renderStatusBar(), "+1 -1")
}

func TestModel_EmptyDiffShowsPlaceholder(t *testing.T) {
	p := newMockProvider()
	p.modified = []string{"gone.txt"}
	tm := newTestModel(t, p)

	tm.press(t, "enter")
	assert.Equal(t, "gone.txt", tm.diffTitle)
	assert.Nil(t, tm.diffResult)
	assert.Contains(t, tm.diffVP.View(), noDifferences)
}

func TestModel_MovingCursorLoadsDiff(t *testing.T) {
	p := newMockProvider()
	p.modified = []string{"b.txt"}
	p.diffs["b.txt"] = "--- a/b.txt\n+++ b/b.txt\n@@ -1 +1 @@\n-one\n+two\n"
	tm := newTestModel(t, p)

	tm.press(t, "down")
	assert.Equal(t, "a.txt", tm.diffTitle)
	tm.press(t, "k")
	assert.Equal(t, "b.txt", tm.diffTitle)
	added, removed, _ := tm.diffResult.GetStats()
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
}

func TestModel_CommitWithoutCheckedFiles(t *testing.T) {
	p := newMockProvider()
	tm := newTestModel(t, p)

	tm.typeMessage(t, "add a")
	tm.press(t, "ctrl+s")

	assert.Equal(t, modalInfo, tm.modal.kind)
	assert.Equal(t, "add a", tm.message.Value())
	p.AssertNotCalled(t, "Add", mock.Anything)
	p.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestModel_CommitWithEmptyMessage(t *testing.T) {
	p := newMockProvider()
	tm := newTestModel(t, p)

	tm.press(t, " ")
	require.Equal(t, []string{"a.txt"}, tm.checkedPaths())
	tm.typeMessage(t, "   ")
	tm.press(t, "ctrl+s")

	assert.Equal(t, modalWarning, tm.modal.kind)
	assert.Equal(t, []string{"a.txt"}, tm.checkedPaths())
	p.AssertNotCalled(t, "Add", mock.Anything)
	p.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestModel_CommitUnbound(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.press(t, "esc")
	require.False(t, tm.picker.Visible)

	tm.press(t, "ctrl+s")
	assert.Equal(t, modalWarning, tm.modal.kind)
	assert.Equal(t, "No repository", tm.modal.title)
}

func TestModel_CommitSuccess(t *testing.T) {
	p := newMockProvider()
	p.On("Add", []string{"a.txt"}).Return(nil).Run(func(mock.Arguments) {
		p.untracked = nil
	})
	p.On("Commit", "add a").Return("c3c3c3c3c3", nil).Run(func(mock.Arguments) {
		p.commits = append([]repo.Commit{{ID: "c3c3c3c3c3", Summary: "add a", Parents: []string{"c2c2c2c2c2"}}}, p.commits...)
	})
	tm := newTestModel(t, p)

	tm.press(t, " ")
	tm.typeMessage(t, "add a")
	tm.press(t, "ctrl+s")

	p.AssertExpectations(t)
	assert.Equal(t, modalInfo, tm.modal.kind)
	assert.Equal(t, "Committed", tm.modal.title)
	assert.Empty(t, tm.message.Value())
	assert.Empty(t, tm.files)
	assert.Empty(t, tm.diffTitle)
	require.Len(t, tm.history, 3)
	assert.Equal(t, "add a", tm.history[0].commit.Summary)
	assert.Len(t, tm.graph, 3)

	tm.press(t, "enter")
	assert.False(t, tm.modal.visible())
}

func TestModel_CommitFailureKeepsState(t *testing.T) {
	p := newMockProvider()
	p.On("Add", []string{"a.txt"}).Return(nil)
	p.On("Commit", "add a").Return("", errors.New("index.lock exists"))
	tm := newTestModel(t, p)

	tm.press(t, " ")
	tm.typeMessage(t, "add a")
	tm.press(t, "ctrl+s")

	assert.Equal(t, modalError, tm.modal.kind)
	assert.Equal(t, []string{"index.lock exists"}, tm.modal.body)
	assert.Equal(t, "add a", tm.message.Value())
	assert.Equal(t, []string{"a.txt"}, tm.checkedPaths())
	assert.Len(t, tm.history, 2)
}

func TestModel_StageFailureSkipsCommit(t *testing.T) {
	p := newMockProvider()
	p.On("Add", []string{"a.txt"}).Return(errors.New("permission denied"))
	tm := newTestModel(t, p)

	tm.press(t, " ")
	tm.typeMessage(t, "add a")
	tm.press(t, "ctrl+s")

	assert.Equal(t, modalError, tm.modal.kind)
	assert.Contains(t, tm.modal.body, "permission denied")
	p.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestModel_HistoryLoadsFilesLazily(t *testing.T) {
	p := newMockProvider()
	p.On("CommitFiles", "c2c2c2c2c2").Return([]string{"b.txt", "c.bin"}, nil).Once()
	tm := newTestModel(t, p)
	tm.focusPane(t, paneHistory)

	p.AssertNotCalled(t, "CommitFiles", mock.Anything)
	tm.press(t, "enter")
	assert.True(t, tm.history[0].expanded)
	assert.Len(t, tm.historyRows(), 4)

	tm.press(t, "enter")
	assert.False(t, tm.history[0].expanded)
	assert.Len(t, tm.historyRows(), 2)

	tm.press(t, "enter")
	p.AssertNumberOfCalls(t, "CommitFiles", 1)

	tm.press(t, "down", "enter")
	assert.Equal(t, "c2c2c2c:b.txt", tm.diffTitle)
	assert.Contains(t, tm.diffText, "+two")

	tm.press(t, "down", "enter")
	assert.Equal(t, repo.NoDiffData, tm.diffText)
}

func TestModel_OpenFailureLeavesUnbound(t *testing.T) {
	opener := func(path string) (repo.Provider, error) {
		return nil, fmt.Errorf("%w: %s", repo.ErrNotARepository, path)
	}
	a := repo.New(repo.WithOpener(opener))
	a.Bind(newMockProvider())
	tm := newTestModelWith(t, a, "/nowhere")

	assert.False(t, a.Bound())
	assert.Equal(t, modalError, tm.modal.kind)
	assert.Contains(t, strings.Join(tm.modal.body, "\n"), "/nowhere")
	assert.Equal(t, repo.NoBranch, tm.branch)
	assert.Empty(t, tm.files)
	assert.Empty(t, tm.history)
	assert.Empty(t, tm.graph)
}

func TestModel_PickerOpensRepository(t *testing.T) {
	p := newMockProvider()
	var opened string
	a := repo.New(repo.WithOpener(func(path string) (repo.Provider, error) {
		opened = path
		return p, nil
	}))
	tm := newTestModelWith(t, a, "")
	require.True(t, tm.picker.Visible)
	start := tm.picker.WorkingDir

	tm.press(t, "enter")

	assert.Equal(t, start, opened)
	assert.False(t, tm.picker.Visible)
	assert.True(t, a.Bound())
	assert.Equal(t, "main", tm.branch)
	assert.Len(t, tm.files, 1)
}

func TestModel_RefreshClearsMessage(t *testing.T) {
	p := newMockProvider()
	tm := newTestModel(t, p)
	tm.typeMessage(t, "draft")
	p.untracked = append(p.untracked, "z.txt")

	tm.press(t, "ctrl+r")
	assert.Empty(t, tm.message.Value())
	assert.Len(t, tm.files, 2)
	assert.Equal(t, "Refreshed", tm.notice)
}

func TestModel_ToggleTheme(t *testing.T) {
	tm := newTestModel(t, newMockProvider())
	require.Equal(t, config.PresetDark, tm.config.ThemePreset)

	tm.press(t, "ctrl+t")
	assert.Equal(t, config.PresetLight, tm.config.ThemePreset)
	assert.Equal(t, "Theme: light (light)", tm.notice)
	assert.Equal(t, config.LightTheme().AddedFg, tm.config.Theme.AddedFg)

	tm.press(t, "ctrl+t")
	assert.Equal(t, config.PresetDark, tm.config.ThemePreset)
}

func TestModel_MenuShowsStatus(t *testing.T) {
	tm := newTestModel(t, newMockProvider())

	tm.press(t, "f10")
	require.True(t, tm.menu.open)
	assert.Contains(t, tm.View(), "Show git status")

	for tm.menu.items[tm.menu.cursor].label != "Show git status" {
		tm.press(t, "down")
	}
	tm.press(t, "enter")

	assert.False(t, tm.menu.open)
	assert.Equal(t, modalStatus, tm.modal.kind)
	assert.Equal(t, []string{"On branch main", "Untracked files:", "\ta.txt"}, tm.modal.body)
}

func TestModel_MenuExitQuits(t *testing.T) {
	tm := newTestModel(t, newMockProvider())
	tm.press(t, "f10")
	for tm.menu.items[tm.menu.cursor].label != "Exit" {
		tm.press(t, "down")
	}
	cmd := tm.press(t, "enter")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitKeyIgnoredWhileTyping(t *testing.T) {
	kb := config.DefaultKeybindings()
	kb["quit"] = []string{"q"}
	cfg := config.DefaultConfig()
	cfg.Keybindings = kb

	a := repo.New()
	a.Bind(newMockProvider())
	tm := &testModel{Model: NewModel(a, cfg, Options{StartDir: t.TempDir()})}

	tm.typeMessage(t, "q")
	assert.Equal(t, "q", tm.message.Value())

	tm.press(t, "shift+tab")
	cmd := tm.press(t, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_CopyDiff(t *testing.T) {
	tm := newTestModel(t, newMockProvider())

	tm.press(t, "y")
	assert.Equal(t, "Nothing to copy", tm.notice)
	assert.Zero(t, tm.clipboard.Len())

	tm.press(t, "enter", "y")
	assert.Equal(t, "Diff copied to clipboard", tm.notice)
	assert.Contains(t, tm.clipboard.String(), "]52;c;")
}

func TestModel_ExportDiff(t *testing.T) {
	tm := newTestModel(t, newMockProvider())

	tm.press(t, "enter", "e")

	path := filepath.Join(tm.exportDir, "gitc-a.txt.md")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hi")
	assert.Equal(t, "Exported to "+path, tm.notice)
}

func TestModel_ViewLayout(t *testing.T) {
	tm := newTestModel(t, newMockProvider())
	next, _ := tm.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	tm.Model = next.(Model)

	view := tm.View()
	for _, want := range []string{"Changes", "Graph", "History", "Diff", "Commit message", "Branch: main", "a.txt", "second"} {
		assert.Contains(t, view, want)
	}
	assert.LessOrEqual(t, strings.Count(view, "\n")+1, 40)
}
