package repo

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 4, 21, 10, 0, 0, 0, time.UTC)

type memRepo struct {
	t    *testing.T
	repo *gogit.Repository
	wt   *gogit.Worktree
}

func newMemRepo(t *testing.T) *memRepo {
	t.Helper()
	r, err := gogit.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	w, err := r.Worktree()
	require.NoError(t, err)
	return &memRepo{t: t, repo: r, wt: w}
}

func (m *memRepo) write(name, content string) {
	m.t.Helper()
	require.NoError(m.t, util.WriteFile(m.wt.Filesystem, name, []byte(content), 0o644))
}

func (m *memRepo) remove(name string) {
	m.t.Helper()
	require.NoError(m.t, m.wt.Filesystem.Remove(name))
}

// commit writes files, stages them and commits at epoch+minutes.
func (m *memRepo) commit(msg string, minutes int, files map[string]string) plumbing.Hash {
	m.t.Helper()
	for name, content := range files {
		m.write(name, content)
		_, err := m.wt.Add(name)
		require.NoError(m.t, err)
	}
	sig := &object.Signature{Name: "Alice", Email: "alice@example.com", When: epoch.Add(time.Duration(minutes) * time.Minute)}
	h, err := m.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig, AllowEmptyCommits: len(files) == 0})
	require.NoError(m.t, err)
	return h
}

func (m *memRepo) access() *Access {
	a := New()
	a.Bind(NewGoGit(m.repo, "/mem"))
	return a
}
