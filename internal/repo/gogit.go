package repo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/cj3636/gitc/internal/diff"
)

const (
	defaultAuthorName  = "gitc"
	defaultAuthorEmail = "gitc@localhost"
)

// GoGit implements Provider with go-git.
type GoGit struct {
	repo   *gogit.Repository
	root   string
	engine *diff.Engine
	now    func() time.Time
}

var _ Provider = (*GoGit)(nil)

// OpenGoGit opens the repository whose working tree is path. Parent
// directories are not searched.
func OpenGoGit(path string) (*GoGit, error) {
	r, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotARepository, path, err)
	}
	return NewGoGit(r, path), nil
}

// NewGoGit wraps an already opened repository. Any storer and worktree
// filesystem may back it.
func NewGoGit(r *gogit.Repository, root string) *GoGit {
	return &GoGit{repo: r, root: root, engine: diff.NewEngine(), now: time.Now}
}

func (g *GoGit) Root() string { return g.root }

// Close releases the object storage when it holds open files.
func (g *GoGit) Close() error {
	if c, ok := g.repo.Storer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (g *GoGit) Branch() (string, error) {
	ref, err := g.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", err
	}
	if ref.Type() == plumbing.SymbolicReference {
		// Unborn branches have no commit yet but still name HEAD's target.
		return ref.Target().Short(), nil
	}
	return "HEAD detached at " + shortHash(ref.Hash()), nil
}

func (g *GoGit) status() (gogit.Status, error) {
	w, err := g.repo.Worktree()
	if err != nil {
		return nil, err
	}
	return w.Status()
}

func (g *GoGit) StatusLines() ([]string, error) {
	st, err := g.status()
	if err != nil {
		return nil, err
	}

	var lines []string
	branch, err := g.Branch()
	switch {
	case err != nil:
		lines = append(lines, "HEAD unknown")
	case strings.HasPrefix(branch, "HEAD detached"):
		lines = append(lines, branch)
	default:
		lines = append(lines, "On branch "+branch)
	}
	if _, err := g.repo.Head(); errors.Is(err, plumbing.ErrReferenceNotFound) {
		lines = append(lines, "", "No commits yet")
	}

	var staged, unstaged, untracked []string
	for _, path := range sortedPaths(st) {
		fs := st[path]
		if fs.Worktree == gogit.Untracked {
			untracked = append(untracked, "\t"+path)
			continue
		}
		if fs.Staging != gogit.Unmodified {
			staged = append(staged, fmt.Sprintf("\t%-12s%s", statusLabel(fs.Staging)+":", path))
		}
		if fs.Worktree != gogit.Unmodified {
			unstaged = append(unstaged, fmt.Sprintf("\t%-12s%s", statusLabel(fs.Worktree)+":", path))
		}
	}

	if len(staged)+len(unstaged)+len(untracked) == 0 {
		return append(lines, "", "nothing to commit, working tree clean"), nil
	}
	if len(staged) > 0 {
		lines = append(lines, "", "Changes to be committed:")
		lines = append(lines, staged...)
	}
	if len(unstaged) > 0 {
		lines = append(lines, "", "Changes not staged for commit:")
		lines = append(lines, unstaged...)
	}
	if len(untracked) > 0 {
		lines = append(lines, "", "Untracked files:")
		lines = append(lines, untracked...)
	}
	return lines, nil
}

func statusLabel(code gogit.StatusCode) string {
	switch code {
	case gogit.Added:
		return "new file"
	case gogit.Deleted:
		return "deleted"
	case gogit.Renamed:
		return "renamed"
	case gogit.Copied:
		return "copied"
	case gogit.UpdatedButUnmerged:
		return "unmerged"
	default:
		return "modified"
	}
}

func (g *GoGit) Modified() ([]string, error) {
	st, err := g.status()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, path := range sortedPaths(st) {
		code := st[path].Worktree
		if code != gogit.Unmodified && code != gogit.Untracked {
			out = append(out, path)
		}
	}
	return out, nil
}

func (g *GoGit) Untracked() ([]string, error) {
	st, err := g.status()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, path := range sortedPaths(st) {
		if st[path].Worktree == gogit.Untracked {
			out = append(out, path)
		}
	}
	return out, nil
}

func (g *GoGit) ReadWorktreeFile(path string) ([]byte, error) {
	w, err := g.repo.Worktree()
	if err != nil {
		return nil, err
	}
	return util.ReadFile(w.Filesystem, path)
}

func (g *GoGit) WorktreeDiff(path string) (string, error) {
	before, err := g.indexContent(path)
	if err != nil {
		return "", err
	}
	after, err := g.ReadWorktreeFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return g.engine.Unified(before, string(after), "a/"+path, "b/"+path)
}

// indexContent returns the staged blob for path, or "" when path is not in
// the index.
func (g *GoGit) indexContent(path string) (string, error) {
	idx, err := g.repo.Storer.Index()
	if err != nil {
		return "", err
	}
	entry, err := idx.Entry(path)
	if errors.Is(err, index.ErrEntryNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	blob, err := g.repo.BlobObject(entry.Hash)
	if err != nil {
		return "", err
	}
	r, err := blob.Reader()
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (g *GoGit) Add(paths []string) error {
	w, err := g.repo.Worktree()
	if err != nil {
		return err
	}
	st, err := w.Status()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if fs, ok := st[path]; ok && fs.Worktree == gogit.Deleted {
			if _, err := w.Remove(path); err != nil {
				return fmt.Errorf("stage %s: %w", path, err)
			}
			continue
		}
		if _, err := w.Add(path); err != nil {
			return fmt.Errorf("stage %s: %w", path, err)
		}
	}
	return nil
}

func (g *GoGit) Commit(message string) (string, error) {
	w, err := g.repo.Worktree()
	if err != nil {
		return "", err
	}
	hash, err := w.Commit(message, &gogit.CommitOptions{Author: g.signature()})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

// signature reads user.name and user.email from the merged git config and
// falls back to a fixed identity.
func (g *GoGit) signature() *object.Signature {
	sig := &object.Signature{Name: defaultAuthorName, Email: defaultAuthorEmail, When: g.now()}
	cfg, err := g.repo.ConfigScoped(gitconfig.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}

func (g *GoGit) Log(limit int) ([]Commit, error) {
	if limit <= 0 {
		return nil, nil
	}
	head, err := g.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	iter, err := g.repo.Log(&gogit.LogOptions{From: head.Hash(), Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		out = append(out, toCommit(c))
		if len(out) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toCommit(c *object.Commit) Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return Commit{
		ID:      c.Hash.String(),
		Summary: summary(c.Message),
		Author:  c.Author.Name,
		When:    c.Committer.When,
		Parents: parents,
	}
}

func summary(message string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(line)
}

func (g *GoGit) commit(id string) (*object.Commit, error) {
	hash, err := g.repo.ResolveRevision(plumbing.Revision(id))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", id, err)
	}
	return g.repo.CommitObject(*hash)
}

func (g *GoGit) CommitFiles(id string) ([]string, error) {
	c, err := g.commit(id)
	if err != nil {
		return nil, err
	}
	stats, err := c.Stats()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(stats))
	for _, s := range stats {
		files = append(files, s.Name)
	}
	return files, nil
}

func (g *GoGit) CommitFileDiff(id, path string) (string, error) {
	c, err := g.commit(id)
	if err != nil {
		return "", err
	}
	if c.NumParents() == 0 {
		return "", ErrDiffUnavailable
	}
	parent, err := c.Parent(0)
	if err != nil {
		return "", err
	}
	patch, err := parent.Patch(c)
	if err != nil {
		return "", err
	}

	for _, fp := range patch.FilePatches() {
		from, to := fp.Files()
		if !touches(from, path) && !touches(to, path) {
			continue
		}
		if from == nil || to == nil || fp.IsBinary() {
			return "", ErrDiffUnavailable
		}
		var buf bytes.Buffer
		enc := fdiff.NewUnifiedEncoder(&buf, fdiff.DefaultContextLines)
		if err := enc.Encode(filePatch{fp}); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	return "", ErrDiffUnavailable
}

func touches(f fdiff.File, path string) bool {
	return f != nil && f.Path() == path
}

// filePatch narrows a commit patch down to a single file.
type filePatch struct{ fp fdiff.FilePatch }

func (p filePatch) FilePatches() []fdiff.FilePatch { return []fdiff.FilePatch{p.fp} }
func (p filePatch) Message() string                { return "" }

func sortedPaths(st gogit.Status) []string {
	paths := make([]string, 0, len(st))
	for path := range st {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func shortHash(h plumbing.Hash) string {
	return h.String()[:7]
}
