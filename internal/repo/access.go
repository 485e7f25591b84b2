package repo

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/cj3636/gitc/internal/logging"
)

const (
	DefaultHistoryLimit = 20
	DefaultGraphLimit   = 30
)

// Access is the single point of contact with the version-control provider.
// Queries never fail: without a bound repository, or when the provider
// errors, they return empty results or placeholder text. Stage and Commit
// report provider errors to the caller.
type Access struct {
	provider Provider
	opener   func(path string) (Provider, error)
	palette  []string
	log      logging.Logger
}

// Option configures an Access.
type Option func(*Access)

// WithLogger sets the logger used for swallowed query errors.
func WithLogger(l logging.Logger) Option {
	return func(a *Access) {
		if l != nil {
			a.log = l
		}
	}
}

// WithOpener replaces how Open turns a path into a Provider.
func WithOpener(fn func(path string) (Provider, error)) Option {
	return func(a *Access) { a.opener = fn }
}

// WithPalette sets the colours cycled over commit-graph nodes. An empty
// palette keeps DefaultPalette.
func WithPalette(palette []string) Option {
	return func(a *Access) {
		if len(palette) > 0 {
			a.palette = palette
		}
	}
}

// New returns an unbound Access.
func New(opts ...Option) *Access {
	a := &Access{
		opener:  openGoGit,
		palette: DefaultPalette,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func openGoGit(path string) (Provider, error) {
	g, err := OpenGoGit(path)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Open binds the repository at path, replacing any previous one. On failure
// the Access is left unbound.
func (a *Access) Open(path string) error {
	a.Close()
	p, err := a.opener(path)
	if err != nil {
		a.log.Warn("open repository", "path", path, "err", err)
		return err
	}
	a.provider = p
	a.log.Info("repository opened", "root", p.Root())
	return nil
}

// Bind makes p the current provider, releasing the previous one.
func (a *Access) Bind(p Provider) {
	a.Close()
	a.provider = p
}

// Close releases the current provider. The Access becomes unbound.
func (a *Access) Close() {
	if a.provider == nil {
		return
	}
	if c, ok := a.provider.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn("close repository", "root", a.provider.Root(), "err", err)
		}
	}
	a.provider = nil
}

// Bound reports whether a repository is open.
func (a *Access) Bound() bool { return a.provider != nil }

// Root returns the working tree of the bound repository, or "".
func (a *Access) Root() string {
	if a.provider == nil {
		return ""
	}
	return a.provider.Root()
}

// CurrentBranch returns the active branch name, or NoBranch when unknown.
func (a *Access) CurrentBranch() string {
	if a.provider == nil {
		return NoBranch
	}
	name, err := a.provider.Branch()
	if err != nil || name == "" {
		a.swallow("branch", err)
		return NoBranch
	}
	return name
}

// Status returns git status style lines for display.
func (a *Access) Status() []string {
	if a.provider == nil {
		return nil
	}
	lines, err := a.provider.StatusLines()
	if err != nil {
		a.swallow("status", err)
		return nil
	}
	return lines
}

// ChangedFiles lists modified tracked files followed by untracked files.
func (a *Access) ChangedFiles() []FileChange {
	if a.provider == nil {
		return nil
	}
	var out []FileChange

	modified, err := a.provider.Modified()
	if err != nil {
		a.swallow("modified files", err)
	}
	for _, path := range modified {
		out = append(out, FileChange{Path: path, State: StateModified})
	}

	untracked, err := a.provider.Untracked()
	if err != nil {
		a.swallow("untracked files", err)
	}
	for _, path := range untracked {
		out = append(out, FileChange{Path: path, State: StateUntracked})
	}
	return out
}

// Diff returns the literal content of an untracked file, or the diff of a
// tracked file's working copy against the index. Failures come back as a
// readable message in place of the diff.
func (a *Access) Diff(path string) string {
	if a.provider == nil {
		return ""
	}
	untracked, err := a.provider.Untracked()
	if err != nil {
		return describe(err)
	}
	if slices.Contains(untracked, path) {
		data, err := a.provider.ReadWorktreeFile(path)
		if err != nil {
			return describe(fmt.Errorf("%w %s: %w", ErrReadError, path, err))
		}
		return string(data)
	}
	text, err := a.provider.WorktreeDiff(path)
	if err != nil {
		return describe(err)
	}
	return text
}

func describe(err error) string {
	return "failed to get diff: " + err.Error()
}

// Stage adds paths to the index.
func (a *Access) Stage(paths []string) error {
	if a.provider == nil || len(paths) == 0 {
		return nil
	}
	if err := a.provider.Add(paths); err != nil {
		return err
	}
	a.log.Debug("staged", "paths", paths)
	return nil
}

// Commit records the index with message. The caller rejects empty messages.
func (a *Access) Commit(message string) error {
	if a.provider == nil {
		return nil
	}
	id, err := a.provider.Commit(message)
	if err != nil {
		return err
	}
	a.log.Info("commit created", "id", id)
	return nil
}

// History returns up to limit commits from the current branch tip, newest
// first. A non-positive limit selects DefaultHistoryLimit.
func (a *Access) History(limit int) []Commit {
	if a.provider == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	commits, err := a.provider.Log(limit)
	if err != nil {
		a.swallow("history", err)
		return nil
	}
	if len(commits) > limit {
		commits = commits[:limit]
	}
	return commits
}

// CommitFiles lists the paths commit id changed against its first parent.
func (a *Access) CommitFiles(id string) []string {
	if a.provider == nil {
		return nil
	}
	files, err := a.provider.CommitFiles(id)
	if err != nil {
		a.swallow("commit files", err)
		return nil
	}
	return files
}

// CommitFileDiff returns the diff of path in commit id against its first
// parent, or NoDiffData when there is nothing comparable.
func (a *Access) CommitFileDiff(id, path string) string {
	if a.provider == nil {
		return NoDiffData
	}
	text, err := a.provider.CommitFileDiff(id, path)
	if errors.Is(err, ErrDiffUnavailable) {
		return NoDiffData
	}
	if err != nil {
		return describe(err)
	}
	return text
}

// CommitGraph returns up to limit recent commits as graph nodes. A
// non-positive limit selects DefaultGraphLimit.
func (a *Access) CommitGraph(limit int) []GraphNode {
	if a.provider == nil {
		return nil
	}
	if limit <= 0 {
		limit = DefaultGraphLimit
	}
	commits := a.History(limit)
	if len(commits) == 0 {
		return nil
	}
	return BuildGraph(commits, a.palette)
}

func (a *Access) swallow(what string, err error) {
	if err == nil {
		return
	}
	a.log.Warn("query failed", "query", what, "root", a.Root(), "err", err)
}
