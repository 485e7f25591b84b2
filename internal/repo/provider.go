package repo

// Provider is the capability set the application needs from a
// version-control backend. Access is its only caller.
type Provider interface {
	// Root returns the working tree directory.
	Root() string
	// Branch returns the active branch name.
	Branch() (string, error)
	// StatusLines returns a human-readable status report.
	StatusLines() ([]string, error)
	// Modified lists tracked paths whose working copy differs from the index.
	Modified() ([]string, error)
	// Untracked lists paths never added to the index.
	Untracked() ([]string, error)
	// ReadWorktreeFile returns the on-disk content of a working tree file.
	ReadWorktreeFile(path string) ([]byte, error)
	// WorktreeDiff returns a unified diff of the index against the working copy.
	WorktreeDiff(path string) (string, error)
	// Add stages the given paths.
	Add(paths []string) error
	// Commit records the index as a new commit and returns its id.
	Commit(message string) (string, error)
	// Log returns up to limit commits reachable from HEAD, newest first.
	Log(limit int) ([]Commit, error)
	// CommitFiles lists the paths a commit touched relative to its first parent.
	CommitFiles(id string) ([]string, error)
	// CommitFileDiff returns the patch of one path between a commit and its
	// first parent, or ErrDiffUnavailable.
	CommitFileDiff(id, path string) (string, error)
}
