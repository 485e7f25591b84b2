package repo

import "time"

// FileState tells a modified tracked file apart from an untracked one.
type FileState int

const (
	StateModified FileState = iota
	StateUntracked
)

func (s FileState) String() string {
	switch s {
	case StateUntracked:
		return "untracked"
	default:
		return "modified"
	}
}

// FileChange is one entry of the changed-file list.
type FileChange struct {
	Path  string
	State FileState
}

// Commit is the projection of a commit object used by the views.
type Commit struct {
	ID      string
	Summary string
	Author  string
	When    time.Time
	Parents []string
}

// ShortID returns the abbreviated commit id.
func (c Commit) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// GraphNode is a commit placed in a fixed window of recent history. Parents
// holds positions within that same window, or NoParent.
type GraphNode struct {
	ID      string
	Summary string
	Author  string
	When    time.Time
	Parents []int
	Color   string
}

// TimeLayout is how commit timestamps are shown.
const TimeLayout = "2006-01-02 15:04:05"
