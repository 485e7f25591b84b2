package repo

import "errors"

var (
	ErrNotARepository  = errors.New("not a git repository")
	ErrReadError       = errors.New("unable to read file")
	ErrDiffUnavailable = errors.New("no diff data")
)

// NoDiffData is shown in place of a commit diff that cannot be rendered.
const NoDiffData = "(no diff data)"

// NoBranch is reported when no repository is bound.
const NoBranch = "-"
