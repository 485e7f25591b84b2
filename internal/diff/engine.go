package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines kept around each hunk.
const DefaultContext = 3

// DiffLine represents a single line in the diff
type DiffLine struct {
	Type    LineType
	Content string
	LineNo1 int // Line number in the old side (0 if not applicable)
	LineNo2 int // Line number in the new side (0 if not applicable)
}

// LineType defines the type of diff line
type LineType int

const (
	Equal LineType = iota
	Added
	Removed
	Header
	Hunk
)

// DiffResult contains a parsed diff ready for rendering
type DiffResult struct {
	Lines []DiffLine
	Name  string
}

// Engine produces and parses textual diffs
type Engine struct {
	Context int
}

// NewEngine creates a new diff engine
func NewEngine() *Engine {
	return &Engine{Context: DefaultContext}
}

// Unified returns a unified diff between two texts. Identical inputs yield
// an empty string.
func (e *Engine) Unified(before, after, fromLabel, toLabel string) (string, error) {
	if before == after {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  e.Context,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("unified diff: %w", err)
	}
	return text, nil
}

// Parse classifies the lines of a unified diff. Text that carries no hunk
// header (plain file content) is returned as unchanged lines.
func Parse(text, name string) *DiffResult {
	result := &DiffResult{Name: name}
	if text == "" {
		return result
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if !hasHunk(lines) {
		return Plain(text, name)
	}

	lineNo1, lineNo2 := 0, 0
	inHunk := false
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "@@"):
			lineNo1, lineNo2 = parseHunkHeader(line)
			inHunk = true
			result.Lines = append(result.Lines, DiffLine{Type: Hunk, Content: line})
		case !inHunk || strings.HasPrefix(line, "diff --git"):
			inHunk = false
			result.Lines = append(result.Lines, DiffLine{Type: Header, Content: line})
		case strings.HasPrefix(line, "+"):
			result.Lines = append(result.Lines, DiffLine{Type: Added, Content: line[1:], LineNo2: lineNo2})
			lineNo2++
		case strings.HasPrefix(line, "-"):
			result.Lines = append(result.Lines, DiffLine{Type: Removed, Content: line[1:], LineNo1: lineNo1})
			lineNo1++
		case strings.HasPrefix(line, `\`):
			result.Lines = append(result.Lines, DiffLine{Type: Header, Content: line})
		default:
			content := line
			if strings.HasPrefix(content, " ") {
				content = content[1:]
			}
			result.Lines = append(result.Lines, DiffLine{Type: Equal, Content: content, LineNo1: lineNo1, LineNo2: lineNo2})
			lineNo1++
			lineNo2++
		}
	}

	return result
}

// Plain returns text as numbered unchanged lines without looking for diff
// markers. File content is shown this way.
func Plain(text, name string) *DiffResult {
	result := &DiffResult{Name: name}
	if text == "" {
		return result
	}
	for i, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		result.Lines = append(result.Lines, DiffLine{Type: Equal, Content: line, LineNo1: i + 1, LineNo2: i + 1})
	}
	return result
}

func hasHunk(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, "@@ ") {
			return true
		}
	}
	return false
}

// parseHunkHeader reads the starting line numbers of "@@ -a,b +c,d @@".
func parseHunkHeader(line string) (int, int) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 1, 1
	}
	return hunkStart(fields[1]), hunkStart(fields[2])
}

func hunkStart(field string) int {
	field = strings.TrimLeft(field, "-+")
	if idx := strings.IndexByte(field, ','); idx >= 0 {
		field = field[:idx]
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 1
	}
	return n
}

// GetStats returns statistics about the diff
func (r *DiffResult) GetStats() (added, removed, unchanged int) {
	for _, line := range r.Lines {
		switch line.Type {
		case Added:
			added++
		case Removed:
			removed++
		case Equal:
			unchanged++
		}
	}
	return
}

// HasChanges returns true if there are any differences
func (r *DiffResult) HasChanges() bool {
	for _, line := range r.Lines {
		if line.Type == Added || line.Type == Removed {
			return true
		}
	}
	return false
}
