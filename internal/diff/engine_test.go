package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified_IdenticalIsEmpty(t *testing.T) {
	text, err := NewEngine().Unified("same\n", "same\n", "a/x", "b/x")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestUnified_ProducesHeadersAndHunk(t *testing.T) {
	text, err := NewEngine().Unified("one\ntwo\n", "one\nthree\n", "a/f.txt", "b/f.txt")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "--- a/f.txt"))
	assert.Contains(t, text, "+++ b/f.txt")
	assert.Contains(t, text, "@@ ")
	assert.Contains(t, text, "-two")
	assert.Contains(t, text, "+three")
}

func TestParse_UnifiedDiff(t *testing.T) {
	text, err := NewEngine().Unified("one\ntwo\n", "one\nthree\nfour\n", "a/f", "b/f")
	require.NoError(t, err)

	result := Parse(text, "f")
	added, removed, _ := result.GetStats()
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
	assert.True(t, result.HasChanges())

	require.GreaterOrEqual(t, len(result.Lines), 3)
	assert.Equal(t, Header, result.Lines[0].Type)
	assert.Equal(t, Header, result.Lines[1].Type)
	assert.Equal(t, Hunk, result.Lines[2].Type)

	for _, line := range result.Lines {
		if line.Type == Removed {
			assert.Equal(t, "two", line.Content)
			assert.Equal(t, 2, line.LineNo1)
		}
	}
}

func TestParse_PlainContent(t *testing.T) {
	result := Parse("hi\nthere\n", "a.txt")
	require.Len(t, result.Lines, 2)
	assert.Equal(t, Equal, result.Lines[0].Type)
	assert.Equal(t, "there", result.Lines[1].Content)
	assert.Equal(t, 2, result.Lines[1].LineNo1)
	assert.False(t, result.HasChanges())
}

func TestPlain_IgnoresDiffMarkers(t *testing.T) {
	result := Plain("@@ -1 +1 @@\n-old\n+new\n", "notes.txt")
	require.Len(t, result.Lines, 3)
	for i, line := range result.Lines {
		assert.Equal(t, Equal, line.Type)
		assert.Equal(t, i+1, line.LineNo1)
	}
	assert.Equal(t, "-old", result.Lines[1].Content)
	assert.False(t, result.HasChanges())
	assert.Empty(t, Plain("", "x").Lines)
}

func TestParse_Empty(t *testing.T) {
	result := Parse("", "x")
	assert.Empty(t, result.Lines)
	assert.False(t, result.HasChanges())
}

func TestParseHunkHeader(t *testing.T) {
	a, b := parseHunkHeader("@@ -12,4 +15 @@ func main()")
	assert.Equal(t, 12, a)
	assert.Equal(t, 15, b)
}
