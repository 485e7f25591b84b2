package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Segment is a run of text within a changed line.
type Segment struct {
	Text    string
	Changed bool
}

// Inline splits a removed/added line pair into segments so the parts that
// actually changed can be emphasised.
func Inline(before, after string) (oldSegs, newSegs []Segment) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = appendSegment(oldSegs, d.Text, false)
			newSegs = appendSegment(newSegs, d.Text, false)
		case diffmatchpatch.DiffDelete:
			oldSegs = appendSegment(oldSegs, d.Text, true)
		case diffmatchpatch.DiffInsert:
			newSegs = appendSegment(newSegs, d.Text, true)
		}
	}
	return oldSegs, newSegs
}

func appendSegment(segs []Segment, text string, changed bool) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Changed == changed {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text, Changed: changed})
}

// Pairs returns index pairs (removed, added) for runs of removed lines
// immediately followed by an equal-length run of added lines.
func (r *DiffResult) Pairs() map[int]int {
	pairs := make(map[int]int)
	for i := 0; i < len(r.Lines); {
		if r.Lines[i].Type != Removed {
			i++
			continue
		}
		start := i
		for i < len(r.Lines) && r.Lines[i].Type == Removed {
			i++
		}
		removed := i - start
		addStart := i
		for i < len(r.Lines) && r.Lines[i].Type == Added {
			i++
		}
		if i-addStart != removed {
			continue
		}
		for k := 0; k < removed; k++ {
			pairs[start+k] = addStart + k
			pairs[addStart+k] = start + k
		}
	}
	return pairs
}
