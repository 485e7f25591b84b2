package export

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/cj3636/gitc/internal/diff"
)

// Format represents the desired export format.
type Format string

const (
	// FormatHTML emits an HTML document for the diff.
	FormatHTML Format = "html"
	// FormatMarkdown emits a Markdown diff code block.
	FormatMarkdown Format = "markdown"
	// FormatANSI emits an ANSI-colored string.
	FormatANSI Format = "ansi"
)

// Options control how a diff is exported.
type Options struct {
	// Title will be shown in HTML/Markdown outputs when provided.
	Title string
	// ShowLineNumbers determines whether line numbers are included.
	ShowLineNumbers bool
}

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(raw) {
	case "", string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatHTML), "htm":
		return FormatHTML, nil
	case string(FormatANSI), "text":
		return FormatANSI, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatANSI:
		return ".txt"
	default:
		return ".md"
	}
}

// Render returns the diff in the requested format.
func Render(result *diff.DiffResult, format Format, opts Options) (string, error) {
	if result == nil {
		return "", errors.New("diff result is nil")
	}

	switch strings.ToLower(string(format)) {
	case string(FormatHTML):
		return renderHTML(result, opts), nil
	case string(FormatMarkdown), "md":
		return renderMarkdown(result, opts), nil
	case string(FormatANSI), "text":
		return renderANSI(result, opts), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

// walk visits every line together with its inline segments. Lines that
// pair up as a one-for-one replacement get the segments that changed;
// all other lines get nil.
func walk(result *diff.DiffResult, fn func(line diff.DiffLine, segs []diff.Segment)) {
	pairs := result.Pairs()
	for i, line := range result.Lines {
		j, ok := pairs[i]
		if !ok {
			fn(line, nil)
			continue
		}
		other := result.Lines[j].Content
		var segs []diff.Segment
		if line.Type == diff.Removed {
			segs, _ = diff.Inline(line.Content, other)
		} else {
			_, segs = diff.Inline(other, line.Content)
		}
		fn(line, segs)
	}
}

func summary(result *diff.DiffResult) string {
	added, removed, _ := result.GetStats()
	return fmt.Sprintf("+%d -%d", added, removed)
}

const htmlStyle = "body{background:#0f111a;color:#e5e7eb;font-family:Menlo,Consolas,monospace;}" +
	"pre{white-space:pre-wrap;word-wrap:break-word;}" +
	".added{background:#12281a;color:#8dd39e;}" +
	".removed{background:#2b1313;color:#f19999;}" +
	".added mark{background:#1f5130;color:inherit;}" +
	".removed mark{background:#5c2020;color:inherit;}" +
	".unchanged{color:#cbd5e1;}" +
	".meta{color:#7fb4ca;}" +
	".lineno{color:#9ca3af;margin-right:12px;}" +
	".stats{color:#9ca3af;}" +
	"h1{font-size:18px;margin-bottom:4px;}"

func renderHTML(result *diff.DiffResult, opts Options) string {
	var b strings.Builder

	title := opts.Title
	if title == "" {
		title = "Diff: " + result.Name
	}
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>\n",
		html.EscapeString(title), htmlStyle)
	fmt.Fprintf(&b, "<h1>%s</h1>\n<p class=\"stats\">%s</p>\n<pre>", html.EscapeString(title), summary(result))

	walk(result, func(line diff.DiffLine, segs []diff.Segment) {
		class, symbol := classifyLine(line)
		prefix := symbol
		if opts.ShowLineNumbers && !isMeta(line) {
			prefix = lineNoHTML(line.LineNo1) + lineNoHTML(line.LineNo2) + symbol
		}

		var content string
		if segs == nil {
			content = html.EscapeString(line.Content)
		} else {
			var cb strings.Builder
			for _, seg := range segs {
				if seg.Changed {
					cb.WriteString("<mark>" + html.EscapeString(seg.Text) + "</mark>")
				} else {
					cb.WriteString(html.EscapeString(seg.Text))
				}
			}
			content = cb.String()
		}
		fmt.Fprintf(&b, "<div class=\"%s\">%s%s</div>\n", class, prefix, content)
	})

	b.WriteString("</pre></body></html>")
	return b.String()
}

func lineNoHTML(no int) string {
	if no <= 0 {
		return "<span class=\"lineno\">     </span>"
	}
	return fmt.Sprintf("<span class=\"lineno\">%5d</span>", no)
}

func renderMarkdown(result *diff.DiffResult, opts Options) string {
	var b strings.Builder

	if opts.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", opts.Title)
	}
	fmt.Fprintf(&b, "`%s`\n\n```diff\n", summary(result))

	for _, line := range result.Lines {
		symbol := lineSymbol(line.Type)
		switch {
		case isMeta(line):
			b.WriteString(line.Content + "\n")
		case opts.ShowLineNumbers:
			fmt.Fprintf(&b, "%s %5s %5s %s\n", symbol, lineNoText(line.LineNo1), lineNoText(line.LineNo2), line.Content)
		default:
			b.WriteString(symbol + line.Content + "\n")
		}
	}
	b.WriteString("```\n")
	return b.String()
}

const (
	ansiReset = "\u001b[0m"
	ansiBold  = "\u001b[1m"
	ansiDim   = "\u001b[90m"
)

func renderANSI(result *diff.DiffResult, opts Options) string {
	var b strings.Builder
	if opts.Title != "" {
		fmt.Fprintf(&b, "%s%s%s %s\n\n", ansiBold, opts.Title, ansiReset, summary(result))
	}

	walk(result, func(line diff.DiffLine, segs []diff.Segment) {
		color := ansiColor(line.Type)
		if isMeta(line) {
			b.WriteString(color + line.Content + ansiReset + "\n")
			return
		}
		if opts.ShowLineNumbers {
			b.WriteString(lineNoANSI(line.LineNo1) + " " + lineNoANSI(line.LineNo2) + " ")
		}
		b.WriteString(color + lineSymbol(line.Type))
		if segs == nil {
			b.WriteString(line.Content)
		}
		for _, seg := range segs {
			if seg.Changed {
				b.WriteString(ansiBold + seg.Text + ansiReset + color)
			} else {
				b.WriteString(seg.Text)
			}
		}
		b.WriteString(ansiReset + "\n")
	})
	return b.String()
}

func isMeta(line diff.DiffLine) bool {
	return line.Type == diff.Header || line.Type == diff.Hunk
}

func classifyLine(line diff.DiffLine) (class, symbol string) {
	switch line.Type {
	case diff.Added:
		return "added", "+"
	case diff.Removed:
		return "removed", "-"
	case diff.Header, diff.Hunk:
		return "meta", ""
	default:
		return "unchanged", " "
	}
}

func lineSymbol(t diff.LineType) string {
	_, symbol := classifyLine(diff.DiffLine{Type: t})
	return symbol
}

func lineNoText(no int) string {
	if no <= 0 {
		return ""
	}
	return strconv.Itoa(no)
}

func lineNoANSI(no int) string {
	if no <= 0 {
		return "     "
	}
	return fmt.Sprintf("%s%5d%s", ansiDim, no, ansiReset)
}

func ansiColor(t diff.LineType) string {
	switch t {
	case diff.Added:
		return "\u001b[32m"
	case diff.Removed:
		return "\u001b[31m"
	case diff.Header, diff.Hunk:
		return "\u001b[36m"
	default:
		return "\u001b[37m"
	}
}
