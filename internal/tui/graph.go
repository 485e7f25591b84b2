package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gitc/internal/repo"
)

const (
	graphMarker = "●"
	graphEdge   = "│"
)

// graphEdgeSpan is a straight line from a node down to one of its parents.
type graphEdgeSpan struct {
	From, To       int
	FromRow, ToRow int
}

// graphLayout places every node in a single column at a row fixed by its
// position in the window. There is no lane assignment, so diverging
// branches share the column.
type graphLayout struct {
	Rows    int
	Markers []int // row of node i
	Edges   []graphEdgeSpan
}

func layoutGraph(nodes []repo.GraphNode, spacing int) graphLayout {
	if spacing < 1 {
		spacing = 1
	}
	var l graphLayout
	if len(nodes) == 0 {
		return l
	}
	l.Rows = (len(nodes)-1)*spacing + 1
	l.Markers = make([]int, len(nodes))
	for i, n := range nodes {
		l.Markers[i] = i * spacing
		for _, p := range n.Parents {
			if p == repo.NoParent || p < 0 || p >= len(nodes) {
				continue
			}
			l.Edges = append(l.Edges, graphEdgeSpan{From: i, To: p, FromRow: i * spacing, ToRow: p * spacing})
		}
	}
	return l
}

// edgeAt reports whether some edge passes through row without ending there.
func (l graphLayout) edgeAt(row int) bool {
	for _, e := range l.Edges {
		if e.FromRow < row && row < e.ToRow {
			return true
		}
	}
	return false
}

func (m Model) renderGraph(width int) string {
	if len(m.graph) == 0 {
		return m.styles.help.Render("No commits to draw.")
	}

	layout := layoutGraph(m.graph, m.config.GraphSpacing)
	nodeAt := make(map[int]int, len(layout.Markers))
	for i, row := range layout.Markers {
		nodeAt[row] = i
	}

	lines := make([]string, 0, layout.Rows)
	for row := 0; row < layout.Rows; row++ {
		if i, ok := nodeAt[row]; ok {
			node := m.graph[i]
			marker := lipgloss.NewStyle().Foreground(lipgloss.Color(node.Color)).Render(graphMarker)
			label := truncate(node.Summary, max(0, width-4))
			lines = append(lines, " "+marker+" "+m.styles.unchanged.Render(label))
			continue
		}
		if layout.edgeAt(row) {
			lines = append(lines, " "+m.styles.edge.Render(graphEdge))
			continue
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// graphTooltip describes the node at the top of the graph viewport.
func (m Model) graphTooltip() string {
	if len(m.graph) == 0 {
		return ""
	}
	spacing := max(1, m.config.GraphSpacing)
	i := min(m.graphVP.YOffset/spacing, len(m.graph)-1)
	n := m.graph[i]
	return n.Summary + " (" + n.Author + " @ " + n.When.Format(repo.TimeLayout) + ")"
}
