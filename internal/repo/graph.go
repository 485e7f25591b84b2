package repo

// NoParent marks a parent that falls outside the fetched window.
const NoParent = -1

// DefaultPalette is cycled over graph node positions.
var DefaultPalette = []string{"#3498db", "#e67e22", "#2ecc71", "#9b59b6"}

// BuildGraph projects a newest-first commit window into graph nodes. Parent
// ids are resolved to positions inside the same window; a parent that is
// missing, or that would point backwards, resolves to NoParent.
func BuildGraph(commits []Commit, palette []string) []GraphNode {
	positions := make(map[string]int, len(commits))
	for i, c := range commits {
		positions[c.ID] = i
	}

	nodes := make([]GraphNode, 0, len(commits))
	for i, c := range commits {
		parents := make([]int, 0, len(c.Parents))
		for _, id := range c.Parents {
			pos, ok := positions[id]
			if !ok || pos <= i {
				pos = NoParent
			}
			parents = append(parents, pos)
		}

		var color string
		if len(palette) > 0 {
			color = palette[i%len(palette)]
		}

		nodes = append(nodes, GraphNode{
			ID:      c.ID,
			Summary: c.Summary,
			Author:  c.Author,
			When:    c.When,
			Parents: parents,
			Color:   color,
		})
	}
	return nodes
}
