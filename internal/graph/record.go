package graph

import "strings"

// Category identifies a benchmark task family.
type Category string

const (
	Connectivity    Category = "Connectivity"
	Cycle           Category = "Cycle"
	ShortestPath    Category = "ShortestPath"
	HamiltonPath    Category = "HamiltonPath"
	TopologicalSort Category = "TopologicalSort"
	Matching        Category = "BipartiteGraphMatching"
	MaximumFlow     Category = "MaximumFlow"
	GNN             Category = "GNN"
)

// Categories lists every supported category in report order.
var Categories = []Category{
	Connectivity,
	Cycle,
	ShortestPath,
	HamiltonPath,
	TopologicalSort,
	Matching,
	MaximumFlow,
	GNN,
}

// Known reports whether the category has a validator.
func (c Category) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Difficulty is the benchmark difficulty label.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty normalizes a difficulty label. Unknown labels are kept
// verbatim so they still get their own accuracy bucket.
func ParseDifficulty(value string) Difficulty {
	return Difficulty(strings.ToLower(strings.TrimSpace(value)))
}

// References holds the reference answers for the three question turns.
type References struct {
	Counts string
	Edges  string
	Final  string
}

// Record is the canonical graph instance behind one benchmark question.
// Records are immutable once built.
type Record struct {
	ID         string
	Category   Category
	Difficulty Difficulty
	NodeCount  int
	Edges      []Edge
	// EdgeText is the edge-list description exactly as supplied.
	EdgeText   string
	References References

	index map[Pair]int
}

// HasEdge reports whether an edge with the same unordered pair exists.
func (r Record) HasEdge(u, v int) bool {
	_, ok := r.Lookup(u, v)
	return ok
}

// Lookup returns the first canonical edge whose unordered pair matches.
func (r Record) Lookup(u, v int) (Edge, bool) {
	if r.index != nil {
		pos, ok := r.index[NewPair(u, v)]
		if !ok {
			return Edge{}, false
		}
		return r.Edges[pos], true
	}
	key := NewPair(u, v)
	for _, edge := range r.Edges {
		if edge.Pair() == key {
			return edge, true
		}
	}
	return Edge{}, false
}

// Predecessors returns the sources of directed edges ending at node.
func (r Record) Predecessors(node int) []int {
	var out []int
	for _, edge := range r.Edges {
		if edge.V == node {
			out = append(out, edge.U)
		}
	}
	return out
}

func (r *Record) buildIndex() {
	r.index = make(map[Pair]int, len(r.Edges))
	for i, edge := range r.Edges {
		if _, exists := r.index[edge.Pair()]; !exists {
			r.index[edge.Pair()] = i
		}
	}
}
