package extract

import (
	"regexp"
	"strconv"
	"strings"

	"graphgrade/internal/graph"
)

// Sequence is an ordered list of node ids read from an answer.
type Sequence struct {
	Nodes   []int
	Pattern string
}

var (
	nodeWord     = regexp.MustCompile(`(?i)node`)
	connectors   = strings.NewReplacer("->", "-", "→", "-", ",", "-", ">", "-")
	nonSeparator = regexp.MustCompile(`[^0-9\-]`)
)

// ParseNodeList turns a fragment such as "node 1 -> node 2 → 3, 4" into node
// ids. Connectors become a single separator, other noise is dropped, and
// tokens that are not purely numeric are discarded.
func ParseNodeList(fragment string) []int {
	normalized := nodeWord.ReplaceAllString(fragment, "-")
	normalized = connectors.Replace(normalized)
	normalized = nonSeparator.ReplaceAllString(normalized, "")
	var nodes []int
	for _, token := range strings.Split(normalized, "-") {
		if token == "" {
			continue
		}
		value, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		nodes = append(nodes, value)
	}
	return nodes
}

// ExtractSequence runs a node-sequence cascade over an answer.
func ExtractSequence(cascade Cascade, answer string) (Sequence, error) {
	hit, ok := cascade.Find(answer)
	if !ok {
		return Sequence{}, unparseable(cascade.Name, "no sequence lead-in found")
	}
	return Sequence{Nodes: ParseNodeList(hit.Fragment), Pattern: hit.Pattern}, nil
}

// Collapsed returns the nodes with consecutive repeats merged.
func (s Sequence) Collapsed() []int {
	out := make([]int, 0, len(s.Nodes))
	for i, node := range s.Nodes {
		if i > 0 && node == s.Nodes[i-1] {
			continue
		}
		out = append(out, node)
	}
	return out
}

// PathEdges returns one edge per consecutive pair, dropping self-loops from
// repeated mentions.
func (s Sequence) PathEdges() []graph.Edge {
	var edges []graph.Edge
	for i := 0; i+1 < len(s.Nodes); i++ {
		if s.Nodes[i] == s.Nodes[i+1] {
			continue
		}
		edges = append(edges, graph.Edge{U: s.Nodes[i], V: s.Nodes[i+1]})
	}
	return edges
}

// DistinctEdges returns the path edges deduplicated by unordered pair,
// keeping first-occurrence order.
func (s Sequence) DistinctEdges() []graph.Edge {
	set := newEdgeSet()
	for _, edge := range s.PathEdges() {
		set.add(edge)
	}
	return set.edges
}

// CycleEdges returns the distinct edges of the sequence plus an implicit
// closing edge from the last node back to the first when they differ.
func (s Sequence) CycleEdges() []graph.Edge {
	set := newEdgeSet()
	for _, edge := range s.PathEdges() {
		set.add(edge)
	}
	if n := len(s.Nodes); n > 1 && s.Nodes[0] != s.Nodes[n-1] {
		set.add(graph.Edge{U: s.Nodes[n-1], V: s.Nodes[0]})
	}
	return set.edges
}

// edgeSet is an insertion-ordered set keyed by unordered pair.
type edgeSet struct {
	seen  map[graph.Pair]struct{}
	edges []graph.Edge
}

func newEdgeSet() *edgeSet {
	return &edgeSet{seen: map[graph.Pair]struct{}{}}
}

func (s *edgeSet) add(edge graph.Edge) {
	key := edge.Pair()
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.edges = append(s.edges, edge)
}
