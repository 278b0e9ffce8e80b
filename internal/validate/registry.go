package validate

import (
	"graphgrade/internal/extract"
	"graphgrade/internal/graph"
)

// Registry maps a segment and category to its validator for one phrasing
// profile.
type Registry struct {
	profile extract.Profile
	final   map[graph.Category]Validator
	counts  Validator
	edges   Validator
}

// NewRegistry builds the validators for every known category.
func NewRegistry(profile extract.Profile) *Registry {
	return &Registry{
		profile: profile,
		final: map[graph.Category]Validator{
			graph.Connectivity:    NewConnectivity(profile),
			graph.Cycle:           NewCycle(profile),
			graph.HamiltonPath:    NewHamilton(profile),
			graph.ShortestPath:    NewShortestPath(profile),
			graph.TopologicalSort: NewTopologicalSort(),
			graph.Matching:        NewMatching(),
			graph.MaximumFlow:     NewMaximumFlow(),
			graph.GNN:             NewGNN(),
		},
		counts: NewCounts(),
		edges:  NewEdgeListing(),
	}
}

// Profile returns the phrasing profile the registry was built for.
func (r *Registry) Profile() extract.Profile {
	return r.profile
}

// For returns the validator for a segment of a category.
func (r *Registry) For(segment Segment, category graph.Category) (Validator, bool) {
	switch segment {
	case Segment1:
		return r.counts, true
	case Segment2:
		return r.edges, true
	case Segment3:
		v, ok := r.final[category]
		return v, ok
	default:
		return nil, false
	}
}

// HasVerdict reports whether the category is graded on a yes/no verdict and
// therefore also tracks rough correctness.
func HasVerdict(category graph.Category) bool {
	switch category {
	case graph.Connectivity, graph.Cycle, graph.HamiltonPath:
		return true
	default:
		return false
	}
}
