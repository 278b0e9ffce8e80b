package validate

import (
	"errors"
	"fmt"
	"strings"

	"graphgrade/internal/extract"
	"graphgrade/internal/graph"
)

// NewTopologicalSort accepts an order listing every node once, each after
// all of its predecessors.
func NewTopologicalSort() Validator {
	return Func(func(answer string, record graph.Record) Result {
		order, err := extract.ExtractOrder(answer)
		if err != nil {
			return fromError(err)
		}
		if len(order) != record.NodeCount {
			return incorrect(fmt.Sprintf("%d entries, graph has %d nodes", len(order), record.NodeCount))
		}
		seen := make(map[int]struct{}, len(order))
		for i, node := range order {
			if node < 0 || node >= record.NodeCount {
				return incorrect(fmt.Sprintf("node %d outside graph", node))
			}
			if _, dup := seen[node]; dup {
				return incorrect(fmt.Sprintf("node %d listed twice", node))
			}
			for _, pred := range record.Predecessors(node) {
				if _, ok := seen[pred]; !ok {
					return incorrect(fmt.Sprintf("node %d at position %d precedes its predecessor %d", node, i, pred))
				}
			}
			seen[node] = struct{}{}
		}
		return correct("order respects every edge")
	})
}

// NewMatching accepts a conflict-free matching whose declared size equals
// the reference and whose pairs all appear in the edge description.
func NewMatching() Validator {
	return Func(func(answer string, record graph.Record) Result {
		matching, err := extract.ExtractMatching(answer)
		if err != nil {
			if errors.Is(err, extract.ErrConflictingMatching) {
				return incorrect(err.Error())
			}
			return fromError(err)
		}
		want, err := extract.ExtractMatchCount(record.References.Final)
		if err != nil {
			return incorrect(fmt.Sprintf("reference: %v", err))
		}
		if matching.Count != want {
			return incorrect(fmt.Sprintf("declared %d applicants, reference %d", matching.Count, want))
		}
		for _, pair := range matching.Pairs {
			if !strings.Contains(record.EdgeText, pair.EdgeLiteral()) {
				return incorrect(fmt.Sprintf("%s not an edge", pair.EdgeLiteral()))
			}
		}
		return correct(fmt.Sprintf("%d pairs verified", len(matching.Pairs)))
	})
}

// NewMaximumFlow compares flow values as written.
func NewMaximumFlow() Validator {
	return Func(func(answer string, record graph.Record) Result {
		claimed, err := extract.ExtractFlow(answer)
		if err != nil {
			return fromError(err)
		}
		want, err := extract.ExtractFlow(record.References.Final)
		if err != nil {
			return incorrect(fmt.Sprintf("reference: %v", err))
		}
		if claimed != want {
			return incorrect(fmt.Sprintf("flow %s, reference %s", claimed, want))
		}
		return correct("flow " + claimed)
	})
}

// NewGNN compares per-node reports with the reference, stopping at the
// shorter of the two lists.
func NewGNN() Validator {
	return Func(func(answer string, record graph.Record) Result {
		claimed := extract.ExtractNodeReports(answer)
		if len(claimed) < 2 {
			return incorrect("no node reports")
		}
		want := extract.ExtractNodeReports(record.References.Final)
		if len(want) < 2 {
			return incorrect("reference has no node reports")
		}
		n := min(len(claimed), len(want))
		for i := 1; i < n; i++ {
			if claimed[i] != want[i] {
				return incorrect(fmt.Sprintf("node report %d differs", i-1))
			}
		}
		return correct(fmt.Sprintf("%d node reports match", n-1))
	})
}
