package validate

import (
	"fmt"

	"graphgrade/internal/extract"
	"graphgrade/internal/graph"
)

// NewShortestPath checks the claimed total weight twice: against the
// reference answer and against the sum of the weights of the claimed path.
func NewShortestPath(profile extract.Profile) Validator {
	cascade := profile.ShortestPath
	return Func(func(answer string, record graph.Record) Result {
		claimed, err := cascade.Extract(answer)
		if err != nil {
			return fromError(err)
		}
		reference, _ := cascade.Extract(record.References.Final)
		if !reference.HasWeight {
			return incorrect("reference states no total weight")
		}
		if claimed.Weight != reference.Weight {
			return incorrect(fmt.Sprintf("weight %d, reference %d", claimed.Weight, reference.Weight))
		}
		if len(claimed.Nodes) < 2 {
			return incorrect("path has fewer than two nodes")
		}
		sum := 0
		for i := 0; i+1 < len(claimed.Nodes); i++ {
			edge, ok := record.Lookup(claimed.Nodes[i], claimed.Nodes[i+1])
			if !ok {
				return incorrect(fmt.Sprintf("edge (%d, %d) not in graph", claimed.Nodes[i], claimed.Nodes[i+1]))
			}
			sum += edge.Weight
		}
		if sum != claimed.Weight {
			return incorrect(fmt.Sprintf("path weighs %d, claimed %d", sum, claimed.Weight))
		}
		return correct(fmt.Sprintf("path %v weighs %d", claimed.Nodes, sum))
	})
}
