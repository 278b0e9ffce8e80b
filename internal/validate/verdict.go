package validate

import (
	"fmt"

	"graphgrade/internal/extract"
	"graphgrade/internal/graph"
)

// structureCheck decides exact correctness for an affirmative answer.
type structureCheck func(answer string, record graph.Record) (bool, string)

// verdictValidator grades yes/no categories. Rough is verdict agreement with
// the reference. A "no" answer is exact whenever it is rough: the absence
// claim is accepted without checking the graph.
type verdictValidator struct {
	markers   extract.Markers
	reference extract.Markers
	structure structureCheck
}

func (v verdictValidator) Validate(answer string, record graph.Record) Result {
	result := Result{Verdict: true}
	claimed, err := extract.ExtractVerdict(answer, v.markers)
	if err != nil {
		result.Unparseable = true
		result.Detail = err.Error()
		return result
	}
	expected, err := extract.ExtractVerdict(record.References.Final, v.reference)
	if err != nil {
		result.Detail = fmt.Sprintf("reference: %v", err)
		return result
	}
	result.Rough = claimed == expected
	if !claimed {
		result.Exact = result.Rough
		result.Detail = "negative verdict"
		return result
	}
	ok, detail := v.structure(answer, record)
	result.Exact = result.Rough && ok
	result.Detail = detail
	return result
}

// NewConnectivity requires at least one path edge, all present in the graph.
func NewConnectivity(profile extract.Profile) Validator {
	return verdictValidator{
		markers:   profile.Verdicts[graph.Connectivity],
		reference: profile.Reference,
		structure: edgesExist(profile.Path, extract.Sequence.PathEdges, 1),
	}
}

// NewCycle requires at least two distinct cycle edges, all present in the
// graph, the closing edge included.
func NewCycle(profile extract.Profile) Validator {
	return verdictValidator{
		markers:   profile.Verdicts[graph.Cycle],
		reference: profile.Reference,
		structure: edgesExist(profile.Cycle, extract.Sequence.CycleEdges, 2),
	}
}

// NewHamilton requires a path that visits every node of the graph exactly
// once along existing edges.
func NewHamilton(profile extract.Profile) Validator {
	return verdictValidator{
		markers:   profile.Verdicts[graph.HamiltonPath],
		reference: profile.Reference,
		structure: hamiltonPath(profile.Hamilton),
	}
}

func edgesExist(cascade extract.Cascade, shape func(extract.Sequence) []graph.Edge, minEdges int) structureCheck {
	return func(answer string, record graph.Record) (bool, string) {
		seq, err := extract.ExtractSequence(cascade, answer)
		if err != nil {
			return false, err.Error()
		}
		edges := shape(seq)
		if len(edges) < minEdges {
			return false, fmt.Sprintf("%d edges, need at least %d", len(edges), minEdges)
		}
		if missing, ok := firstMissing(edges, record); ok {
			return false, fmt.Sprintf("edge %v not in graph", missing)
		}
		return true, fmt.Sprintf("%d edges verified", len(edges))
	}
}

func hamiltonPath(cascade extract.Cascade) structureCheck {
	return func(answer string, record graph.Record) (bool, string) {
		seq, err := extract.ExtractSequence(cascade, answer)
		if err != nil {
			return false, err.Error()
		}
		nodes := seq.Collapsed()
		if len(nodes) == 0 {
			return false, "empty path"
		}
		edges := seq.DistinctEdges()
		if missing, ok := firstMissing(edges, record); ok {
			return false, fmt.Sprintf("edge %v not in graph", missing)
		}
		covered := map[int]struct{}{}
		for _, edge := range edges {
			covered[edge.U] = struct{}{}
			covered[edge.V] = struct{}{}
		}
		if record.NodeCount == 1 && len(nodes) == 1 && nodes[0] == 0 {
			covered[0] = struct{}{}
		}
		for node := range covered {
			if node < 0 || node >= record.NodeCount {
				return false, fmt.Sprintf("node %d outside graph", node)
			}
		}
		if len(covered) != record.NodeCount {
			return false, fmt.Sprintf("covers %d of %d nodes", len(covered), record.NodeCount)
		}
		if len(nodes) != record.NodeCount {
			return false, fmt.Sprintf("visits %d nodes, graph has %d", len(nodes), record.NodeCount)
		}
		return true, "visits every node once"
	}
}

func firstMissing(edges []graph.Edge, record graph.Record) (graph.Edge, bool) {
	for _, edge := range edges {
		if !record.HasEdge(edge.U, edge.V) {
			return edge, true
		}
	}
	return graph.Edge{}, false
}
