package validate

import (
	"math"
	"testing"

	"graphgrade/internal/graph"
)

func weighted(final string, edges ...[3]int) graph.Record {
	record := graph.Record{References: graph.References{Final: final}}
	for _, e := range edges {
		record.Edges = append(record.Edges, graph.Edge{U: e[0], V: e[1], Weight: e[2], Weighted: true})
	}
	return record
}

func TestShortestPathRoundTrip(t *testing.T) {
	record := weighted("The shortest path from node 0 to node 2 is 0, 1, 2 with a total weight of 8.",
		[3]int{0, 1, 5}, [3]int{1, 2, 3})

	got := NewShortestPath(chatgpt(t)).Validate("... the path is 0, 1, 2 with a total weight of 8.", record)
	if !got.Exact {
		t.Fatalf("expected correct path, got %+v", got)
	}
	if got.Verdict {
		t.Fatalf("shortest path has no verdict")
	}
}

// TestShortestPathRecomputesWeight rejects a claimed weight that matches the
// reference but not the edges walked.
func TestShortestPathRecomputesWeight(t *testing.T) {
	record := weighted("The shortest path from node 0 to node 2 is 0, 2 with a total weight of 8.",
		[3]int{0, 1, 5}, [3]int{1, 2, 4}, [3]int{0, 2, 8})

	got := NewShortestPath(chatgpt(t)).Validate("The shortest path from node 0 to node 2 is 0, 1, 2 with a total weight of 8.", record)
	if got.Exact {
		t.Fatalf("expected recomputed weight mismatch to fail, got %+v", got)
	}
}

func TestShortestPathUnparseable(t *testing.T) {
	record := weighted("The shortest path from node 0 to node 1 is 0, 1 with a total weight of 2.", [3]int{0, 1, 2})
	got := NewShortestPath(chatgpt(t)).Validate("I do not know", record)
	if !got.Unparseable || got.Exact {
		t.Fatalf("expected unparseable, got %+v", got)
	}
}

func TestTopologicalSort(t *testing.T) {
	record := graph.Record{
		NodeCount: 4,
		Edges: []graph.Edge{
			{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 3}, {U: 2, V: 3},
		},
	}
	cases := []struct {
		answer string
		want   bool
	}{
		{"0, 1, 2, 3", true},
		{"0, 2, 1, 3", true},
		{"1, 0, 2, 3", false},
		{"0, 1, 2", false},
		{"0, 1, 1, 3", false},
	}
	validator := NewTopologicalSort()
	for _, tc := range cases {
		if got := validator.Validate(tc.answer, record); got.Exact != tc.want {
			t.Fatalf("%q: expected %v, got %+v", tc.answer, tc.want, got)
		}
	}
}

// TestMatchingRejectsReusedJob grades a reused job as wrong even when every
// pair is an edge.
func TestMatchingRejectsReusedJob(t *testing.T) {
	record := graph.Record{
		EdgeText:   "(Appl1, Job2), (Appl3, Job2)",
		References: graph.References{Final: "2 applicants can find the job they are interested in."},
	}
	got := NewMatching().Validate("2 applicants can find the job they are interested in.\napplicant 1: job 2\napplicant 3: job 2", record)
	if got.Exact || got.Unparseable {
		t.Fatalf("expected incorrect matching, got %+v", got)
	}
}

func TestMatchingAcceptsVerbatimPairs(t *testing.T) {
	record := graph.Record{
		EdgeText:   "(Appl0, Job1), (Appl1, Job0), (Appl1, Job1)",
		References: graph.References{Final: "2 applicants can find the job they are interested in."},
	}
	validator := NewMatching()
	got := validator.Validate("2 applicants can find the job they are interested in. applicant 0: job 1, applicant 1: job 0", record)
	if !got.Exact {
		t.Fatalf("expected valid matching, got %+v", got)
	}
	got = validator.Validate("2 applicants can find the job they are interested in. applicant 0: job 0, applicant 1: job 1", record)
	if got.Exact {
		t.Fatalf("expected missing edge to fail, got %+v", got)
	}
}

func TestMaximumFlow(t *testing.T) {
	record := graph.Record{References: graph.References{Final: "The maximum flow from node 0 to node 3 is 7."}}
	validator := NewMaximumFlow()
	if got := validator.Validate("The maximum flow from node 0\nto node 3 is 7.", record); !got.Exact {
		t.Fatalf("expected matching flow, got %+v", got)
	}
	if got := validator.Validate("The maximum flow from node 0 to node 3 is 9.", record); got.Exact {
		t.Fatalf("expected wrong flow, got %+v", got)
	}
}

func TestGNNComparesNodeReports(t *testing.T) {
	record := graph.Record{References: graph.References{Final: "node 0: [1, 0]\nnode 1: [0, 1]"}}
	validator := NewGNN()
	if got := validator.Validate("node 0: [1,0] node 1: [0,1]", record); !got.Exact {
		t.Fatalf("expected matching reports, got %+v", got)
	}
	if got := validator.Validate("node 0: [1,0] node 1: [1,1]", record); got.Exact {
		t.Fatalf("expected differing report to fail, got %+v", got)
	}
	if got := validator.Validate("nothing to report", record); got.Exact {
		t.Fatalf("expected missing reports to fail, got %+v", got)
	}
}

func TestCountsAcceptSpelledNumbers(t *testing.T) {
	record := graph.Record{References: graph.References{Counts: "There are 4 nodes and 3 edges."}}
	if got := NewCounts().Validate("The graph has four nodes and three edges.", record); !got.Exact {
		t.Fatalf("expected spelled counts to match, got %+v", got)
	}
}

func TestEdgeListingRates(t *testing.T) {
	record := graph.Record{References: graph.References{Edges: "(0, 1), (1, 2), (2, 3), (3, 0)"}}
	got := NewEdgeListing().Validate("(0, 1), (1, 2), (5, 6)", record)
	if got.Exact || got.Rates == nil {
		t.Fatalf("expected partial listing with rates, got %+v", got)
	}
	if got.Rates.Correct != 0.5 || !got.Rates.Half {
		t.Fatalf("unexpected correct rate %+v", got.Rates)
	}
	if math.Abs(got.Rates.Error-1.0/3.0) > 1e-9 {
		t.Fatalf("unexpected error rate %+v", got.Rates)
	}

	exact := NewEdgeListing().Validate("<3, 0>, <0, 1>, <1, 2>, <2, 3>", record)
	if !exact.Exact {
		t.Fatalf("expected full listing to match, got %+v", exact)
	}
}

func TestRegistryCoversEveryCategory(t *testing.T) {
	registry := NewRegistry(chatgpt(t))
	for _, category := range graph.Categories {
		if _, ok := registry.For(Segment3, category); !ok {
			t.Fatalf("no validator for %s", category)
		}
	}
	if _, ok := registry.For(Segment1, graph.GNN); !ok {
		t.Fatalf("expected counts validator")
	}
	if _, ok := registry.For(Segment("segment9"), graph.Cycle); ok {
		t.Fatalf("unexpected validator for unknown segment")
	}
}
