package validate

import (
	"fmt"
	"slices"

	"graphgrade/internal/extract"
	"graphgrade/internal/graph"
)

// Segment names one question turn of a benchmark record.
type Segment string

const (
	// Segment1 asks for basic graph facts such as node and edge counts.
	Segment1 Segment = "segment1"
	// Segment2 asks for the edge listing.
	Segment2 Segment = "segment2"
	// Segment3 asks the task question itself.
	Segment3 Segment = "segment3"
)

// Segments lists the segments in question order.
var Segments = []Segment{Segment1, Segment2, Segment3}

// Known reports whether s is a recognised segment.
func (s Segment) Known() bool {
	return slices.Contains(Segments, s)
}

// EdgeRates measures an edge listing R against the reference set S.
type EdgeRates struct {
	// Correct is |R ∩ S| / |S|.
	Correct float64 `json:"correct"`
	// Error is |R \ S| / |R|.
	Error float64 `json:"error"`
	// Half is set when at least half of the reference edges were listed.
	Half bool `json:"half_correct"`
}

// NewCounts grades the graph-facts turn by comparing stated numbers in order.
func NewCounts() Validator {
	return Func(func(answer string, record graph.Record) Result {
		claimed, err := extract.ExtractCounts(answer)
		if err != nil {
			return fromError(err)
		}
		want, err := extract.ExtractCounts(record.References.Counts)
		if err != nil {
			return incorrect(fmt.Sprintf("reference: %v", err))
		}
		if !slices.Equal(claimed, want) {
			return incorrect(fmt.Sprintf("counts %v, reference %v", claimed, want))
		}
		return correct(fmt.Sprintf("counts %v", claimed))
	})
}

// NewEdgeListing grades the edge-listing turn as a set comparison and
// reports the overlap rates.
func NewEdgeListing() Validator {
	return Func(func(answer string, record graph.Record) Result {
		claimed := extract.ExtractTuples(answer)
		want := extract.ExtractTuples(record.References.Edges)
		rates := Rates(claimed, want)
		result := Result{Rates: &rates}
		switch {
		case len(claimed) == 0:
			result.Unparseable = true
			result.Detail = "no edges listed"
		case slices.Equal(claimed, want):
			result.Exact = true
			result.Detail = fmt.Sprintf("%d edges match", len(want))
		default:
			result.Detail = fmt.Sprintf("%.0f%% of reference edges, %.0f%% wrong", rates.Correct*100, rates.Error*100)
		}
		return result
	})
}

// Rates compares two edge sets. Empty denominators give a zero rate.
func Rates(claimed, reference []string) EdgeRates {
	want := make(map[string]struct{}, len(reference))
	for _, edge := range reference {
		want[edge] = struct{}{}
	}
	got := make(map[string]struct{}, len(claimed))
	hits := 0
	for _, edge := range claimed {
		if _, dup := got[edge]; dup {
			continue
		}
		got[edge] = struct{}{}
		if _, ok := want[edge]; ok {
			hits++
		}
	}
	var rates EdgeRates
	if len(want) > 0 {
		rates.Correct = float64(hits) / float64(len(want))
	}
	if len(got) > 0 {
		rates.Error = float64(len(got)-hits) / float64(len(got))
	}
	rates.Half = rates.Correct >= 0.5
	return rates
}
