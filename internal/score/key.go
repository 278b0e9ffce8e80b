// Package score runs validators over result records and accumulates accuracy
// by category, difficulty and metric.
package score

import (
	"graphgrade/internal/graph"
	"graphgrade/internal/validate"
)

// Metric names an accuracy counter kept per category and difficulty.
type Metric string

const (
	// MetricExact counts verdict agreement backed by a valid structure.
	MetricExact Metric = "exact"
	// MetricRough counts verdict-only agreement.
	MetricRough Metric = "rough"
	// MetricCounts counts correct graph-facts answers.
	MetricCounts Metric = "counts"
	// MetricEdges counts exact edge listings.
	MetricEdges Metric = "edges"
)

var metricOrder = []Metric{MetricExact, MetricRough, MetricCounts, MetricEdges}

// MetricFor returns the primary metric of a segment.
func MetricFor(segment validate.Segment) Metric {
	switch segment {
	case validate.Segment1:
		return MetricCounts
	case validate.Segment2:
		return MetricEdges
	default:
		return MetricExact
	}
}

// Key identifies one accuracy counter.
type Key struct {
	Category   graph.Category
	Difficulty graph.Difficulty
	Metric     Metric
}

// Tally is a correct/total pair.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Ratio returns Correct/Total, or zero for an empty tally.
func (t Tally) Ratio() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}

func (t Tally) plus(other Tally) Tally {
	return Tally{Correct: t.Correct + other.Correct, Total: t.Total + other.Total}
}

// RateKey identifies an edge-listing rate bucket.
type RateKey struct {
	Category   graph.Category
	Difficulty graph.Difficulty
}

// RateTally sums edge-listing rates so they can be averaged.
type RateTally struct {
	Count      int
	CorrectSum float64
	ErrorSum   float64
	Half       int
}

func (t RateTally) plus(other RateTally) RateTally {
	return RateTally{
		Count:      t.Count + other.Count,
		CorrectSum: t.CorrectSum + other.CorrectSum,
		ErrorSum:   t.ErrorSum + other.ErrorSum,
		Half:       t.Half + other.Half,
	}
}
