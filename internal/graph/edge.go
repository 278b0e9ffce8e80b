package graph

import "fmt"

// Pair is an unordered node pair with A <= B.
type Pair struct {
	A int
	B int
}

// NewPair builds the canonical unordered pair for (u, v).
func NewPair(u, v int) Pair {
	if u > v {
		u, v = v, u
	}
	return Pair{A: u, B: v}
}

// Edge is a pair of node ids with an optional non-negative weight. U and V
// keep their source order so directed encodings survive; equality for
// membership purposes goes through Pair.
type Edge struct {
	U        int
	V        int
	Weight   int
	Weighted bool
}

// Pair returns the unordered key of the edge.
func (e Edge) Pair() Pair {
	return NewPair(e.U, e.V)
}

func (e Edge) String() string {
	if e.Weighted {
		return fmt.Sprintf("(%d, %d, %d)", e.U, e.V, e.Weight)
	}
	return fmt.Sprintf("(%d, %d)", e.U, e.V)
}
