package graph

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedEncoding marks edge or node-count text that matches none of the
// expected encodings.
var ErrMalformedEncoding = errors.New("malformed graph encoding")

// MalformedError reports which part of a record could not be decoded.
type MalformedError struct {
	RecordID string
	Field    string
	Reason   string
}

// Error renders the record, field and reason.
func (err *MalformedError) Error() string {
	return fmt.Sprintf("record %s: %s: %s", err.RecordID, err.Field, err.Reason)
}

// Is matches ErrMalformedEncoding.
func (err *MalformedError) Is(target error) bool {
	return target == ErrMalformedEncoding
}

// Encoding names the textual form of an edge list.
type Encoding int

const (
	// EncodingNone means the category never needs decoded edges.
	EncodingNone Encoding = iota
	// EncodingTuples is "(u, v[, w]), (u, v[, w])".
	EncodingTuples
	// EncodingAngle is "<u, v>, <u, v>" with directed pairs.
	EncodingAngle
	// EncodingApplicants is "(Appl1, Job2), (Appl3, Job1)".
	EncodingApplicants
)

// EncodingFor returns the edge encoding used by a category's dataset.
func EncodingFor(category Category) Encoding {
	switch category {
	case Connectivity, Cycle, ShortestPath, HamiltonPath:
		return EncodingTuples
	case TopologicalSort:
		return EncodingAngle
	case Matching:
		return EncodingApplicants
	default:
		return EncodingNone
	}
}

// needsNodeCount reports whether validation of the category uses the node count.
func needsNodeCount(category Category) bool {
	return category == HamiltonPath || category == TopologicalSort
}

const tupleHeader = "The edges are represented by the tuples:\n"

var (
	nodeCountPattern = regexp.MustCompile(`(\d+) nodes`)
	anglePairPattern = regexp.MustCompile(`(\d+), (\d+)`)
	applicantPattern = regexp.MustCompile(`\(Appl(\d+), Job(\d+)\)`)
)

// ParseNodeCount reads "<N> nodes" from a graph description.
func ParseNodeCount(text string) (int, bool) {
	match := nodeCountPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	count, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return count, true
}

// ParseTupleEdges decodes parenthesized tuples joined by "), (". Each tuple
// holds two node ids and an optional weight.
func ParseTupleEdges(text string) ([]Edge, error) {
	body := text
	if _, after, found := strings.Cut(text, tupleHeader); found {
		body = after
	}
	body = strings.TrimSpace(body)
	body = strings.TrimRight(body, ".")
	if body == "" {
		return nil, errors.New("edge list is empty")
	}
	pieces := strings.Split(body, "), (")
	edges := make([]Edge, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.NewReplacer("(", "", ")", "").Replace(piece)
		fields := strings.Split(piece, ", ")
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("tuple %q has %d fields", piece, len(fields))
		}
		values := make([]int, len(fields))
		for i, field := range fields {
			value, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("tuple %q: %w", piece, err)
			}
			values[i] = value
		}
		edge := Edge{U: values[0], V: values[1]}
		if len(values) == 3 {
			if values[2] < 0 {
				return nil, fmt.Errorf("tuple %q has a negative weight", piece)
			}
			edge.Weight = values[2]
			edge.Weighted = true
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// ParseAngleEdges decodes directed pairs written as "<u, v>" and joined by
// ">, <".
func ParseAngleEdges(text string) ([]Edge, error) {
	start := strings.Index(text, "<")
	if start == -1 {
		return nil, errors.New("no angle-bracket tuples")
	}
	pieces := strings.Split(text[start:], ">, <")
	edges := make([]Edge, 0, len(pieces))
	for _, piece := range pieces {
		match := anglePairPattern.FindStringSubmatch(piece)
		if match == nil {
			return nil, fmt.Errorf("tuple %q has no node pair", piece)
		}
		u, _ := strconv.Atoi(match[1])
		v, _ := strconv.Atoi(match[2])
		edges = append(edges, Edge{U: u, V: v})
	}
	return edges, nil
}

// ParseApplicantEdges decodes "(ApplI, JobJ)" pairs as applicant -> job edges.
func ParseApplicantEdges(text string) ([]Edge, error) {
	matches := applicantPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, errors.New("no applicant/job pairs")
	}
	edges := make([]Edge, 0, len(matches))
	for _, match := range matches {
		u, _ := strconv.Atoi(match[1])
		v, _ := strconv.Atoi(match[2])
		edges = append(edges, Edge{U: u, V: v})
	}
	return edges, nil
}

// RawRecord is a standard record before its texts are decoded.
type RawRecord struct {
	ID         string
	Category   Category
	Difficulty Difficulty
	CountText  string
	EdgeText   string
	References References
}

// NewRecord decodes a raw record into a Record. The returned error is always
// a *MalformedError.
func NewRecord(raw RawRecord) (Record, error) {
	record := Record{
		ID:         raw.ID,
		Category:   raw.Category,
		Difficulty: raw.Difficulty,
		EdgeText:   raw.EdgeText,
		References: raw.References,
	}
	if count, ok := ParseNodeCount(raw.CountText); ok {
		record.NodeCount = count
	} else if needsNodeCount(raw.Category) {
		return Record{}, &MalformedError{RecordID: raw.ID, Field: "node_count", Reason: "no \"<N> nodes\" phrase"}
	}

	var (
		edges []Edge
		err   error
	)
	switch EncodingFor(raw.Category) {
	case EncodingTuples:
		edges, err = ParseTupleEdges(raw.EdgeText)
	case EncodingAngle:
		edges, err = ParseAngleEdges(raw.EdgeText)
	case EncodingApplicants:
		edges, err = ParseApplicantEdges(raw.EdgeText)
	}
	if err != nil {
		return Record{}, &MalformedError{RecordID: raw.ID, Field: "edges", Reason: err.Error()}
	}
	record.Edges = edges
	record.buildIndex()
	return record, nil
}
