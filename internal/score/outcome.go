package score

import (
	"graphgrade/internal/graph"
	"graphgrade/internal/validate"
)

// Kind classifies the outcome of grading one answer.
type Kind string

const (
	KindCorrect     Kind = "correct"
	KindRough       Kind = "rough"
	KindIncorrect   Kind = "incorrect"
	KindUnparseable Kind = "unparseable"
	// KindCategoryMismatch marks a result whose category differs from its
	// standard record; it counts as a wrong answer.
	KindCategoryMismatch Kind = "category_mismatch"
	// KindLookupFailed marks a result whose standard record could not be
	// found. It is excluded from every count.
	KindLookupFailed Kind = "lookup_failed"
	// KindMalformed marks a standard record whose edge list could not be
	// decoded. It is excluded from every count.
	KindMalformed Kind = "malformed"
	// KindUnsupported marks a category with no validator.
	KindUnsupported Kind = "unsupported"
)

// Counted reports whether the outcome contributes to accuracy totals.
func (k Kind) Counted() bool {
	switch k {
	case KindCorrect, KindRough, KindIncorrect, KindUnparseable, KindCategoryMismatch:
		return true
	default:
		return false
	}
}

// Item is one result record prepared for scoring.
type Item struct {
	// Index is the position of the record in the results file.
	Index      int
	ID         string
	Category   graph.Category
	Difficulty graph.Difficulty
	// Answers holds the answer text of each segment present in the record.
	Answers map[validate.Segment]string
}

// Outcome is the graded result of one segment of one item.
type Outcome struct {
	Index      int                 `json:"index"`
	ID         string              `json:"id"`
	RecordID   string              `json:"record_id,omitempty"`
	Category   graph.Category      `json:"category"`
	Difficulty graph.Difficulty    `json:"difficulty"`
	Segment    validate.Segment    `json:"segment"`
	Kind       Kind                `json:"kind"`
	Verdict    bool                `json:"verdict,omitempty"`
	Detail     string              `json:"detail,omitempty"`
	Rates      *validate.EdgeRates `json:"rates,omitempty"`
}

// Report is the product of a scoring pass.
type Report struct {
	Outcomes []Outcome
	Accuracy *Accumulator
}

// Failures returns the outcomes excluded from the counts, in input order.
func (r Report) Failures() []Outcome {
	var out []Outcome
	for _, outcome := range r.Outcomes {
		if !outcome.Kind.Counted() {
			out = append(out, outcome)
		}
	}
	return out
}

// CountKinds tallies outcomes by kind.
func (r Report) CountKinds() map[Kind]int {
	counts := map[Kind]int{}
	for _, outcome := range r.Outcomes {
		counts[outcome.Kind]++
	}
	return counts
}

func classify(result validate.Result) Kind {
	switch {
	case result.Exact:
		return KindCorrect
	case result.Verdict && result.Rough:
		return KindRough
	case result.Unparseable:
		return KindUnparseable
	default:
		return KindIncorrect
	}
}
