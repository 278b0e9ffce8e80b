// Package validate checks extracted answers against graph facts.
package validate

import (
	"errors"

	"graphgrade/internal/extract"
	"graphgrade/internal/graph"
)

// Result is the verdict of one validator on one answer.
type Result struct {
	// Exact is verdict agreement plus structural validity, or plain
	// correctness for categories without a yes/no verdict.
	Exact bool
	// Rough is verdict-only agreement; meaningful only when Verdict is set.
	Rough   bool
	Verdict bool
	// Unparseable marks answers the extractor could not read at all.
	Unparseable bool
	Detail      string
	Rates       *EdgeRates
}

// Validator grades an answer for one segment of a graph record.
type Validator interface {
	Validate(answer string, record graph.Record) Result
}

// Func adapts a function to Validator.
type Func func(answer string, record graph.Record) Result

func (f Func) Validate(answer string, record graph.Record) Result {
	return f(answer, record)
}

func correct(detail string) Result {
	return Result{Exact: true, Detail: detail}
}

func incorrect(detail string) Result {
	return Result{Detail: detail}
}

// fromError turns an extractor failure into a result. Unreadable answers are
// flagged; other failures are plain wrong answers.
func fromError(err error) Result {
	if errors.Is(err, extract.ErrUnparseable) {
		return Result{Unparseable: true, Detail: err.Error()}
	}
	return Result{Detail: err.Error()}
}
