package live

import (
	"time"

	"graphgrade/internal/score"
)

// maxRows bounds the recent-answer table.
const maxRows = 200

// OutcomeRow holds UI state for one graded answer.
type OutcomeRow struct {
	Index   int
	Outcome score.Outcome
}

// KindCounts aggregates graded answers by outcome bucket.
type KindCounts struct {
	Correct     int
	Rough       int
	Incorrect   int
	Unparseable int
	Mismatch    int
	Excluded    int
}

// Counted is the number of answers that contribute to accuracy.
func (c KindCounts) Counted() int {
	return c.Correct + c.Rough + c.Incorrect + c.Unparseable + c.Mismatch
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	Records   int
	StartedAt time.Time
	Finished  bool
	// Seen holds the record indices that produced at least one outcome.
	Seen      map[int]struct{}
	Graded    int
	Rows      []OutcomeRow
	Counts    KindCounts
	LastEvent string
}
