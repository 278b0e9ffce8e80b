package live

import (
	"graphgrade/internal/runner"
	"graphgrade/internal/score"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventOutcome delivers one graded answer.
	EventOutcome
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind    EventKind
	RunID   string
	Records int
	Outcome score.Outcome
	Summary runner.RunSummary
}
