package live

import (
	"strings"
	"testing"
	"time"

	"graphgrade/internal/runner"
	"graphgrade/internal/score"
	"graphgrade/internal/testutil"
	"graphgrade/internal/validate"
)

// TestReduceCountsKinds verifies outcomes land in their buckets.
func TestReduceCountsKinds(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := State{}
		for i, kind := range []score.Kind{
			score.KindCorrect,
			score.KindRough,
			score.KindIncorrect,
			score.KindUnparseable,
			score.KindCategoryMismatch,
			score.KindLookupFailed,
			score.KindUnsupported,
		} {
			state = Reduce(state, outcome(i, kind, ""))
		}
		want := KindCounts{Correct: 1, Rough: 1, Incorrect: 1, Unparseable: 1, Mismatch: 1, Excluded: 2}
		if state.Counts != want {
			t.Fatalf("expected %+v, got %+v", want, state.Counts)
		}
		if state.Counts.Counted() != 5 || state.Graded != 7 || len(state.Seen) != 7 {
			t.Fatalf("unexpected totals %+v graded=%d seen=%d", state.Counts, state.Graded, len(state.Seen))
		}
	})
}

// TestReduceSeenCountsRecords verifies several segments of one record count
// once toward progress.
func TestReduceSeenCountsRecords(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := State{}
		first := outcome(3, score.KindCorrect, "")
		second := outcome(3, score.KindIncorrect, "")
		second.Segment = validate.Segment2
		state = Reduce(state, first)
		state = Reduce(state, second)
		if len(state.Seen) != 1 || state.Graded != 2 {
			t.Fatalf("expected one record and two outcomes, got %d/%d", len(state.Seen), state.Graded)
		}
	})
}

func TestReduceCapsRows(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := State{}
		for i := range maxRows + 25 {
			state = Reduce(state, outcome(i, score.KindCorrect, ""))
		}
		if len(state.Rows) != maxRows {
			t.Fatalf("expected %d rows, got %d", maxRows, len(state.Rows))
		}
		if state.Rows[len(state.Rows)-1].Outcome.Index != maxRows+24 {
			t.Fatalf("expected newest row last")
		}
		rows := rowsForState(state, true)
		if rows[0][0] != fmtInt(maxRows+24) {
			t.Fatalf("expected newest row first in table, got %v", rows[0])
		}
	})
}

func TestReduceLastEvent(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, outcome(4, score.KindLookupFailed, "not located"))
		if state.LastEvent != "#4 id=r4 segment3 lookup failed: not located" {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
		state = Reduce(state, outcome(5, score.KindRough, ""))
		if state.LastEvent != "#5 id=r5 segment3 rough" {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
	})
}

// TestApplyEventLifecycle verifies run start, outcomes and run end drive
// the header and summary lines.
func TestApplyEventLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		model := NewModel(nil, Options{NoColor: true})
		model = applyEvent(model, Event{Kind: EventRunStart, RunID: "run-1", Records: 2})
		model = applyEvent(model, Event{Kind: EventOutcome, Outcome: outcome(0, score.KindCorrect, "")})
		model = applyEvent(model, Event{Kind: EventOutcome, Outcome: outcome(1, score.KindIncorrect, "")})
		model = applyEvent(model, Event{Kind: EventRunEnd, Summary: runner.RunSummary{Counted: 2, Correct: 1}})

		header := renderHeader(model.state, time.Now(), true)
		if !strings.Contains(header, "Run run-1 | Records: 2/2") || !strings.Contains(header, "done") {
			t.Fatalf("unexpected header %q", header)
		}
		summary := renderSummary(model.state, true)
		if !strings.Contains(summary, "Correct: 1") || !strings.Contains(summary, "Accuracy: 50.0%") {
			t.Fatalf("unexpected summary %q", summary)
		}
		if model.state.LastEvent != "Run finished: 1 of 2 counted answers correct" {
			t.Fatalf("unexpected footer %q", model.state.LastEvent)
		}
	})
}

// outcome builds a segment3 outcome for testing.
func outcome(index int, kind score.Kind, detail string) score.Outcome {
	return score.Outcome{
		Index:      index,
		ID:         "r" + fmtInt(index),
		Category:   "Cycle",
		Difficulty: "easy",
		Segment:    validate.Segment3,
		Kind:       kind,
		Detail:     detail,
	}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}
