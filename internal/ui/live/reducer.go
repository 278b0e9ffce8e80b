package live

import (
	"fmt"

	"graphgrade/internal/score"
)

// Reduce applies a graded outcome to the UI state.
func Reduce(state State, outcome score.Outcome) State {
	if state.Seen == nil {
		state.Seen = map[int]struct{}{}
	}
	state.Seen[outcome.Index] = struct{}{}
	state.Graded++
	state.Counts = countKind(state.Counts, outcome.Kind)

	row := OutcomeRow{Index: state.Graded - 1, Outcome: outcome}
	state.Rows = append(state.Rows, row)
	if len(state.Rows) > maxRows {
		state.Rows = append([]OutcomeRow(nil), state.Rows[len(state.Rows)-maxRows:]...)
	}
	state.LastEvent = formatLastEvent(outcome)
	return state
}

// countKind adds one outcome to its bucket.
func countKind(counts KindCounts, kind score.Kind) KindCounts {
	switch kind {
	case score.KindCorrect:
		counts.Correct++
	case score.KindRough:
		counts.Rough++
	case score.KindIncorrect:
		counts.Incorrect++
	case score.KindUnparseable:
		counts.Unparseable++
	case score.KindCategoryMismatch:
		counts.Mismatch++
	default:
		counts.Excluded++
	}
	return counts
}

// formatLastEvent creates a short footer message for the outcome.
func formatLastEvent(outcome score.Outcome) string {
	label := fmt.Sprintf("#%d id=%s", outcome.Index, outcome.ID)
	if outcome.Segment != "" {
		label += " " + string(outcome.Segment)
	}
	switch outcome.Kind {
	case score.KindCorrect, score.KindRough, score.KindIncorrect:
		return label + " " + string(outcome.Kind)
	default:
		if outcome.Detail != "" {
			return label + " " + kindLabel(outcome.Kind) + ": " + outcome.Detail
		}
		return label + " " + kindLabel(outcome.Kind)
	}
}
