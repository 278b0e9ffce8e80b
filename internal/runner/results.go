package runner

import (
	"time"

	"graphgrade/internal/score"
	"graphgrade/internal/validate"
)

// Results is the persisted outcome of one scoring run.
type Results struct {
	RunID      string             `json:"run_id"`
	Repo       *RepoMetadata      `json:"repo,omitempty"`
	Profile    string             `json:"profile"`
	Inputs     InputFiles         `json:"inputs"`
	Segments   []validate.Segment `json:"segments"`
	Workers    int                `json:"workers"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Outcomes   []score.Outcome    `json:"outcomes"`
	Accuracy   []score.Row        `json:"accuracy"`
	Totals     []score.Row        `json:"totals"`
	EdgeRates  []score.RateRow    `json:"edge_rates,omitempty"`
	Failures   []score.Outcome    `json:"failures"`
	Summary    RunSummary         `json:"summary"`
}

// RepoMetadata is the git state of the project root at scoring time.
type RepoMetadata struct {
	Name   string `json:"name"`
	VCS    string `json:"vcs"`
	Commit string `json:"commit"`
	Branch string `json:"branch"`
	Dirty  bool   `json:"dirty"`

	// InputsModified lists input files with uncommitted changes.
	InputsModified []string `json:"inputs_modified,omitempty"`
}

type InputFiles struct {
	Results  string `json:"results"`
	Standard string `json:"standard"`
}

type RunSummary struct {
	Records  int                `json:"records"`
	Graded   int                `json:"graded"`
	Counted  int                `json:"counted"`
	Correct  int                `json:"correct"`
	Accuracy float64            `json:"accuracy"`
	Kinds    map[score.Kind]int `json:"kinds"`
}

// summarize aggregates outcomes into a run summary.
func summarize(records int, outcomes []score.Outcome) RunSummary {
	summary := RunSummary{
		Records: records,
		Graded:  len(outcomes),
		Kinds:   map[score.Kind]int{},
	}
	for _, outcome := range outcomes {
		summary.Kinds[outcome.Kind]++
		if !outcome.Kind.Counted() {
			continue
		}
		summary.Counted++
		if outcome.Kind == score.KindCorrect {
			summary.Correct++
		}
	}
	if summary.Counted > 0 {
		summary.Accuracy = float64(summary.Correct) / float64(summary.Counted)
	}
	return summary
}

// Ratio returns the ratio for a category, difficulty and metric, and
// whether that bucket was seen. An empty difficulty selects category totals.
func (r Results) Ratio(row score.Row) (float64, bool) {
	rows := r.Accuracy
	if row.Difficulty == "" {
		rows = r.Totals
	}
	for _, candidate := range rows {
		if candidate.Category == row.Category && candidate.Difficulty == row.Difficulty && candidate.Metric == row.Metric {
			return candidate.Ratio, true
		}
	}
	return 0, false
}
