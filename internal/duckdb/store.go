package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"graphgrade/internal/graph"
	"graphgrade/internal/runner"
	"graphgrade/internal/score"
)

// ErrRunExists reports that a run id was already saved.
var ErrRunExists = errors.New("duckdb: run already saved")

// SaveRun stores a run, its outcomes and its per-difficulty accuracy rows in
// one transaction.
func SaveRun(ctx context.Context, db *sql.DB, results runner.Results) error {
	if ctx == nil {
		return errors.New("duckdb: context is nil")
	}
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if results.RunID == "" {
		return errors.New("duckdb: run id is required")
	}
	exists, err := RunExists(ctx, db, results.RunID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrRunExists, results.RunID)
	}
	runKey, err := RunKey(results)
	if err != nil {
		return err
	}
	summary, err := CanonicalJSON(results.Summary)
	if err != nil {
		return err
	}

	var repoCommit, repoDirty any
	if results.Repo != nil {
		repoCommit = nullableString(results.Repo.Commit)
		repoDirty = results.Repo.Dirty
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (
		  run_id, run_key, profile, results_file, standard_file, segments, workers,
		  repo_commit, repo_dirty, started_at, finished_at, records, counted, correct, summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID,
		runKey,
		results.Profile,
		results.Inputs.Results,
		results.Inputs.Standard,
		joinSegments(results),
		results.Workers,
		repoCommit,
		repoDirty,
		results.StartedAt.UTC(),
		results.FinishedAt.UTC(),
		results.Summary.Records,
		results.Summary.Counted,
		results.Summary.Correct,
		string(summary),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err := insertOutcomes(ctx, tx, results.RunID, results.Outcomes); err != nil {
		return err
	}
	if err := insertAccuracy(ctx, tx, results.RunID, results.Accuracy); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertOutcomes(ctx context.Context, tx *sql.Tx, runID string, outcomes []score.Outcome) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outcomes (
		  outcome_id, run_id, item_index, result_id, record_id, category, difficulty,
		  segment, kind, verdict, detail, correct_rate, error_rate, half_correct
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare outcomes: %w", err)
	}
	defer stmt.Close()
	for _, outcome := range outcomes {
		var correctRate, errorRate, half any
		if outcome.Rates != nil {
			correctRate = outcome.Rates.Correct
			errorRate = outcome.Rates.Error
			half = outcome.Rates.Half
		}
		if _, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			runID,
			outcome.Index,
			outcome.ID,
			nullableString(outcome.RecordID),
			nullableString(string(outcome.Category)),
			nullableString(string(outcome.Difficulty)),
			nullableString(string(outcome.Segment)),
			string(outcome.Kind),
			outcome.Verdict,
			nullableString(outcome.Detail),
			correctRate,
			errorRate,
			half,
		); err != nil {
			return fmt.Errorf("insert outcome %d: %w", outcome.Index, err)
		}
	}
	return nil
}

func insertAccuracy(ctx context.Context, tx *sql.Tx, runID string, rows []score.Row) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO accuracy (run_id, position, category, difficulty, metric, correct, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare accuracy: %w", err)
	}
	defer stmt.Close()
	for position, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			runID,
			position,
			string(row.Category),
			string(row.Difficulty),
			string(row.Metric),
			row.Correct,
			row.Total,
		); err != nil {
			return fmt.Errorf("insert accuracy %s/%s/%s: %w", row.Category, row.Difficulty, row.Metric, err)
		}
	}
	return nil
}

// RunExists reports whether runID has been saved.
func RunExists(ctx context.Context, db *sql.DB, runID string) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE run_id = ?", runID).Scan(&count); err != nil {
		return false, fmt.Errorf("lookup run: %w", err)
	}
	return count > 0, nil
}

// AccuracyForRun returns the stored per-difficulty accuracy rows of a run in
// report order.
func AccuracyForRun(ctx context.Context, db *sql.DB, runID string) ([]score.Row, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT category, difficulty, metric, correct, total, ratio
		 FROM v_accuracy WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query accuracy: %w", err)
	}
	defer rows.Close()
	var out []score.Row
	for rows.Next() {
		var category, difficulty, metric string
		var row score.Row
		if err := rows.Scan(&category, &difficulty, &metric, &row.Correct, &row.Total, &row.Ratio); err != nil {
			return nil, fmt.Errorf("scan accuracy: %w", err)
		}
		row.Category = graph.Category(category)
		row.Difficulty = graph.Difficulty(difficulty)
		row.Metric = score.Metric(metric)
		out = append(out, row)
	}
	return out, rows.Err()
}

// CategoryTotals sums a run's accuracy over difficulties.
func CategoryTotals(ctx context.Context, db *sql.DB, runID string) ([]score.Row, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT category, metric, correct, total, ratio
		 FROM v_category_totals WHERE run_id = ? ORDER BY category, metric`, runID)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()
	var out []score.Row
	for rows.Next() {
		var category, metric string
		var row score.Row
		if err := rows.Scan(&category, &metric, &row.Correct, &row.Total, &row.Ratio); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		row.Category = graph.Category(category)
		row.Metric = score.Metric(metric)
		out = append(out, row)
	}
	return out, rows.Err()
}

// KindCounts tallies a run's stored outcomes by kind.
func KindCounts(ctx context.Context, db *sql.DB, runID string) (map[score.Kind]int, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM outcomes WHERE run_id = ? GROUP BY kind`, runID)
	if err != nil {
		return nil, fmt.Errorf("query kinds: %w", err)
	}
	defer rows.Close()
	counts := map[score.Kind]int{}
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan kinds: %w", err)
		}
		counts[score.Kind(kind)] = count
	}
	return counts, rows.Err()
}

// nullableString converts an empty string into a SQL NULL.
func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
