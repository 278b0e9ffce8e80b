// Package duckdbtesting builds run stores for tests.
package duckdbtesting

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"graphgrade/internal/duckdb"
	"graphgrade/internal/runner"
	"graphgrade/internal/testutil"
)

const timeout = 5 * time.Second

// OpenStore opens an in-memory run store with the schema applied. It is
// closed when the test ends.
func OpenStore(t testing.TB) *sql.DB {
	t.Helper()
	db, err := duckdb.Open(testutil.Context(t, timeout), ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SaveRuns stores each run, failing the test on the first error.
func SaveRuns(t testing.TB, db *sql.DB, runs ...runner.Results) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	for _, run := range runs {
		if err := duckdb.SaveRun(ctx, db, run); err != nil {
			t.Fatalf("save run %s: %v", run.RunID, err)
		}
	}
}

// StoreFile writes a store file holding runs under a temp dir and returns
// its path. The database is closed so other code can open the file.
func StoreFile(t testing.TB, runs ...runner.Results) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.duckdb")
	db, err := duckdb.Open(testutil.Context(t, timeout), path)
	if err != nil {
		t.Fatalf("open store file: %v", err)
	}
	SaveRuns(t, db, runs...)
	if err := db.Close(); err != nil {
		t.Fatalf("close store file: %v", err)
	}
	return path
}
