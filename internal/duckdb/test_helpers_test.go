package duckdb_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"graphgrade/internal/duckdb/testing"
	"graphgrade/internal/testutil"
)

// openTestDB opens an in-memory store with the schema applied.
func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	return duckdbtesting.OpenStore(t), testutil.Context(t, 2*time.Second)
}

// queryInt returns a single integer value from the database.
func queryInt(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return out
}
