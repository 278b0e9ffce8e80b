// Package duckdb persists scoring runs, per-answer outcomes and accuracy
// tallies in a DuckDB database.
package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

//go:embed schema.sql
var schemaDDL string

// SchemaObjects lists the tables and views a run store must hold.
var SchemaObjects = []string{"runs", "outcomes", "accuracy", "v_accuracy", "v_category_totals"}

// Open opens the DuckDB database at path and applies the schema. Use
// ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the run store tables and views when missing and
// checks that every one of SchemaObjects exists afterwards. It is safe to
// call on a store that already holds runs.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	var missing []string
	for _, name := range SchemaObjects {
		var count int
		if err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", name).Scan(&count); err != nil {
			return fmt.Errorf("inspect schema: %w", err)
		}
		if count == 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("duckdb: schema is missing %s", strings.Join(missing, ", "))
	}
	return nil
}
