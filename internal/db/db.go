package db

import (
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

// Connect opens the in-memory SQLite database holding the round ledger.
// Nothing here is meant to survive a restart; the ledger lives and dies
// with the process.
func Connect() (*sqlx.DB, error) {
	pool, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	// Every connection to :memory: gets its own database, so the pool must
	// stay at a single connection.
	pool.SetMaxOpenConns(1)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping in-memory database: %w", err)
	}

	return pool, nil
}

// Initialize creates the schema.
func Initialize(pool *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS round_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		round INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		winner TEXT NOT NULL DEFAULT '',
		finished_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_round_results_session ON round_results(session_id);`

	if _, err := pool.Exec(schema); err != nil {
		return fmt.Errorf("failed to create round_results table: %w", err)
	}

	return nil
}
