package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"matchpoint/internal/game"
)

var tracer = otel.Tracer("repository.results")

// RoundResult is one finished round as stored in the ledger. Individual
// moves are never stored, only the terminal outcome.
type RoundResult struct {
	ID         int64        `db:"id" json:"id"`
	SessionID  string       `db:"session_id" json:"session_id"`
	Round      int          `db:"round" json:"round"`
	Outcome    game.Outcome `db:"outcome" json:"outcome"`
	Winner     game.Symbol  `db:"winner" json:"winner,omitempty"`
	FinishedAt time.Time    `db:"finished_at" json:"finished_at"`
}

// ResultRepository defines the interface for round ledger operations.
type ResultRepository interface {
	Record(ctx context.Context, result *RoundResult) error
	ListBySession(ctx context.Context, sessionID string) ([]RoundResult, error)
}

type sqliteResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a SQLite-backed ResultRepository.
func NewResultRepository(db *sqlx.DB) ResultRepository {
	return &sqliteResultRepository{db: db}
}

// Record inserts a finished round.
func (r *sqliteResultRepository) Record(ctx context.Context, result *RoundResult) error {
	ctx, span := tracer.Start(ctx, "ResultRepository.Record")
	defer span.End()

	query := `INSERT INTO round_results (session_id, round, outcome, winner, finished_at)
	          VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		result.SessionID, result.Round, result.Outcome, result.Winner, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to record round result: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		result.ID = id
	}
	return nil
}

// ListBySession returns a session's finished rounds in play order.
func (r *sqliteResultRepository) ListBySession(ctx context.Context, sessionID string) ([]RoundResult, error) {
	ctx, span := tracer.Start(ctx, "ResultRepository.ListBySession")
	defer span.End()

	results := []RoundResult{}
	query := `SELECT id, session_id, round, outcome, winner, finished_at
	          FROM round_results WHERE session_id = ? ORDER BY id`
	if err := r.db.SelectContext(ctx, &results, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to list round results: %w", err)
	}
	return results, nil
}
