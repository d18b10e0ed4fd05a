package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"matchpoint/internal/game"
	"matchpoint/internal/repository"
	"matchpoint/internal/session"
)

var (
	tracer = otel.Tracer("service.game")
	meter  = otel.Meter("service.game")
)

// ErrSessionNotFound is returned when no live session has the given id.
var ErrSessionNotFound = errors.New("session not found")

// Notifier receives a snapshot after every state change so attached
// screens can re-render. The websocket hub implements it.
type Notifier interface {
	Publish(sessionID string, snap game.Snapshot)
}

// GameService is the orchestration layer between transports and the engine:
// it resolves sessions, runs engine operations, writes finished rounds to
// the ledger, and pushes snapshots to stream subscribers.
type GameService interface {
	CreateSession(ctx context.Context) (string, game.Snapshot, error)
	State(ctx context.Context, sessionID string) (game.Snapshot, error)
	SubmitMove(ctx context.Context, sessionID string, index int) (game.Snapshot, bool, error)
	StartNewRound(ctx context.Context, sessionID string) (game.Snapshot, error)
	StartNewMatch(ctx context.Context, sessionID string) (game.Snapshot, error)
	Results(ctx context.Context, sessionID string) ([]repository.RoundResult, error)
}

type gameService struct {
	sessions *session.Manager
	results  repository.ResultRepository
	notifier Notifier

	sessionsCreated metric.Int64Counter
	movesAccepted   metric.Int64Counter
	movesRejected   metric.Int64Counter
	roundsFinished  metric.Int64Counter
}

// NewGameService creates a GameService. notifier may be nil for callers
// that have no state stream, e.g. tests.
func NewGameService(sessions *session.Manager, results repository.ResultRepository, notifier Notifier) GameService {
	s := &gameService{
		sessions: sessions,
		results:  results,
		notifier: notifier,
	}
	s.sessionsCreated = counter("matchpoint.sessions.created")
	s.movesAccepted = counter("matchpoint.moves.accepted")
	s.movesRejected = counter("matchpoint.moves.rejected")
	s.roundsFinished = counter("matchpoint.rounds.finished")
	return s
}

func counter(name string) metric.Int64Counter {
	c, err := meter.Int64Counter(name)
	if err != nil {
		slog.Warn("failed to create counter", "metric.name", name, "error", err)
	}
	return c
}

// CreateSession registers a fresh hot-seat session.
func (s *gameService) CreateSession(ctx context.Context) (string, game.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "GameService.CreateSession")
	defer span.End()

	sess := s.sessions.Create()
	span.SetAttributes(attribute.String("session.id", sess.ID))
	s.sessionsCreated.Add(ctx, 1)

	return sess.ID, sess.Snapshot(), nil
}

// State returns the current snapshot of a session.
func (s *gameService) State(ctx context.Context, sessionID string) (game.Snapshot, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return game.Snapshot{}, ErrSessionNotFound
	}
	return sess.Snapshot(), nil
}

// SubmitMove plays index for the session's current turn. Illegal moves are
// not errors: the engine leaves state untouched and accepted comes back
// false. Only session resolution can fail.
func (s *gameService) SubmitMove(ctx context.Context, sessionID string, index int) (game.Snapshot, bool, error) {
	ctx, span := tracer.Start(ctx, "GameService.SubmitMove", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int("move.index", index),
	))
	defer span.End()

	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		span.SetStatus(codes.Error, "session not found")
		return game.Snapshot{}, false, ErrSessionNotFound
	}

	res := sess.SubmitMove(index)
	span.SetAttributes(attribute.Bool("move.accepted", res.Accepted))

	if !res.Accepted {
		slog.DebugContext(ctx, "move rejected", "session.id", sessionID, "move.index", index)
		s.movesRejected.Add(ctx, 1)
		return res.Snapshot, false, nil
	}

	s.movesAccepted.Add(ctx, 1)

	if res.RoundOver {
		s.roundsFinished.Add(ctx, 1)
		record := &repository.RoundResult{
			SessionID:  sessionID,
			Round:      res.Round,
			Outcome:    res.Snapshot.Outcome,
			Winner:     res.Snapshot.Winner,
			FinishedAt: time.Now().UTC(),
		}
		if err := s.results.Record(ctx, record); err != nil {
			// The round still counted; the ledger is best effort.
			slog.ErrorContext(ctx, "failed to record round result", "session.id", sessionID, "error", err)
			span.RecordError(err)
		}
	}

	s.notify(sessionID, res.Snapshot)
	return res.Snapshot, true, nil
}

// StartNewRound clears the board keeping scores.
func (s *gameService) StartNewRound(ctx context.Context, sessionID string) (game.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "GameService.StartNewRound", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		span.SetStatus(codes.Error, "session not found")
		return game.Snapshot{}, ErrSessionNotFound
	}

	snap := sess.StartNewRound()
	s.notify(sessionID, snap)
	return snap, nil
}

// StartNewMatch resets scores and starts over.
func (s *gameService) StartNewMatch(ctx context.Context, sessionID string) (game.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "GameService.StartNewMatch", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		span.SetStatus(codes.Error, "session not found")
		return game.Snapshot{}, ErrSessionNotFound
	}

	snap := sess.StartNewMatch()
	s.notify(sessionID, snap)
	return snap, nil
}

// Results returns the session's round ledger.
func (s *gameService) Results(ctx context.Context, sessionID string) ([]repository.RoundResult, error) {
	ctx, span := tracer.Start(ctx, "GameService.Results", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	if _, ok := s.sessions.Get(sessionID); !ok {
		span.SetStatus(codes.Error, "session not found")
		return nil, ErrSessionNotFound
	}

	return s.results.ListBySession(ctx, sessionID)
}

func (s *gameService) notify(sessionID string, snap game.Snapshot) {
	if s.notifier != nil {
		s.notifier.Publish(sessionID, snap)
	}
}
