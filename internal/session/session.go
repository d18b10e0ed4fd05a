package session

import (
	"sync"
	"time"

	"matchpoint/internal/game"
)

// Session binds one game engine to one hot-seat screen. The engine itself
// does no locking, so every operation here runs under the session mutex.
type Session struct {
	ID string

	mu         sync.Mutex
	engine     *game.Engine
	round      int
	lastActive time.Time
}

// MoveResult reports what a submitted move did, together with the snapshot
// taken under the same lock so callers never see a torn state.
type MoveResult struct {
	Accepted  bool
	RoundOver bool
	Round     int
	Snapshot  game.Snapshot
}

func newSession(id string) *Session {
	return &Session{
		ID:         id,
		engine:     game.NewEngine(),
		round:      1,
		lastActive: time.Now(),
	}
}

// SubmitMove forwards the move to the engine. RoundOver is set only on the
// move that ends the round, which is the one moment the result belongs in
// the ledger.
func (s *Session) SubmitMove(index int) MoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	accepted := s.engine.SubmitMove(index)
	return MoveResult{
		Accepted:  accepted,
		RoundOver: accepted && s.engine.RoundOver(),
		Round:     s.round,
		Snapshot:  s.engine.Snapshot(),
	}
}

// StartNewRound resets the board, keeps the scores, and advances the round
// counter.
func (s *Session) StartNewRound() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	s.engine.StartNewRound()
	s.round++
	return s.engine.Snapshot()
}

// StartNewMatch resets scores and round numbering.
func (s *Session) StartNewMatch() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	s.engine.StartNewMatch()
	s.round = 1
	return s.engine.Snapshot()
}

// Snapshot returns the current state without mutating anything.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Round returns the 1-based number of the round currently on the board.
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}
