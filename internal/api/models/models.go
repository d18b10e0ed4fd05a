package models

import (
	"matchpoint/internal/game"
	"matchpoint/internal/repository"
)

// MoveRequest is the body of a move submission. Index is a pointer so that
// cell 0 survives the required check.
type MoveRequest struct {
	Index *int `json:"index" binding:"required,gte=0,lte=8"`
}

// SessionResponse is returned when a session is created or read.
type SessionResponse struct {
	SessionID string        `json:"session_id"`
	State     game.Snapshot `json:"state"`
}

// MoveResponse reports whether the move was accepted along with the
// resulting state. A rejected move still carries the unchanged state.
type MoveResponse struct {
	Accepted bool          `json:"accepted"`
	State    game.Snapshot `json:"state"`
}

// ResultsResponse lists a session's finished rounds.
type ResultsResponse struct {
	SessionID string                   `json:"session_id"`
	Results   []repository.RoundResult `json:"results"`
}
