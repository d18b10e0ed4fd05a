package proto

import "matchpoint/internal/game"

// Command types accepted over the state stream.
const (
	TypeMove     = "move"
	TypeNewRound = "new_round"
	TypeNewMatch = "new_match"
)

// Server message types.
const (
	TypeState = "state"
	TypeError = "error"
)

// ClientToServerMessage is a command from the screen driving the board.
type ClientToServerMessage struct {
	Type  string `json:"type" validate:"required,oneof=move new_round new_match"`
	Index *int   `json:"index,omitempty" validate:"omitempty,gte=0,lte=8"`
}

// ServerToClientMessage carries a state snapshot or an error back to every
// socket attached to the session.
type ServerToClientMessage struct {
	Type  string         `json:"type"`
	Error string         `json:"error,omitempty"`
	State *game.Snapshot `json:"state,omitempty"`
}
