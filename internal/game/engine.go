package game

// Score tallies round results across one match. Counters only grow until
// a new match resets them.
type Score struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

// Snapshot is a read-only view of the engine handed to presentation code.
// Outcome and Winner always agree with what Evaluate(Board) would return.
type Snapshot struct {
	Board   Board   `json:"board"`
	Turn    Symbol  `json:"turn"`
	Outcome Outcome `json:"outcome"`
	Winner  Symbol  `json:"winner,omitempty"`
	Scores  Score   `json:"scores"`
	Starter Symbol  `json:"starter"`
}

// Engine owns the authoritative state of one hot-seat match: the board,
// whose turn it is, the round outcome, the running scores, and which symbol
// opened the current round. It does no locking; callers serialize access.
type Engine struct {
	board   Board
	turn    Symbol
	outcome Outcome
	winner  Symbol
	scores  Score
	starter Symbol
}

// NewEngine returns an engine holding a fresh match, X to move.
func NewEngine() *Engine {
	e := &Engine{}
	e.StartNewMatch()
	return e
}

// SubmitMove places the current turn's symbol at index and reports whether
// the move was accepted. Moves on an occupied cell, after the round has
// ended, or outside the board are silent no-ops, never errors: the caller
// observes the result through Snapshot either way.
func (e *Engine) SubmitMove(index int) bool {
	if e.outcome != InProgress {
		return false
	}
	if index < 0 || index >= len(e.board) {
		return false
	}
	if e.board[index] != None {
		return false
	}

	e.board[index] = e.turn
	e.turn = Opponent(e.turn)
	e.outcome, e.winner = Evaluate(e.board)

	switch e.outcome {
	case Won:
		if e.winner == PlayerX {
			e.scores.XWins++
		} else {
			e.scores.OWins++
		}
	case Draw:
		e.scores.Draws++
	}
	return true
}

// StartNewRound clears the board for the next round, keeping the scores.
// The symbol that did not open the previous round opens this one.
func (e *Engine) StartNewRound() {
	e.board = Board{}
	e.starter = Opponent(e.starter)
	e.turn = e.starter
	e.outcome = InProgress
	e.winner = None
}

// StartNewMatch zeroes the scores and begins a first round. The starter is
// primed to O so the round reset's alternation lands on X: a fresh match
// always opens with X regardless of prior history.
func (e *Engine) StartNewMatch() {
	e.scores = Score{}
	e.starter = PlayerO
	e.StartNewRound()
}

// RoundOver reports whether the current round has reached a win or draw.
func (e *Engine) RoundOver() bool {
	return e.outcome != InProgress
}

// Snapshot returns the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Board:   e.board,
		Turn:    e.turn,
		Outcome: e.outcome,
		Winner:  e.winner,
		Scores:  e.scores,
		Starter: e.starter,
	}
}
