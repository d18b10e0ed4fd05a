package game

// Symbol represents the mark of a player (X, O) or an empty cell.
type Symbol string

const (
	None    Symbol = ""
	PlayerX Symbol = "X"
	PlayerO Symbol = "O"
)

// Outcome is the state of a single round, always derivable from the board.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	Won        Outcome = "won"
	Draw       Outcome = "draw"
)

// Board is the 3x3 grid stored row-major: index = row*3 + col.
type Board [9]Symbol

// Lines are the eight winning index triples: three rows, three columns,
// two diagonals. Evaluation order is fixed; the first completed line wins.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other player's symbol.
func Opponent(s Symbol) Symbol {
	if s == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Winner returns the symbol owning a completed line, or None.
func Winner(b Board) Symbol {
	for _, line := range Lines {
		a := b[line[0]]
		if a != None && a == b[line[1]] && a == b[line[2]] {
			return a
		}
	}
	return None
}

// IsFull reports whether every cell is occupied.
func IsFull(b Board) bool {
	for _, cell := range b {
		if cell == None {
			return false
		}
	}
	return true
}

// Evaluate computes the round outcome for a board: a won line beats a full
// board, a full board with no won line is a draw, anything else is still
// in progress.
func Evaluate(b Board) (Outcome, Symbol) {
	if winner := Winner(b); winner != None {
		return Won, winner
	}
	if IsFull(b) {
		return Draw, None
	}
	return InProgress, None
}
