package game

import (
	"testing"
)

func TestWinner(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  Symbol
	}{
		{
			name:  "no winner - empty board",
			board: Board{},
			want:  None,
		},
		{
			name: "no winner - partial board",
			board: Board{
				PlayerX, None, None,
				None, PlayerO, None,
				None, None, None,
			},
			want: None,
		},
		{
			name: "X wins - first row",
			board: Board{
				PlayerX, PlayerX, PlayerX,
				None, PlayerO, None,
				None, None, PlayerO,
			},
			want: PlayerX,
		},
		{
			name: "O wins - second column",
			board: Board{
				PlayerX, PlayerO, None,
				PlayerX, PlayerO, None,
				None, PlayerO, None,
			},
			want: PlayerO,
		},
		{
			name: "X wins - first column",
			board: Board{
				PlayerX, PlayerO, None,
				PlayerX, PlayerO, None,
				PlayerX, None, None,
			},
			want: PlayerX,
		},
		{
			name: "X wins - main diagonal",
			board: Board{
				PlayerX, None, None,
				None, PlayerX, None,
				None, None, PlayerX,
			},
			want: PlayerX,
		},
		{
			name: "O wins - anti-diagonal",
			board: Board{
				None, None, PlayerO,
				None, PlayerO, None,
				PlayerO, None, None,
			},
			want: PlayerO,
		},
		{
			name: "no winner - full board",
			board: Board{
				PlayerX, PlayerO, PlayerX,
				PlayerX, PlayerO, PlayerO,
				PlayerO, PlayerX, PlayerX,
			},
			want: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Winner(tt.board); got != tt.want {
				t.Errorf("Winner() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{
			name:  "empty board is not full",
			board: Board{},
			want:  false,
		},
		{
			name: "partial board is not full",
			board: Board{
				PlayerX, None, None,
				None, PlayerO, None,
				None, None, None,
			},
			want: false,
		},
		{
			name: "full board is full",
			board: Board{
				PlayerX, PlayerO, PlayerX,
				PlayerX, PlayerO, PlayerO,
				PlayerO, PlayerX, PlayerX,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFull(tt.board); got != tt.want {
				t.Errorf("IsFull() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		board      Board
		wantResult Outcome
		wantWinner Symbol
	}{
		{
			name:       "empty board is in progress",
			board:      Board{},
			wantResult: InProgress,
			wantWinner: None,
		},
		{
			name: "won line on a full board beats draw",
			board: Board{
				PlayerX, PlayerX, PlayerX,
				PlayerO, PlayerO, PlayerX,
				PlayerO, PlayerX, PlayerO,
			},
			wantResult: Won,
			wantWinner: PlayerX,
		},
		{
			name: "full board with no line is a draw",
			board: Board{
				PlayerX, PlayerO, PlayerX,
				PlayerX, PlayerO, PlayerO,
				PlayerO, PlayerX, PlayerX,
			},
			wantResult: Draw,
			wantWinner: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, winner := Evaluate(tt.board)
			if outcome != tt.wantResult || winner != tt.wantWinner {
				t.Errorf("Evaluate() got = (%v, %v), want (%v, %v)", outcome, winner, tt.wantResult, tt.wantWinner)
			}
		})
	}
}

func TestOpponent(t *testing.T) {
	if got := Opponent(PlayerX); got != PlayerO {
		t.Errorf("Opponent(X) got = %v, want O", got)
	}
	if got := Opponent(PlayerO); got != PlayerX {
		t.Errorf("Opponent(O) got = %v, want X", got)
	}
}
