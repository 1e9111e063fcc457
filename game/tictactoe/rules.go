package tictactoe

import "fmt"

// Scores of a decided board. Every undecided board evaluates to Draw, so
// wins and losses are always the most extreme scores.
const (
	Win  = 10
	Loss = -Win
	Draw = 0
)

// Rules scores boards from the perspective of Player, the maximizing side.
type Rules struct {
	Player   Mark
	Opponent Mark
}

func NewRules(player Mark) (Rules, error) {
	switch player {
	case X:
		return Rules{Player: X, Opponent: O}, nil
	case O:
		return Rules{Player: O, Opponent: X}, nil
	}
	return Rules{}, fmt.Errorf("%w: player must be %q or %q", ErrInvalidMark, X, O)
}

// Mark returns the mark placed by the maximizing or minimizing side.
func (r Rules) Mark(maximizing bool) Mark {
	if maximizing {
		return r.Player
	}
	return r.Opponent
}

// Successors places the side's mark on every empty cell, row by row.
func (r Rules) Successors(b Board, maximizing bool) []Board {
	mark := r.Mark(maximizing)
	successors := make([]Board, 0, Size*Size)
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b[i][j] != Empty {
				continue
			}
			next := b
			next[i][j] = mark
			successors = append(successors, next)
		}
	}
	return successors
}

func (r Rules) Evaluate(b Board) int {
	switch b.Winner() {
	case r.Player:
		return Win
	case r.Opponent:
		return Loss
	}
	return Draw
}

func (r Rules) Terminal(b Board) bool {
	return b.Winner() != Empty || b.Full()
}
