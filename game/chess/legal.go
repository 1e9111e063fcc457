package chess

import (
	notnil "github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// MateScore is the score of a checkmate, beyond any reachable material sum.
const MateScore = 1_000_000

var pieceTypeValues = map[notnil.PieceType]int{
	notnil.King:   10000,
	notnil.Queen:  900,
	notnil.Rook:   500,
	notnil.Bishop: 330,
	notnil.Knight: 320,
	notnil.Pawn:   100,
}

// LegalRules plays full chess through github.com/notnil/chess. Positions are
// immutable; the side to move is part of the position, so white maximizes
// and the maximizing flag only has to agree with it.
type LegalRules struct{}

// StartingPosition returns the standard opening position.
func StartingPosition() *notnil.Position {
	return notnil.NewGame().Position()
}

// ParseFEN reads a position in Forsyth-Edwards notation.
func ParseFEN(fen string) (*notnil.Position, error) {
	opt, err := notnil.FEN(fen)
	if err != nil {
		return nil, err
	}
	return notnil.NewGame(opt).Position(), nil
}

func (LegalRules) Successors(pos *notnil.Position, maximizing bool) []*notnil.Position {
	if maximizing != (pos.Turn() == notnil.White) {
		log.Warn().Msgf("searching with %v to move as maximizing=%t", pos.Turn(), maximizing)
	}
	moves := pos.ValidMoves()
	successors := make([]*notnil.Position, 0, len(moves))
	for _, move := range moves {
		successors = append(successors, pos.Update(move))
	}
	return successors
}

func (LegalRules) Terminal(pos *notnil.Position) bool {
	return pos.Status() != notnil.NoMethod
}

func (LegalRules) Evaluate(pos *notnil.Position) int {
	switch pos.Status() {
	case notnil.Checkmate:
		if pos.Turn() == notnil.White {
			return -MateScore
		}
		return MateScore
	case notnil.Stalemate:
		return 0
	}

	score := 0
	for _, piece := range pos.Board().SquareMap() {
		value := pieceTypeValues[piece.Type()]
		if piece.Color() == notnil.Black {
			value = -value
		}
		score += value
	}
	return score
}

// LegalMove finds the move leading from before to after.
func LegalMove(before, after *notnil.Position) (*notnil.Move, bool) {
	target := after.String()
	for _, move := range before.ValidMoves() {
		if before.Update(move).String() == target {
			return move, true
		}
	}
	return nil, false
}
