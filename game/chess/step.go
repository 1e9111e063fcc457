package chess

// PieceValues is the material table, positive for white and negative for
// black.
var PieceValues = map[byte]int{
	'K': 10000, 'Q': 900, 'R': 500, 'B': 330, 'N': 320, 'P': 100,
	'k': -10000, 'q': -900, 'r': -500, 'b': -330, 'n': -320, 'p': -100,
}

// Material sums the piece values on b.
func Material(b Board) int {
	score := 0
	for _, row := range b {
		for _, piece := range row {
			score += PieceValues[piece]
		}
	}
	return score
}

var stepDirections = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, -1}, {1, -1}, {-1, 1},
}

// StepRules is a simplified chess: pawns push and capture as usual, every
// other piece steps one square in any of eight directions. There is no
// check, castling, promotion or en passant, and the game only ends through
// the depth budget. White maximizes.
type StepRules struct{}

func (StepRules) Evaluate(b Board) int {
	return Material(b)
}

// Successors enumerates pieces row by row, rank 8 first.
func (StepRules) Successors(b Board, maximizing bool) []Board {
	var successors []Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			if !(maximizing && IsWhite(piece)) && !(!maximizing && IsBlack(piece)) {
				continue
			}
			if piece == 'P' || piece == 'p' {
				successors = append(successors, pawnSteps(b, row, col)...)
			} else {
				successors = append(successors, pieceSteps(b, row, col)...)
			}
		}
	}
	return successors
}

func pawnSteps(b Board, row, col int) []Board {
	piece := b[row][col]
	direction, startRow := -1, 6
	if IsBlack(piece) {
		direction, startRow = 1, 1
	}

	next := row + direction
	if next < 0 || next >= Size {
		return nil
	}

	var successors []Board
	if b[next][col] == Empty {
		successors = append(successors, step(b, row, col, next, col))

		double := row + 2*direction
		if row == startRow && b[double][col] == Empty {
			successors = append(successors, step(b, row, col, double, col))
		}
	}

	for _, dc := range [2]int{-1, 1} {
		c := col + dc
		if c < 0 || c >= Size {
			continue
		}
		target := b[next][c]
		if target != Empty && IsBlack(target) != IsBlack(piece) {
			successors = append(successors, step(b, row, col, next, c))
		}
	}
	return successors
}

func pieceSteps(b Board, row, col int) []Board {
	piece := b[row][col]
	var successors []Board
	for _, d := range stepDirections {
		r, c := row+d[0], col+d[1]
		if r < 0 || r >= Size || c < 0 || c >= Size {
			continue
		}
		target := b[r][c]
		if target == Empty || IsBlack(target) != IsBlack(piece) {
			successors = append(successors, step(b, row, col, r, c))
		}
	}
	return successors
}

// step returns a copy of b with the piece moved; b itself is not modified.
func step(b Board, fromRow, fromCol, toRow, toCol int) Board {
	b[toRow][toCol] = b[fromRow][fromCol]
	b[fromRow][fromCol] = Empty
	return b
}
