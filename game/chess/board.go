package chess

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Size  = 8
	Empty = '.'
)

var (
	ErrInvalidBoard  = errors.New("invalid board")
	ErrInvalidSquare = errors.New("invalid square")
	ErrEmptySquare   = errors.New("no piece on square")
)

// Board holds white pieces in upper case and black pieces in lower case.
// Row 0 is rank 8. Board is a value type, so assignment copies it.
type Board [Size][Size]byte

var startingRows = [Size]string{
	"rnbqkbnr",
	"pppppppp",
	"........",
	"........",
	"........",
	"........",
	"PPPPPPPP",
	"RNBQKBNR",
}

func NewBoard() Board {
	b, err := ParseRows(startingRows[:])
	if err != nil {
		panic(err)
	}
	return b
}

// Parse reads eight rows separated by '/', rank 8 first.
func Parse(s string) (Board, error) {
	return ParseRows(strings.Split(s, "/"))
}

func ParseRows(rows []string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Size, len(rows))
	}
	for i, row := range rows {
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has %d squares", ErrInvalidBoard, i+1, len(row))
		}
		for j := 0; j < Size; j++ {
			c := row[j]
			if c != Empty && !strings.ContainsRune("KQRBNPkqrbnp", rune(c)) {
				return b, fmt.Errorf("%w: unknown piece %q", ErrInvalidBoard, c)
			}
			b[i][j] = c
		}
	}
	return b, nil
}

func (b Board) String() string {
	rows := make([]string, Size)
	for i, row := range b {
		rows[i] = string(row[:])
	}
	return strings.Join(rows, "/")
}

func IsWhite(piece byte) bool {
	return piece >= 'A' && piece <= 'Z'
}

func IsBlack(piece byte) bool {
	return piece >= 'a' && piece <= 'z'
}

// Square converts algebraic notation such as "e2" to a row and column.
func Square(name string) (row, col int, err error) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return Size - int(name[1]-'0'), int(name[0] - 'a'), nil
}

func SquareName(row, col int) string {
	return fmt.Sprintf("%c%d", 'a'+col, Size-row)
}

// Move returns a copy of b with the piece on from moved to to. Only the
// squares are checked, not the legality of the move.
func (b Board) Move(from, to string) (Board, error) {
	fr, fc, err := Square(from)
	if err != nil {
		return b, err
	}
	tr, tc, err := Square(to)
	if err != nil {
		return b, err
	}
	if b[fr][fc] == Empty {
		return b, fmt.Errorf("%w: %s", ErrEmptySquare, from)
	}
	b[tr][tc] = b[fr][fc]
	b[fr][fc] = Empty
	return b, nil
}

// DiffMove recovers the single piece move that turns before into after.
func DiffMove(before, after Board) (from, to string, ok bool) {
	fromRow, fromCol := -1, -1
	toRow, toCol := -1, -1
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if before[i][j] == after[i][j] {
				continue
			}
			if after[i][j] == Empty {
				fromRow, fromCol = i, j
			} else {
				toRow, toCol = i, j
			}
		}
	}
	if fromRow < 0 || toRow < 0 {
		return "", "", false
	}
	return SquareName(fromRow, fromCol), SquareName(toRow, toCol), true
}
