package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

type Mark byte

const (
	Empty Mark = '_'
	X     Mark = 'x'
	O     Mark = 'o'
)

const Size = 3

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrInvalidCell  = errors.New("invalid cell")
	ErrCellTaken    = errors.New("cell is already taken")
)

// Board is a value type: assigning a Board copies every cell.
type Board [Size][Size]Mark

func NewBoard() Board {
	var b Board
	for i := range b {
		for j := range b[i] {
			b[i][j] = Empty
		}
	}
	return b
}

// ParseMark accepts x, o and _ in either case; '.' is read as empty.
func ParseMark(s string) (Mark, error) {
	switch strings.ToLower(s) {
	case "x":
		return X, nil
	case "o":
		return O, nil
	case "_", ".":
		return Empty, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrInvalidMark, s)
}

// Parse reads a board written row by row, e.g. "xx_/oo_/___". Slashes and
// whitespace between cells are ignored.
func Parse(s string) (Board, error) {
	var cells []Mark
	for _, r := range s {
		if r == '/' || r == ' ' || r == '\n' || r == '\t' {
			continue
		}
		m, err := ParseMark(string(r))
		if err != nil {
			return Board{}, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
		}
		cells = append(cells, m)
	}
	if len(cells) != Size*Size {
		return Board{}, fmt.Errorf("%w: want %d cells, got %d", ErrInvalidBoard, Size*Size, len(cells))
	}

	var b Board
	for i, m := range cells {
		b[i/Size][i%Size] = m
	}
	return b, nil
}

func (b Board) String() string {
	var sb strings.Builder
	for i, row := range b {
		if i > 0 {
			sb.WriteByte('/')
		}
		for _, m := range row {
			sb.WriteByte(byte(m))
		}
	}
	return sb.String()
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	for _, row := range b {
		for _, m := range row {
			if m == Empty {
				return false
			}
		}
	}
	return true
}

// Winner returns the mark owning a complete line, or Empty. Rows are checked
// first, then columns, then the two diagonals.
func (b Board) Winner() Mark {
	for _, line := range b.lines() {
		if line[0] != Empty && line[0] == line[1] && line[1] == line[2] {
			return line[0]
		}
	}
	return Empty
}

func (b Board) lines() [][Size]Mark {
	lines := make([][Size]Mark, 0, 2*Size+2)
	for i := 0; i < Size; i++ {
		lines = append(lines, b[i])
	}
	for j := 0; j < Size; j++ {
		lines = append(lines, [Size]Mark{b[0][j], b[1][j], b[2][j]})
	}
	lines = append(lines,
		[Size]Mark{b[0][0], b[1][1], b[2][2]},
		[Size]Mark{b[0][2], b[1][1], b[2][0]},
	)
	return lines
}

// Play returns a copy of b with m placed on cell, numbered 1..9 row by row.
func (b Board) Play(cell int, m Mark) (Board, error) {
	if cell < 1 || cell > Size*Size {
		return b, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidCell, cell, Size*Size)
	}
	if m != X && m != O {
		return b, fmt.Errorf("%w: %q", ErrInvalidMark, m)
	}
	row, col := (cell-1)/Size, (cell-1)%Size
	if b[row][col] != Empty {
		return b, fmt.Errorf("%w: %d", ErrCellTaken, cell)
	}
	b[row][col] = m
	return b, nil
}

// Diff returns the cell (1..9) that is empty in before and marked in after.
func Diff(before, after Board) (int, bool) {
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if before[i][j] == Empty && after[i][j] != Empty {
				return i*Size + j + 1, true
			}
		}
	}
	return 0, false
}
