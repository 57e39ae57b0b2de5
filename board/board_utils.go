package board

import (
	"fmt"
	"strings"
)

// ToDisplayText returns an ASCII rendering of the board with column
// indices along the top, suitable for the shell.
func (b *Board) ToDisplayText() string {
	var str string
	row := "  "
	for c := 0; c < Cols; c++ {
		row = row + fmt.Sprintf("%d ", c)
	}
	str = str + row + "\n"
	str = str + " " + strings.Repeat("-", Cols*2+1) + "\n"
	for r := 0; r < Rows; r++ {
		row := " |"
		for c := 0; c < Cols; c++ {
			row = row + b.cells[r][c].String() + "|"
		}
		str = str + row + "\n"
	}
	str = str + " " + strings.Repeat("-", Cols*2+1) + "\n"
	return "\n" + str
}

// FromRows builds a board from a plaintext description: exactly Rows
// strings of Cols characters each, top row first, using 'X', 'O' and '.'.
// The description must respect gravity; a non-empty cell above an empty
// one is an error. Used by tests and debugging tools.
func FromRows(rows []string) (*Board, error) {
	if len(rows) != Rows {
		return nil, fmt.Errorf("expected %d rows, got %d", Rows, len(rows))
	}
	b := NewBoard()
	for r, rowstr := range rows {
		if len(rowstr) != Cols {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", r, Cols, len(rowstr))
		}
		for c, ch := range rowstr {
			switch ch {
			case 'X':
				b.cells[r][c] = X
				b.filled++
			case 'O':
				b.cells[r][c] = O
				b.filled++
			case '.':
				b.cells[r][c] = Empty
			default:
				return nil, fmt.Errorf("row %d col %d: unknown cell %q", r, c, ch)
			}
		}
	}
	// Gravity check: within a column, nothing may float above an empty cell.
	for c := 0; c < Cols; c++ {
		seen := false
		for r := 0; r < Rows; r++ {
			if b.cells[r][c] != Empty {
				seen = true
			} else if seen {
				return nil, fmt.Errorf("col %d: floating piece above row %d", c, r)
			}
		}
	}
	return b, nil
}
