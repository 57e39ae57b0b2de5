// Package board implements the Connect-Four grid: piece placement under
// gravity, legal-move enumeration, and win/draw detection along all four
// line orientations.
package board

const (
	// Rows is the number of rows in the grid. Row 0 is the top row.
	Rows = 6
	// Cols is the number of columns in the grid.
	Cols = 7
	// WinLength is the number of aligned pieces needed to win.
	WinLength = 4
	// CenterCol is the column that participates in the most winning lines.
	CenterCol = Cols / 2
)

// Piece is the contents of a single cell.
type Piece uint8

const (
	Empty Piece = iota
	X
	O
)

func (p Piece) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	}
	return " "
}

// Other returns the opposing piece. Other of Empty is Empty.
func (p Piece) Other() Piece {
	switch p {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

// Board is a fixed-dimension Connect-Four grid. Within any column the
// non-empty cells form a contiguous run starting at the bottom row; Place
// and Unplace preserve this invariant.
//
// Board is a plain value type. Copying it copies the whole position, which
// is what the solver's snapshot/restore discipline relies on.
type Board struct {
	cells  [Rows][Cols]Piece
	filled int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Cell returns the piece at the given row and column. Row 0 is the top.
func (b *Board) Cell(row, col int) Piece {
	return b.cells[row][col]
}

// Place drops a piece into the lowest empty cell of the column, scanning
// from the bottom row upward. It returns false, with no mutation, if the
// column index is out of range or the column is full.
func (b *Board) Place(col int, p Piece) bool {
	if col < 0 || col >= Cols || p == Empty {
		return false
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][col] == Empty {
			b.cells[row][col] = p
			b.filled++
			return true
		}
	}
	return false
}

// Unplace removes the most recently placed piece from the column, i.e. the
// topmost occupied cell. It returns false, with no mutation, if the column
// index is out of range or the column is empty. It is the exact inverse of
// Place on the same column.
func (b *Board) Unplace(col int) bool {
	if col < 0 || col >= Cols {
		return false
	}
	for row := 0; row < Rows; row++ {
		if b.cells[row][col] != Empty {
			b.cells[row][col] = Empty
			b.filled--
			return true
		}
	}
	return false
}

// IsLegal returns true iff the column index is in range and its top cell
// is still empty.
func (b *Board) IsLegal(col int) bool {
	return col >= 0 && col < Cols && b.cells[0][col] == Empty
}

// LegalMoves returns all columns currently accepting a piece, in ascending
// column order. The solver depends on this enumeration order for its
// deterministic tie-break.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b.cells[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

// HasWon returns true iff any four cells in a straight line, in any of the
// four orientations, all hold the given piece. The scan is exhaustive on
// every call; the solver plays and unplays moves far faster than it could
// maintain incremental win state correctly across undo.
func (b *Board) HasWon(p Piece) bool {
	// Horizontal.
	for r := 0; r < Rows; r++ {
		for c := 0; c <= Cols-WinLength; c++ {
			if b.cells[r][c] == p && b.cells[r][c+1] == p &&
				b.cells[r][c+2] == p && b.cells[r][c+3] == p {
				return true
			}
		}
	}
	// Vertical.
	for r := 0; r <= Rows-WinLength; r++ {
		for c := 0; c < Cols; c++ {
			if b.cells[r][c] == p && b.cells[r+1][c] == p &&
				b.cells[r+2][c] == p && b.cells[r+3][c] == p {
				return true
			}
		}
	}
	// Diagonal, down-right.
	for r := 0; r <= Rows-WinLength; r++ {
		for c := 0; c <= Cols-WinLength; c++ {
			if b.cells[r][c] == p && b.cells[r+1][c+1] == p &&
				b.cells[r+2][c+2] == p && b.cells[r+3][c+3] == p {
				return true
			}
		}
	}
	// Diagonal, up-right.
	for r := WinLength - 1; r < Rows; r++ {
		for c := 0; c <= Cols-WinLength; c++ {
			if b.cells[r][c] == p && b.cells[r-1][c+1] == p &&
				b.cells[r-2][c+2] == p && b.cells[r-3][c+3] == p {
				return true
			}
		}
	}
	return false
}

// IsFull returns true iff no column accepts another piece.
func (b *Board) IsFull() bool {
	return b.filled == Rows*Cols
}

// IsTerminal returns true iff either side has won or the board is full.
func (b *Board) IsTerminal() bool {
	return b.HasWon(X) || b.HasWon(O) || b.IsFull()
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	return b.filled
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	c := &Board{}
	c.CopyFrom(b)
	return c
}

// CopyFrom restores this board to an exact copy of the other board.
func (b *Board) CopyFrom(other *Board) {
	b.cells = other.cells
	b.filled = other.filled
}

// Equals returns true iff both boards hold identical cell contents.
func (b *Board) Equals(other *Board) bool {
	return b.cells == other.cells
}
