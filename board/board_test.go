package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestPlaceGravity(t *testing.T) {
	is := is.New(t)
	b := NewBoard()

	is.True(b.Place(3, X))
	is.Equal(b.Cell(Rows-1, 3), X)
	is.True(b.Place(3, O))
	is.Equal(b.Cell(Rows-2, 3), O)
	is.True(b.Place(3, X))
	is.Equal(b.Cell(Rows-3, 3), X)
	// Cells above the stack stay empty.
	is.Equal(b.Cell(0, 3), Empty)
	is.Equal(b.Filled(), 3)
}

func TestPlaceColumnFull(t *testing.T) {
	is := is.New(t)
	b := NewBoard()

	for i := 0; i < Rows; i++ {
		is.True(b.Place(0, X))
	}
	before := b.Copy()
	is.True(!b.Place(0, O))
	// A failed placement must not mutate anything.
	is.True(b.Equals(before))
	is.True(!b.IsLegal(0))
}

func TestPlaceOutOfRange(t *testing.T) {
	is := is.New(t)
	b := NewBoard()

	is.True(!b.Place(-1, X))
	is.True(!b.Place(Cols, X))
	is.True(b.Equals(NewBoard()))
}

func TestPlaceUnplaceRestores(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.Place(2, X)
	b.Place(2, O)
	b.Place(5, X)

	before := b.Copy()
	for col := 0; col < Cols; col++ {
		if !b.IsLegal(col) {
			continue
		}
		is.True(b.Place(col, O))
		is.True(b.Unplace(col))
		is.True(b.Equals(before))
		is.Equal(b.Filled(), before.Filled())
	}
}

func TestUnplaceEmptyColumn(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.True(!b.Unplace(4))
	is.True(!b.Unplace(-1))
	is.True(b.Equals(NewBoard()))
}

func TestLegalMovesAscending(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.Equal(b.LegalMoves(), []int{0, 1, 2, 3, 4, 5, 6})

	for i := 0; i < Rows; i++ {
		b.Place(2, X)
		b.Place(6, O)
	}
	is.Equal(b.LegalMoves(), []int{0, 1, 3, 4, 5})
}

func TestHasWonHorizontal(t *testing.T) {
	is := is.New(t)
	b, err := FromRows([]string{
		".......",
		".......",
		".......",
		".......",
		".......",
		".XXXX..",
	})
	is.NoErr(err)
	is.True(b.HasWon(X))
	is.True(!b.HasWon(O))
}

func TestHasWonVertical(t *testing.T) {
	is := is.New(t)
	b, err := FromRows([]string{
		".......",
		".......",
		"....O..",
		"....O..",
		"....O..",
		"....O..",
	})
	is.NoErr(err)
	is.True(b.HasWon(O))
	is.True(!b.HasWon(X))
}

func TestHasWonDiagonalDown(t *testing.T) {
	is := is.New(t)
	b, err := FromRows([]string{
		".......",
		".......",
		".X.....",
		".OX....",
		".XOX...",
		".OOOX..",
	})
	is.NoErr(err)
	is.True(b.HasWon(X))
	is.True(!b.HasWon(O))
}

func TestHasWonDiagonalUp(t *testing.T) {
	is := is.New(t)
	b, err := FromRows([]string{
		".......",
		".......",
		"....O..",
		"...OX..",
		"..OXX..",
		".OXXO..",
	})
	is.NoErr(err)
	is.True(b.HasWon(O))
	is.True(!b.HasWon(X))
}

func TestThreeInARowIsNotAWin(t *testing.T) {
	is := is.New(t)
	b, err := FromRows([]string{
		".......",
		".......",
		".......",
		"....X..",
		"....X..",
		".XXOX..",
	})
	is.NoErr(err)
	is.True(!b.HasWon(X))
	is.True(!b.HasWon(O))
	is.True(!b.IsTerminal())
}

func TestFullBoardDraw(t *testing.T) {
	is := is.New(t)
	// A filled grid with no four-in-a-row for either side.
	b, err := FromRows([]string{
		"XOXOXOX",
		"XOXOXOX",
		"OXOXOXO",
		"OXOXOXO",
		"XOXOXOX",
		"XOXOXOX",
	})
	is.NoErr(err)
	is.True(b.IsFull())
	is.True(!b.HasWon(X))
	is.True(!b.HasWon(O))
	is.True(b.IsTerminal())
	is.Equal(b.LegalMoves(), []int{})
}

func TestFromRowsRejectsFloatingPieces(t *testing.T) {
	is := is.New(t)
	_, err := FromRows([]string{
		".......",
		".......",
		".......",
		"...X...",
		".......",
		".......",
	})
	is.True(err != nil)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.Place(0, X)
	c := b.Copy()
	c.Place(0, O)
	is.True(!b.Equals(c))
	is.Equal(b.Filled(), 1)
	is.Equal(c.Filled(), 2)
}
