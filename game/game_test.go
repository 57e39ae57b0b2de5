package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/aracataca/conecta/board"
)

func TestPlayMoveAlternatesTurns(t *testing.T) {
	is := is.New(t)
	g := NewGame()

	is.Equal(g.PlayerOnTurn(), board.X)
	is.NoErr(g.PlayMove(3))
	is.Equal(g.PlayerOnTurn(), board.O)
	is.NoErr(g.PlayMove(3))
	is.Equal(g.PlayerOnTurn(), board.X)
	is.Equal(g.Turn(), 2)
	is.Equal(g.History(), []int{3, 3})
}

func TestPlayMoveIllegalColumn(t *testing.T) {
	is := is.New(t)
	g := NewGame()

	err := g.PlayMove(7)
	is.True(errors.Is(err, ErrIllegalMove))
	// Nothing changed.
	is.Equal(g.Turn(), 0)
	is.Equal(g.PlayerOnTurn(), board.X)

	for i := 0; i < board.Rows; i++ {
		is.NoErr(g.PlayMove(0))
	}
	err = g.PlayMove(0)
	is.True(errors.Is(err, ErrIllegalMove))
}

func TestWinEndsGame(t *testing.T) {
	is := is.New(t)
	g := NewGame()

	// X stacks column 0, O stacks column 1. X wins vertically on ply 7.
	for _, col := range []int{0, 1, 0, 1, 0, 1} {
		is.NoErr(g.PlayMove(col))
	}
	is.Equal(g.Playing(), StatePlaying)
	is.NoErr(g.PlayMove(0))
	is.Equal(g.Playing(), StateGameOver)
	is.Equal(g.Winner(), board.X)

	err := g.PlayMove(2)
	is.True(errors.Is(err, ErrGameOver))
}

func TestDrawEndsGame(t *testing.T) {
	is := is.New(t)
	g := NewGame()

	// A full 42-ply game with no four-in-a-row anywhere. Even columns end
	// up X on the bottom half and O on top, odd columns the reverse:
	//
	//   O X O X O X O
	//   O X O X O X O
	//   O X O X O X O
	//   X O X O X O X
	//   X O X O X O X
	//   X O X O X O X
	sequence := []int{
		0, 1, 0, 1, 0, 1,
		2, 3, 2, 3, 2, 3,
		4, 5, 4, 5, 4, 5,
		6, 0, 6, 0, 6, 0,
		1, 2, 1, 2, 1, 2,
		3, 4, 3, 4, 3, 4,
		5, 6, 5, 6, 5, 6,
	}
	for _, col := range sequence {
		is.Equal(g.Playing(), StatePlaying)
		is.NoErr(g.PlayMove(col))
	}

	target, err := board.FromRows([]string{
		"OXOXOXO",
		"OXOXOXO",
		"OXOXOXO",
		"XOXOXOX",
		"XOXOXOX",
		"XOXOXOX",
	})
	is.NoErr(err)
	is.True(g.Board().Equals(target))
	is.Equal(g.Playing(), StateGameOver)
	is.Equal(g.Winner(), board.Empty)
}

func TestUnplayLastMoveRestoresExactly(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.NoErr(g.PlayMove(3))
	is.NoErr(g.PlayMove(2))

	g.SetBackupMode(SimulationMode)
	g.SetStateStackLength(5)

	snap := g.Board().Copy()
	onturn := g.PlayerOnTurn()
	turn := g.Turn()

	is.NoErr(g.PlayMove(3))
	is.NoErr(g.PlayMove(4))
	is.NoErr(g.UnplayLastMove())
	is.NoErr(g.UnplayLastMove())

	is.True(g.Board().Equals(snap))
	is.Equal(g.PlayerOnTurn(), onturn)
	is.Equal(g.Turn(), turn)
	is.Equal(g.History(), []int{3, 2})
}

func TestUnplayRestoresTerminalState(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	for _, col := range []int{0, 1, 0, 1, 0, 1} {
		is.NoErr(g.PlayMove(col))
	}
	g.SetBackupMode(SimulationMode)
	g.SetStateStackLength(2)

	is.NoErr(g.PlayMove(0)) // X wins
	is.Equal(g.Playing(), StateGameOver)
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Playing(), StatePlaying)
	is.Equal(g.Winner(), board.Empty)
	is.Equal(g.PlayerOnTurn(), board.X)
}

func TestUnplayWithoutBackup(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.NoErr(g.PlayMove(0))
	is.True(errors.Is(g.UnplayLastMove(), ErrNothingToUndo))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.NoErr(g.PlayMove(3))

	c := g.Copy()
	is.NoErr(c.PlayMove(4))
	is.Equal(g.Turn(), 1)
	is.Equal(c.Turn(), 2)
	is.True(!g.Board().Equals(c.Board()))
}
