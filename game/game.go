// Package game encapsulates the mechanics of a Connect-Four game: whose
// turn it is, applying moves, and detecting the end of the game. A Game
// doesn't care how it is played; human players, the solver, and the
// self-play runner all drive it from outside this package.
package game

import (
	"errors"
	"fmt"

	"github.com/aracataca/conecta/board"
)

// PlayState describes whether the game is still going.
type PlayState int

const (
	StatePlaying PlayState = iota
	StateGameOver
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameOver     = errors.New("game is over")
	ErrNothingToUndo = errors.New("no moves to unplay")
)

// Game holds a board plus the turn bookkeeping around it. The ply counter
// only alternates whose turn it is; the solver never consults it.
type Game struct {
	board   *board.Board
	playing PlayState
	winner  board.Piece
	onturn  board.Piece
	turnnum int
	// history records the columns played, in order. It lives in memory
	// only for display and undo; games are never persisted.
	history []int

	backupMode BackupMode
	stateStack []*stateBackup
	stackPtr   int
}

// NewGame returns a fresh game on an empty board. X always moves first.
func NewGame() *Game {
	return &Game{
		board:   board.NewBoard(),
		playing: StatePlaying,
		onturn:  board.X,
		history: make([]int, 0, board.Rows*board.Cols),
	}
}

// NewGameFromPosition returns a game resumed from an arbitrary mid-game
// position with the given side to move. Used by tests and debugging tools.
func NewGameFromPosition(b *board.Board, onturn board.Piece) (*Game, error) {
	if onturn != board.X && onturn != board.O {
		return nil, errors.New("side to move must be X or O")
	}
	g := &Game{
		board:   b.Copy(),
		playing: StatePlaying,
		onturn:  onturn,
		turnnum: b.Filled(),
		history: make([]int, 0, board.Rows*board.Cols),
	}
	switch {
	case b.HasWon(board.X):
		g.playing = StateGameOver
		g.winner = board.X
	case b.HasWon(board.O):
		g.playing = StateGameOver
		g.winner = board.O
	case b.IsFull():
		g.playing = StateGameOver
	}
	return g, nil
}

// PlayMove drops the on-turn side's piece into the given column, updates
// the play state, and advances the turn. It returns ErrIllegalMove, with
// no mutation, for an out-of-range or full column.
func (g *Game) PlayMove(col int) error {
	if g.playing != StatePlaying {
		return ErrGameOver
	}
	if !g.board.IsLegal(col) {
		return fmt.Errorf("%w: column %d", ErrIllegalMove, col)
	}
	if g.backupMode != NoBackup {
		g.backupState()
	}
	g.board.Place(col, g.onturn)
	g.history = append(g.history, col)
	// Win detection is a full-board scan along all four orientations;
	// see board.HasWon.
	if g.board.HasWon(g.onturn) {
		g.playing = StateGameOver
		g.winner = g.onturn
	} else if g.board.IsFull() {
		g.playing = StateGameOver
		g.winner = board.Empty
	}
	g.onturn = g.onturn.Other()
	g.turnnum++
	return nil
}

// Playing returns the current play state.
func (g *Game) Playing() PlayState {
	return g.playing
}

// Winner returns the winning piece, or Empty if the game is drawn or
// still going.
func (g *Game) Winner() board.Piece {
	return g.winner
}

// PlayerOnTurn returns the piece whose turn it is.
func (g *Game) PlayerOnTurn() board.Piece {
	return g.onturn
}

// Turn returns the number of plies played so far.
func (g *Game) Turn() int {
	return g.turnnum
}

// History returns the columns played so far, in order.
func (g *Game) History() []int {
	return g.history
}

// Board returns the game's board. Callers other than the solver must not
// mutate it directly.
func (g *Game) Board() *board.Board {
	return g.board
}

// ToDisplayText renders the board along with a one-line turn summary.
func (g *Game) ToDisplayText() string {
	str := g.board.ToDisplayText()
	switch {
	case g.playing == StatePlaying:
		str += fmt.Sprintf(" turn %d, %v to move\n", g.turnnum, g.onturn)
	case g.winner != board.Empty:
		str += fmt.Sprintf(" game over after %d plies, %v wins\n", g.turnnum, g.winner)
	default:
		str += fmt.Sprintf(" game over after %d plies, drawn\n", g.turnnum)
	}
	return str
}
