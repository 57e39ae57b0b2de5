package game

import "github.com/aracataca/conecta/board"

// BackupMode determines how much state the game saves before every move.
type BackupMode int

const (
	// NoBackup never backs up state. Fine for one-way gameplay such as
	// the shell's live game.
	NoBackup BackupMode = iota
	// SimulationMode keeps a stack of per-move backups so the solver can
	// explore hypothetical continuations and unwind them exactly.
	SimulationMode
)

// stateBackup is the subset of Game that cannot be recomputed when a move
// is unplayed. The board itself is restored by reversing the placement,
// not by copying, so only scalars live here.
type stateBackup struct {
	playing PlayState
	winner  board.Piece
}

// SetBackupMode sets the backup mode. The solver flips a game into
// SimulationMode for the duration of a search and restores the previous
// mode afterwards.
func (g *Game) SetBackupMode(m BackupMode) {
	g.backupMode = m
}

// BackupMode returns the current backup mode.
func (g *Game) BackupMode() BackupMode {
	return g.backupMode
}

// SetStateStackLength preallocates the backup stack. It must be at least
// as deep as the number of plies a search will explore.
func (g *Game) SetStateStackLength(length int) {
	g.stateStack = make([]*stateBackup, length)
	for idx := range g.stateStack {
		// Initialize every element now to avoid allocations mid-search.
		g.stateStack[idx] = &stateBackup{}
	}
	g.stackPtr = 0
}

func (g *Game) backupState() {
	st := g.stateStack[g.stackPtr]
	st.playing = g.playing
	st.winner = g.winner
	g.stackPtr++
}

// UnplayLastMove is the crucial function for minimax search: it restores
// the state exactly as it was before the last PlayMove, without storing
// a full game copy per node. The probed cell goes back to empty, and turn
// number and side on turn are recomputed by decrementing, as they advance
// deterministically with every ply.
func (g *Game) UnplayLastMove() error {
	if g.backupMode != SimulationMode {
		return ErrNothingToUndo
	}
	if g.stackPtr == 0 || len(g.history) == 0 {
		return ErrNothingToUndo
	}
	st := g.stateStack[g.stackPtr-1]
	g.stackPtr--

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board.Unplace(last)

	g.playing = st.playing
	g.winner = st.winner
	g.turnnum--
	g.onturn = g.onturn.Other()
	return nil
}

// Copy creates a deep copy of the game. The copy starts with an empty
// backup stack regardless of the original's search state.
func (g *Game) Copy() *Game {
	c := &Game{
		board:   g.board.Copy(),
		playing: g.playing,
		winner:  g.winner,
		onturn:  g.onturn,
		turnnum: g.turnnum,
		history: make([]int, len(g.history), board.Rows*board.Cols),
	}
	copy(c.history, g.history)
	return c
}
