// Package minimax implements the move-selection engine: depth-limited
// minimax with alpha-beta pruning over the tree of column drops.
package minimax

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aracataca/conecta/board"
	"github.com/aracataca/conecta/game"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
		for each child of node do
			play(child)
			value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
			unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
		for each child of node do
			play(child)
			value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
			unplayLastMove()
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

const (
	// Infinity bounds the search window. It must exceed any reachable
	// score, including WinScore.
	Infinity = 10000000
	// WinScore is the fixed score for a decided position: +WinScore if
	// the maximizing side has won, -WinScore if it has lost. A full-board
	// draw scores 0.
	WinScore = 1000000
)

var (
	ErrNoLegalMoves   = errors.New("no legal moves; choose-move called on a terminal board")
	ErrNotInitialized = errors.New("solver not initialized with a game")
)

// Solver chooses a move for the side on turn by searching the game tree
// to a fixed depth. It explores destructively on the game it was given,
// playing and unplaying moves, and leaves the game exactly as it found it.
type Solver struct {
	game      *game.Game
	maximizer board.Piece

	totalNodes     int
	disablePruning bool
}

// Init initializes the solver with the game it will search on.
func (s *Solver) Init(g *game.Game) error {
	if g == nil {
		return ErrNotInitialized
	}
	s.game = g
	return nil
}

// SetPruningDisabled turns alpha-beta pruning off, leaving plain minimax.
// Pruning is an optimization, not a behavior change; this knob exists so
// tests can verify exactly that.
func (s *Solver) SetPruningDisabled(disable bool) {
	s.disablePruning = disable
}

// Solve searches plies half-moves deep and returns the best column for
// the side on turn, along with its minimax score. The side on turn is
// always the maximizing player. The board must have at least one legal
// move; calling Solve on a terminal board is a caller bug and returns
// ErrNoLegalMoves.
//
// Depth values beyond the remaining board capacity are clamped; there is
// nothing to search past a full board.
func (s *Solver) Solve(ctx context.Context, plies int) (int, int, error) {
	if s.game == nil {
		return 0, 0, ErrNotInitialized
	}
	if len(s.game.Board().LegalMoves()) == 0 {
		return 0, 0, ErrNoLegalMoves
	}
	if capacity := board.Rows*board.Cols - s.game.Board().Filled(); plies > capacity {
		plies = capacity
	}
	if plies < 1 {
		plies = 1
	}

	s.maximizer = s.game.PlayerOnTurn()
	s.totalNodes = 0

	prevMode := s.game.BackupMode()
	s.game.SetBackupMode(game.SimulationMode)
	s.game.SetStateStackLength(plies)
	defer s.game.SetBackupMode(prevMode)

	tstart := time.Now()
	bestCol, bestVal, err := s.alphabeta(ctx, plies, -Infinity, Infinity, true)
	if err != nil {
		return 0, 0, err
	}
	log.Debug().
		Int("plies", plies).
		Int("best-col", bestCol).
		Int("value", bestVal).
		Int("total-nodes", s.totalNodes).
		Dur("elapsed", time.Since(tstart)).
		Msg("solve-done")
	return bestCol, bestVal, nil
}

// TotalNodes returns the number of nodes visited during the last Solve.
func (s *Solver) TotalNodes() int {
	return s.totalNodes
}

// alphabeta returns the chosen column and the position's value for the
// maximizing side. Leaves propose no move and return a column of -1;
// only interior nodes pick columns. Every exploratory placement is
// unwound before returning, whichever branch pruned or errored.
func (s *Solver) alphabeta(ctx context.Context, depth, α, β int, maximizing bool) (int, int, error) {
	select {
	case <-ctx.Done():
		return -1, 0, ctx.Err()
	default:
	}
	s.totalNodes++

	// Terminal positions are decided regardless of remaining depth.
	if s.game.Playing() != game.StatePlaying {
		switch s.game.Winner() {
		case s.maximizer:
			return -1, WinScore, nil
		case s.maximizer.Other():
			return -1, -WinScore, nil
		}
		return -1, 0, nil
	}
	if depth == 0 {
		return -1, evaluate(s.game.Board(), s.maximizer), nil
	}

	moves := s.game.Board().LegalMoves()
	if maximizing {
		value := -Infinity
		// Fallback before any child is evaluated. With at least one
		// legal move some child always improves on -Infinity, so this
		// only seeds the loop.
		column := moves[0]
		for _, col := range moves {
			if err := s.game.PlayMove(col); err != nil {
				return -1, 0, err
			}
			_, childValue, err := s.alphabeta(ctx, depth-1, α, β, false)
			if uerr := s.game.UnplayLastMove(); uerr != nil {
				return -1, 0, uerr
			}
			if err != nil {
				return -1, 0, err
			}
			// Strict improvement only: among equal scores the leftmost
			// column wins.
			if childValue > value {
				value = childValue
				column = col
			}
			if !s.disablePruning {
				if value > α {
					α = value
				}
				if α >= β {
					break // β cut-off
				}
			}
		}
		return column, value, nil
	}

	value := Infinity
	column := moves[0]
	for _, col := range moves {
		if err := s.game.PlayMove(col); err != nil {
			return -1, 0, err
		}
		_, childValue, err := s.alphabeta(ctx, depth-1, α, β, true)
		if uerr := s.game.UnplayLastMove(); uerr != nil {
			return -1, 0, uerr
		}
		if err != nil {
			return -1, 0, err
		}
		if childValue < value {
			value = childValue
			column = col
		}
		if !s.disablePruning {
			if value < β {
				β = value
			}
			if α >= β {
				break // α cut-off
			}
		}
	}
	return column, value, nil
}
