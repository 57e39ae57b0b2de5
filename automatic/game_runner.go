// Package automatic contains the logic for computer-vs-computer games,
// used for engine strength measurement and regression runs.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/aracataca/conecta/board"
	"github.com/aracataca/conecta/config"
	"github.com/aracataca/conecta/game"
	"github.com/aracataca/conecta/minimax"
)

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game   *game.Game
	solver *minimax.Solver

	config  *config.Config
	depths  [2]int
	rng     *frand.RNG
	logchan chan string
}

// NewGameRunner just instantiates a game runner. depths holds the search
// depth for each side, index 0 for X and index 1 for O.
func NewGameRunner(logchan chan string, cfg *config.Config, depths [2]int) *GameRunner {
	return &GameRunner{logchan: logchan, config: cfg, depths: depths}
}

// seed resets the runner's RNG so the next game replays deterministically.
func (r *GameRunner) seed(seed [32]byte) {
	r.rng = frand.NewCustom(seed[:], 1024, 12)
}

// GameResult is the outcome of a single automatic game.
type GameResult struct {
	GameID int
	Winner board.Piece // board.Empty for a draw
	Plies  int
	Nodes  int
}

// playFullGame plays one game to completion. The first ply is drawn from
// the runner's RNG so that repeated games do not all transpose into the
// same line; every ply after that comes from the solver.
func (r *GameRunner) playFullGame(ctx context.Context, gameID int) (*GameResult, error) {
	r.game = game.NewGame()
	r.solver = &minimax.Solver{}
	if err := r.solver.Init(r.game); err != nil {
		return nil, err
	}

	if r.rng == nil {
		return nil, fmt.Errorf("game %d: runner was not seeded", gameID)
	}

	opening := r.rng.Intn(board.Cols)
	r.logPly(gameID, r.game.PlayerOnTurn(), opening, 0)
	if err := r.game.PlayMove(opening); err != nil {
		return nil, err
	}

	nodes := 0
	for r.game.Playing() == game.StatePlaying {
		side := r.game.PlayerOnTurn()
		depth := r.depths[0]
		if side == board.O {
			depth = r.depths[1]
		}
		col, val, err := r.solver.Solve(ctx, depth)
		if err != nil {
			return nil, fmt.Errorf("game %d, turn %d: %w", gameID, r.game.Turn(), err)
		}
		nodes += r.solver.TotalNodes()
		r.logPly(gameID, side, col, val)
		if err := r.game.PlayMove(col); err != nil {
			return nil, err
		}
	}

	result := &GameResult{
		GameID: gameID,
		Winner: r.game.Winner(),
		Plies:  r.game.Turn(),
		Nodes:  nodes,
	}
	log.Debug().
		Int("game-id", gameID).
		Str("winner", result.Winner.String()).
		Int("plies", result.Plies).
		Msg("game over")
	return result, nil
}

func (r *GameRunner) logPly(gameID int, side board.Piece, col int, val int) {
	if r.logchan == nil {
		return
	}
	r.logchan <- fmt.Sprintf("%d,%d,%s,%d,%d\n", gameID, r.game.Turn(), side, col, val)
}
