package automatic

// Data collection for automatic games. Allows computer vs computer runs, etc.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/aracataca/conecta/board"
	"github.com/aracataca/conecta/config"
	"github.com/aracataca/conecta/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Summary aggregates the outcome of a computer-vs-computer series, from
// the perspective of X (the side that moves first).
type Summary struct {
	Games        int     `yaml:"games"`
	DepthX       int     `yaml:"depth_x"`
	DepthO       int     `yaml:"depth_o"`
	XWins        int     `yaml:"x_wins"`
	OWins        int     `yaml:"o_wins"`
	Draws        int     `yaml:"draws"`
	XWinRate     float64 `yaml:"x_win_rate"`
	XWinRateCI95 float64 `yaml:"x_win_rate_ci95"`
	MeanPlies    float64 `yaml:"mean_plies"`
	StdevPlies   float64 `yaml:"stdev_plies"`
}

// StartCompVsCompGames plays numGames games across the given number of
// threads and writes a per-ply CSV log plus a YAML summary to the paths
// configured under autoplay-log and autoplay-summary. Seeds come from the
// seed config key when that file exists; otherwise fresh seeds are
// generated (and saved there, if the key is set) so the run can be
// replayed later.
func StartCompVsCompGames(ctx context.Context, cfg *config.Config,
	numGames int, threads int, depths [2]int) (*Summary, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}

	seeds, err := seedsForRun(cfg, numGames)
	if err != nil {
		return nil, err
	}

	logfile, err := os.Create(cfg.GetString("autoplay-log"))
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	CVCCounter.Set(0)
	jobs := make(chan int, 100)
	logChan := make(chan string, 100)
	results := make(chan *GameResult, numGames)

	var writer errgroup.Group
	writer.Go(func() error {
		defer logfile.Close()
		if _, err := logfile.WriteString("gameID,turn,side,col,value\n"); err != nil {
			return err
		}
		for msg := range logChan {
			if _, err := logfile.WriteString(msg); err != nil {
				return err
			}
		}
		return nil
	})

	g, gctx := errgroup.WithContext(ctx)
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			r := NewGameRunner(logChan, cfg, depths)
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for i := range jobs {
				r.seed(seeds[i])
				res, err := r.playFullGame(gctx, i)
				if err != nil {
					return err
				}
				results <- res
				CVCCounter.Add(1)
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return gctx.Err()
			}
		}
		return nil
	})

	gerr := g.Wait()
	close(logChan)
	close(results)
	if werr := writer.Wait(); werr != nil && gerr == nil {
		gerr = werr
	}
	if gerr != nil {
		return nil, gerr
	}
	log.Info().Msg("All games finished.")

	all := make([]*GameResult, 0, numGames)
	for res := range results {
		all = append(all, res)
	}
	summary := summarize(all, depths)

	if path := cfg.GetString("autoplay-summary"); path != "" {
		out, err := yaml.Marshal(summary)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func seedsForRun(cfg *config.Config, numGames int) ([][32]byte, error) {
	path := cfg.GetString("seed")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			seeds, err := LoadSeeds(path)
			if err != nil {
				return nil, err
			}
			if len(seeds) < numGames {
				return nil, fmt.Errorf("seed file has %d seeds, need %d", len(seeds), numGames)
			}
			return seeds, nil
		}
	}
	seeds, err := GenerateSeeds(numGames)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := SaveSeeds(seeds, path); err != nil {
			return nil, err
		}
	}
	return seeds, nil
}

func summarize(results []*GameResult, depths [2]int) *Summary {
	xwins := lo.CountBy(results, func(r *GameResult) bool { return r.Winner == board.X })
	owins := lo.CountBy(results, func(r *GameResult) bool { return r.Winner == board.O })

	plies := &stats.Statistic{}
	for _, res := range results {
		plies.Push(float64(res.Plies))
	}

	summary := &Summary{
		Games:      len(results),
		DepthX:     depths[0],
		DepthO:     depths[1],
		XWins:      xwins,
		OWins:      owins,
		Draws:      len(results) - xwins - owins,
		MeanPlies:  plies.Mean(),
		StdevPlies: plies.Stdev(),
	}
	if summary.Games > 0 {
		summary.XWinRate = float64(xwins) / float64(summary.Games)
		summary.XWinRateCI95 = stats.WinRateInterval(summary.XWinRate, summary.Games, 95)
	}
	return summary
}
