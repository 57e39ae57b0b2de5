package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/aracataca/conecta/automatic"
	"github.com/aracataca/conecta/board"
	"github.com/aracataca/conecta/config"
	"github.com/aracataca/conecta/game"
	"github.com/aracataca/conecta/minimax"
)

const (
	MinDifficulty     = 1
	MaxDifficulty     = 5
	DefaultDifficulty = 3
)

type ShellController struct {
	l *readline.Instance

	config     *config.Config
	execPath   string
	gitVersion string

	game   *game.Game
	solver *minimax.Solver
	depth  int

	curMode Mode
}

type Mode int

const (
	StandardMode Mode = iota
	DifficultyMode
	PlayMode
	RestartMode
	InvalidMode
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath string, gitVersion string) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mconecta>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	if err != nil {
		panic(err)
	}
	return &ShellController{
		l:          l,
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
		depth:      cfg.GetInt("ai-depth"),
	}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// parseColumn parses a drop column typed by the player. Legality against
// the current position is checked separately.
func parseColumn(line string) (int, error) {
	col, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%q is not a column number", strings.TrimSpace(line))
	}
	if col < 0 || col >= board.Cols {
		return 0, fmt.Errorf("column must be between 0 and %d", board.Cols-1)
	}
	return col, nil
}

// parseDifficulty parses a difficulty reply. An empty line means the
// default; anything unparseable or out of range is an error so the caller
// can fall back to the default with a message.
func parseDifficulty(line string) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return DefaultDifficulty, nil
	}
	d, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%q is not a difficulty", line)
	}
	if d < MinDifficulty || d > MaxDifficulty {
		return 0, fmt.Errorf("difficulty must be between %d and %d", MinDifficulty, MaxDifficulty)
	}
	return d, nil
}

// parseSetboard parses a position description: the board's six rows of
// seven cells each ('X', 'O' and '.', top row first) joined by '/',
// followed by the side to move.
func parseSetboard(line string) (*board.Board, board.Piece, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, board.Empty, errors.New("usage: setboard <row1/row2/.../row6> <X|O>")
	}
	b, err := board.FromRows(strings.Split(fields[0], "/"))
	if err != nil {
		return nil, board.Empty, err
	}
	switch strings.ToUpper(fields[1]) {
	case "X":
		return b, board.X, nil
	case "O":
		return b, board.O, nil
	}
	return nil, board.Empty, fmt.Errorf("side to move must be X or O, got %q", fields[1])
}

func autoplayArgs(line string, defaultDepth int) (games, threads int, depths [2]int, err error) {
	games = 20
	threads = 4
	depths = [2]int{defaultDepth, defaultDepth}

	cmd := strings.Fields(line)
	if len(cmd) > 1 {
		games, err = strconv.Atoi(cmd[1])
		if err != nil {
			return
		}
	}
	if len(cmd) > 2 {
		threads, err = strconv.Atoi(cmd[2])
		if err != nil {
			return
		}
	}
	if len(cmd) > 3 {
		depths[0], err = strconv.Atoi(cmd[3])
		if err != nil {
			return
		}
	}
	if len(cmd) > 4 {
		depths[1], err = strconv.Atoi(cmd[4])
		if err != nil {
			return
		}
	}
	if len(cmd) > 5 {
		err = errors.New("autoplay only takes 4 arguments")
		return
	}
	if games < 1 {
		err = errors.New("need at least one game")
	}
	return
}

func modeFromStr(mode string) (Mode, error) {
	mode = strings.TrimSpace(mode)
	switch mode {
	case "standard":
		return StandardMode, nil
	}
	return InvalidMode, errors.New("mode " + mode + " is not a valid choice")
}

func (sc *ShellController) modeSelector(line string) {
	mode := strings.SplitN(line, " ", 2)
	if len(mode) != 2 {
		sc.showMessage("Error: please provide a valid mode")
		return
	}
	m, err := modeFromStr(mode[1])
	if err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage("Setting current mode to " + mode[1])
	sc.setMode(m)
}

func (sc *ShellController) setMode(m Mode) {
	sc.curMode = m
	switch m {
	case DifficultyMode:
		sc.l.SetPrompt(fmt.Sprintf("difficulty (%d-%d) [%d]: ", MinDifficulty,
			MaxDifficulty, DefaultDifficulty))
	case PlayMode:
		sc.l.SetPrompt("\033[33mcolumn>\033[0m ")
	case RestartMode:
		sc.l.SetPrompt("play again? (y/n): ")
	default:
		sc.l.SetPrompt("\033[31mconecta>\033[0m ")
	}
}

// displayGame prints the current position, optionally colorized.
func (sc *ShellController) displayGame() {
	text := sc.game.ToDisplayText()
	if sc.config.GetBool("color") {
		r := strings.NewReplacer(
			"X", "\033[31mX\033[0m",
			"O", "\033[33mO\033[0m")
		text = r.Replace(text)
	}
	sc.showMessage(text)
}

func (sc *ShellController) startGame(depth int) {
	sc.depth = depth
	sc.game = game.NewGame()
	sc.solver = &minimax.Solver{}
	if err := sc.solver.Init(sc.game); err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage(fmt.Sprintf("New game at difficulty %d. You are X and play first.", depth))
	sc.displayGame()
	cols := lo.Map(sc.game.Board().LegalMoves(), func(c int, _ int) string {
		return strconv.Itoa(c)
	})
	sc.showMessage("Type a column to drop a piece: " + strings.Join(cols, " "))
	sc.setMode(PlayMode)
}

// playHumanMove drops the player's piece and, if the game continues, asks
// the engine for its reply. The shell mode comes back as RestartMode once
// the game is over.
func (sc *ShellController) playHumanMove(col int) {
	if err := sc.game.PlayMove(col); err != nil {
		sc.showError(err)
		return
	}
	if sc.announceIfOver() {
		return
	}

	engineCol, val, err := sc.solver.Solve(context.Background(), sc.depth)
	if err != nil {
		sc.showError(err)
		return
	}
	log.Debug().Int("col", engineCol).Int("value", val).Msg("engine move")
	if err := sc.game.PlayMove(engineCol); err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage(fmt.Sprintf("Engine drops in column %d.", engineCol))
	if sc.announceIfOver() {
		return
	}
	sc.displayGame()
}

// announceIfOver shows the final position and result when the game has
// ended, and switches to the restart prompt.
func (sc *ShellController) announceIfOver() bool {
	if sc.game.Playing() != game.StateGameOver {
		return false
	}
	sc.displayGame()
	switch sc.game.Winner() {
	case board.X:
		sc.showMessage("You win!")
	case board.O:
		sc.showMessage("The engine wins.")
	default:
		sc.showMessage("The board is full. It's a draw.")
	}
	sc.setMode(RestartMode)
	return true
}

// setboard installs an arbitrary position for debugging. The engine
// answers from here at the current difficulty once a column is played.
func (sc *ShellController) setboard(line string) {
	b, onturn, err := parseSetboard(line)
	if err != nil {
		sc.showError(err)
		return
	}
	g, err := game.NewGameFromPosition(b, onturn)
	if err != nil {
		sc.showError(err)
		return
	}
	sc.game = g
	sc.solver = &minimax.Solver{}
	if err := sc.solver.Init(sc.game); err != nil {
		sc.showError(err)
		return
	}
	sc.displayGame()
	if sc.game.Playing() != game.StatePlaying {
		sc.showMessage("This position is already decided.")
		sc.setMode(StandardMode)
		return
	}
	sc.showMessage(fmt.Sprintf("Position set, %s to move at difficulty %d.",
		onturn, sc.depth))
	sc.setMode(PlayMode)
}

func (sc *ShellController) autoplay(line string) {
	games, threads, depths, err := autoplayArgs(line, sc.config.GetInt("ai-depth"))
	if err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage(fmt.Sprintf("Playing %d games on %d threads, depths X=%d O=%d...",
		games, threads, depths[0], depths[1]))
	summary, err := automatic.StartCompVsCompGames(context.Background(), sc.config,
		games, threads, depths)
	if err != nil {
		sc.showError(err)
		return
	}
	sc.showMessage(fmt.Sprintf(
		"X won %d, O won %d, %d draws over %d games (X win rate %.3f ± %.3f)",
		summary.XWins, summary.OWins, summary.Draws, summary.Games,
		summary.XWinRate, summary.XWinRateCI95))
	sc.showMessage(fmt.Sprintf("Mean game length %.1f plies (stdev %.1f)",
		summary.MeanPlies, summary.StdevPlies))
	sc.showMessage("Per-ply log: " + sc.config.GetString("autoplay-log"))
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	switch {
	case line == "new":
		sc.setMode(DifficultyMode)

	case strings.HasPrefix(line, "new "):
		d, err := parseDifficulty(line[4:])
		if err != nil {
			sc.showError(err)
			break
		}
		sc.startGame(d)

	case line == "show":
		if sc.game == nil {
			sc.showError(errors.New("no game in progress, start one with `new`"))
			break
		}
		sc.displayGame()

	case strings.HasPrefix(line, "play "):
		if sc.game == nil || sc.game.Playing() != game.StatePlaying {
			sc.showError(errors.New("no game in progress, start one with `new`"))
			break
		}
		col, err := parseColumn(line[5:])
		if err != nil {
			sc.showError(err)
			break
		}
		sc.setMode(PlayMode)
		sc.playHumanMove(col)

	case strings.HasPrefix(line, "setboard "):
		sc.setboard(line[9:])

	case strings.HasPrefix(line, "autoplay"):
		sc.autoplay(line)

	case line == "bye" || line == "exit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")

	case strings.HasPrefix(line, "help"):
		if strings.TrimSpace(line) == "help" {
			usage(sc.l.Stderr(), "standard")
		} else {
			helptopic := strings.SplitN(line, " ", 2)
			usageTopic(sc.l.Stderr(), helptopic[1])
		}

	case strings.HasPrefix(line, "mode"):
		sc.modeSelector(line)

	default:
		if strings.TrimSpace(line) != "" {
			log.Debug().Msgf("you said: %v", strconv.Quote(line))
		}
	}
	return nil
}

func (sc *ShellController) difficultyModeSwitch(line string, sig chan os.Signal) error {
	d, err := parseDifficulty(line)
	if err != nil {
		sc.showMessage(fmt.Sprintf("%v; using default difficulty %d", err, DefaultDifficulty))
		d = DefaultDifficulty
	}
	sc.startGame(d)
	return nil
}

func (sc *ShellController) playModeSwitch(line string, sig chan os.Signal) error {
	switch {
	case line == "show":
		sc.displayGame()

	case line == "resign" || line == "quit":
		sc.showMessage("Game abandoned.")
		sc.setMode(StandardMode)

	case strings.HasPrefix(line, "help"):
		usage(sc.l.Stderr(), "play")

	case line == "bye" || line == "exit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")

	default:
		col, err := parseColumn(line)
		if err != nil {
			sc.showError(err)
			break
		}
		if !sc.game.Board().IsLegal(col) {
			cols := lo.Map(sc.game.Board().LegalMoves(), func(c int, _ int) string {
				return strconv.Itoa(c)
			})
			sc.showMessage(fmt.Sprintf("Column %d is full. Open columns: %s",
				col, strings.Join(cols, " ")))
			break
		}
		sc.playHumanMove(col)
	}
	return nil
}

func (sc *ShellController) restartModeSwitch(line string, sig chan os.Signal) error {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		sc.startGame(sc.depth)
	case "n", "no", "":
		sc.setMode(StandardMode)
	case "bye", "exit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	default:
		sc.showMessage("Please answer y or n.")
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {

		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		var serr error
		switch sc.curMode {
		case StandardMode:
			serr = sc.standardModeSwitch(line, sig)
		case DifficultyMode:
			serr = sc.difficultyModeSwitch(line, sig)
		case PlayMode:
			serr = sc.playModeSwitch(line, sig)
		case RestartMode:
			serr = sc.restartModeSwitch(line, sig)
		}
		if serr != nil {
			log.Error().Err(serr).Msg("")
			break
		}

	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs a single command line non-interactively.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.standardModeSwitch(strings.TrimSpace(line), sig); err != nil {
		log.Error().Err(err).Msg("")
	}
}

func (sc *ShellController) Cleanup() {
	sc.l.Close()
}
