// Package shell is an interactive console for the queens game: start a
// game, trade moves with the AI, inspect the board, and run the
// standalone solvers on the current partition.
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

	"github.com/duelqueens/duelqueens/config"
	"github.com/duelqueens/duelqueens/game"
	"github.com/duelqueens/duelqueens/runner"
)

var errExiting = errors.New("sorry, try again")

type ShellController struct {
	l *readline.Instance

	cfg    *config.Config
	engine *runner.Engine
	state  *game.State
}

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

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mduelqueens>\033[0m ",
		HistoryFile:     "/tmp/duelqueens_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{l: l, cfg: cfg, engine: newEngine(cfg)}
}

func newEngine(cfg *config.Config) *runner.Engine {
	return runner.NewEngine(runner.Options{
		Depth:            cfg.GetInt("search-depth"),
		NodeBudget:       cfg.GetUint64("node-budget"),
		DefaultAlgorithm: cfg.GetString("default-algorithm"),
	})
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
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
		if line == "" {
			continue
		}

		err = sc.commandSwitch(line)
		if err == errExiting {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	// nothing to tear down yet
}

func (sc *ShellController) commandSwitch(line string) error {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "new":
		return sc.handleNew(args)
	case "move", "m":
		return sc.handleMove(args)
	case "ai":
		return sc.handleAI(args)
	case "valid":
		return sc.handleValid()
	case "solve":
		return sc.handleSolve(args)
	case "show", "s":
		return sc.handleShow()
	case "reset":
		return sc.handleReset()
	case "set":
		return sc.handleSet(args)
	case "help":
		sc.showMessage(usage)
		return nil
	case "exit", "quit":
		return errExiting
	default:
		return fmt.Errorf("command %v not found", cmd)
	}
}

func (sc *ShellController) handleNew(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: new <n> [region per cell, n*n values]")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("bad board dimension %v", args[0])
	}
	var regions []int
	if len(args) == 1 {
		// Playable default: each row is its own region.
		regions = make([]int, n*n)
		for i := range regions {
			regions[i] = i / n
		}
	} else {
		for _, a := range args[1:] {
			id, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("bad region id %v", a)
			}
			regions = append(regions, id)
		}
	}
	st, err := sc.engine.InitGame(n, regions)
	if err != nil {
		return err
	}
	sc.state = st
	sc.showGame()
	return nil
}

func (sc *ShellController) handleMove(args []string) error {
	if sc.state == nil {
		return errors.New("no game in progress; start one with `new`")
	}
	pos, err := parsePosition(sc.state.N, args)
	if err != nil {
		return err
	}
	sc.engine.MakeMove(sc.state, pos)
	sc.showGame()
	return nil
}

func (sc *ShellController) handleAI(args []string) error {
	if sc.state == nil {
		return errors.New("no game in progress; start one with `new`")
	}
	algorithm := ""
	if len(args) > 0 {
		algorithm = args[0]
	}
	sc.engine.GetAIMove(context.Background(), sc.state, algorithm)
	sc.showGame()
	return nil
}

func (sc *ShellController) handleValid() error {
	if sc.state == nil {
		return errors.New("no game in progress; start one with `new`")
	}
	sc.engine.GetValidMoves(sc.state)
	sc.showMessage(fmt.Sprintf("valid moves: %v", sc.state.ValidMoves))
	return nil
}

func (sc *ShellController) handleSolve(args []string) error {
	if sc.state == nil {
		return errors.New("no game in progress; start one with `new`")
	}
	algorithm := ""
	if len(args) > 0 {
		algorithm = args[0]
	}
	sol := sc.engine.Solve(context.Background(), sc.state.N, sc.state.Regions, algorithm)
	if !sol.Solved {
		sc.showMessage("no solution: " + sol.Message)
		return nil
	}
	sc.showMessage(fmt.Sprintf("%s\npositions: %v", sol.Message, sol.Positions))
	return nil
}

func (sc *ShellController) handleShow() error {
	if sc.state == nil {
		return errors.New("no game in progress; start one with `new`")
	}
	sc.showGame()
	return nil
}

func (sc *ShellController) handleReset() error {
	if sc.state == nil {
		return errors.New("no game in progress; start one with `new`")
	}
	st, err := sc.engine.ResetGame(sc.state)
	if err != nil {
		return err
	}
	sc.state = st
	sc.showGame()
	return nil
}

func (sc *ShellController) handleSet(args []string) error {
	if len(args) == 0 {
		for k, v := range sc.cfg.AllSettings() {
			sc.showMessage(fmt.Sprintf("%v: %v", k, v))
		}
		return nil
	}
	if len(args) != 2 {
		return errors.New("usage: set <key> <value>")
	}
	sc.cfg.Set(args[0], args[1])
	// The engine snapshots its options; rebuild it.
	sc.engine = newEngine(sc.cfg)
	sc.showMessage(fmt.Sprintf("set %v to %v", args[0], args[1]))
	return nil
}

func (sc *ShellController) showGame() {
	sc.showMessage(ToDisplayText(sc.state))
}

// parsePosition accepts either a flat position or a row/col pair.
func parsePosition(n int, args []string) (int, error) {
	switch len(args) {
	case 1:
		pos, err := strconv.Atoi(args[0])
		if err != nil || pos < 0 || pos >= n*n {
			return -1, fmt.Errorf("bad position %v", args[0])
		}
		return pos, nil
	case 2:
		row, err := strconv.Atoi(args[0])
		if err != nil || row < 0 || row >= n {
			return -1, fmt.Errorf("bad row %v", args[0])
		}
		col, err := strconv.Atoi(args[1])
		if err != nil || col < 0 || col >= n {
			return -1, fmt.Errorf("bad column %v", args[1])
		}
		return row*n + col, nil
	default:
		return -1, errors.New("usage: move <pos> or move <row> <col>")
	}
}

const usage = `Commands:
  new <n> [regions...]  start an n x n game; regions is n*n ids, one per
                        cell (default: one region per row)
  move <pos>            place a queen at flat position pos
  move <row> <col>      place a queen at row/col
  ai [algo]             let the AI move (greedy, minimax, dp, dnc)
  valid                 list valid moves for the player on turn
  solve [algo]          solve the current partition outside the game
  show                  redraw the board
  reset                 restart with the same partition
  set [key value]       show or change a setting
  exit                  quit`
