// Package runner is the outward-facing surface of the engine. It wraps
// the game state machine, the strategy dispatcher, and the standalone
// solvers behind the handful of operations a frontend needs: init a
// game, make a move, ask the AI to move, list valid moves, reset, and
// solve a partition outright.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/duelqueens/duelqueens/game"
	"github.com/duelqueens/duelqueens/minimax"
	"github.com/duelqueens/duelqueens/solver"
	"github.com/duelqueens/duelqueens/strategy"
)

// Options carry the tunables every operation shares.
type Options struct {
	// Depth bounds the minimax search; zero selects the default.
	Depth int
	// NodeBudget caps search nodes for the searching algorithms; zero
	// means unbounded.
	NodeBudget uint64
	// DefaultAlgorithm is used when a request names none. Empty means
	// greedy.
	DefaultAlgorithm string
}

type Engine struct {
	opts       Options
	dispatcher *strategy.Dispatcher
}

func NewEngine(opts Options) *Engine {
	if opts.DefaultAlgorithm == "" {
		opts.DefaultAlgorithm = "greedy"
	}
	return &Engine{
		opts: opts,
		dispatcher: strategy.NewDispatcher(strategy.Options{
			Depth:      opts.Depth,
			NodeBudget: opts.NodeBudget,
		}),
	}
}

// InitGame validates the partition and starts a fresh game.
func (e *Engine) InitGame(n int, regions []int) (*game.State, error) {
	return game.NewState(n, regions)
}

// MakeMove commits a human move. Rejected moves never surface as errors
// to the frontend; the state comes back unchanged except for Message.
func (e *Engine) MakeMove(st *game.State, pos int) *game.State {
	if err := st.PlayMove(pos); err != nil {
		if errors.Is(err, game.ErrGameOver) {
			st.Message = "Game is already over."
		} else {
			st.Message = fmt.Sprintf(
				"Invalid move! Position %d is attacked or its region is taken.", pos)
		}
		log.Debug().Err(err).Str("game-id", st.ID).Int("pos", pos).
			Msg("move-rejected")
	}
	return st
}

// GetAIMove has the requested algorithm move for the player on turn.
func (e *Engine) GetAIMove(ctx context.Context, st *game.State, algorithm string) *game.State {
	if algorithm == "" {
		algorithm = e.opts.DefaultAlgorithm
	}
	return e.dispatcher.GetAIMove(ctx, st, algorithm)
}

// GetValidMoves refreshes the cached valid-move set and reports its size.
func (e *Engine) GetValidMoves(st *game.State) *game.State {
	st.RecomputeValidMoves()
	if !st.GameOver {
		st.Message = fmt.Sprintf("%d valid moves available.", len(st.ValidMoves))
	}
	return st
}

// ResetGame starts over with the same dimension and partition.
func (e *Engine) ResetGame(st *game.State) (*game.State, error) {
	return st.Reset()
}

// Solve runs the named standalone solver on a bare partition, outside
// any game. "dp" is the exhaustive bitmask backtracker, "dnc" the MRV
// divide-and-conquer one, "minimax" plays the adversarial line out, and
// anything else falls back to greedy placement.
func (e *Engine) Solve(ctx context.Context, n int, regions []int, algorithm string) solver.Solution {
	switch strings.ToLower(algorithm) {
	case "dp":
		ex := &solver.Exhaustive{NodeBudget: e.opts.NodeBudget}
		return ex.Solve(ctx, n, regions)
	case "dnc":
		m := &solver.MRV{NodeBudget: e.opts.NodeBudget}
		return m.Solve(ctx, n, regions)
	case "minimax":
		return e.adversarialSolve(ctx, n, regions)
	default:
		g := &solver.GreedyPlacement{}
		return g.Solve(n, regions)
	}
}

// adversarialSolve reports the principal variation of a minimax search
// from the empty board. It is not a placement solver: the line ends
// where one side wins or the depth bound cuts it off.
func (e *Engine) adversarialSolve(ctx context.Context, n int, regions []int) solver.Solution {
	st, err := game.NewState(n, regions)
	if err != nil {
		return solver.Solution{
			Positions: []int{},
			Message:   fmt.Sprintf("invalid regions array: %v", err),
		}
	}
	mm := minimax.NewSolver(e.opts.Depth)
	if e.opts.NodeBudget > 0 {
		mm.SetNodeBudget(e.opts.NodeBudget)
	}
	res, err := mm.Search(ctx, st)
	if err != nil {
		return solver.Solution{
			Positions: []int{},
			Message:   fmt.Sprintf("search aborted: %v", err),
		}
	}
	return solver.Solution{
		Positions: res.Variation,
		Solved:    len(res.Variation) > 0,
		Message:   fmt.Sprintf("adversarial principal line, score %d", res.Score),
	}
}
