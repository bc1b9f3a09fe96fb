package strategy

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/duelqueens/duelqueens/game"
	"github.com/duelqueens/duelqueens/minimax"
	"github.com/duelqueens/duelqueens/solver"
)

// MinimaxSelector adapts the depth-bounded adversarial search to the
// Selector interface. Each call runs a fresh search; the memo table
// never leaks between turns.
type MinimaxSelector struct {
	opts Options
}

func (s *MinimaxSelector) SelectMove(ctx context.Context, st *game.State) (int, bool) {
	mm := minimax.NewSolver(s.opts.Depth)
	if s.opts.NodeBudget > 0 {
		mm.SetNodeBudget(s.opts.NodeBudget)
	}
	res, err := mm.Search(ctx, st)
	if err != nil {
		log.Warn().Err(err).Msg("minimax-search-aborted")
		return -1, false
	}
	if res.Move < 0 {
		return -1, false
	}
	return res.Move, true
}

// DnCSelector answers with the divide-and-conquer solver's partial-state
// query: an instant win if one exists, otherwise the first new placement
// of any completion of the current position.
type DnCSelector struct {
	opts Options
}

func (s *DnCSelector) SelectMove(ctx context.Context, st *game.State) (int, bool) {
	m := &solver.MRV{NodeBudget: s.opts.NodeBudget}
	pos, err := m.NextMove(ctx, st)
	if err != nil {
		log.Warn().Err(err).Msg("dnc-next-move-aborted")
		return -1, false
	}
	if pos < 0 {
		return -1, false
	}
	return pos, true
}
