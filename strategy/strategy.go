// Package strategy selects moves for the AI player. Each strategy
// implements the single-capability Selector interface; the Dispatcher
// maps algorithm tags to strategies and commits the chosen move through
// the game state machine.
package strategy

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/duelqueens/duelqueens/game"
)

// Selector picks a move for the player on turn. ok is false when the
// strategy cannot produce one.
type Selector interface {
	SelectMove(ctx context.Context, st *game.State) (pos int, ok bool)
}

// Options configure the strategies that search.
type Options struct {
	// Depth bounds the minimax search; zero selects the default.
	Depth int
	// NodeBudget bounds the searching strategies; zero means unbounded.
	NodeBudget uint64
}

type Dispatcher struct {
	selectors map[string]Selector
	fallback  string
}

// NewDispatcher wires the standard strategy table: greedy, minimax, and
// the divide-and-conquer solver under both its historical "dp" tag and
// the plainer "dnc".
func NewDispatcher(opts Options) *Dispatcher {
	dnc := &DnCSelector{opts: opts}
	return &Dispatcher{
		selectors: map[string]Selector{
			"greedy":  Greedy{},
			"minimax": &MinimaxSelector{opts: opts},
			"dp":      dnc,
			"dnc":     dnc,
		},
		fallback: "greedy",
	}
}

// GetAIMove routes to the tagged strategy (defaulting to greedy), commits
// the selected move, and returns the mutated state. When no strategy can
// produce a move the state is marked terminal with the opponent as
// winner, mirroring the state machine's no-moves rule.
func (d *Dispatcher) GetAIMove(ctx context.Context, st *game.State, algorithm string) *game.State {
	if st.GameOver {
		return st
	}
	tag := strings.ToLower(algorithm)
	sel, found := d.selectors[tag]
	if !found {
		tag = d.fallback
		sel = d.selectors[tag]
	}

	pos, ok := sel.SelectMove(ctx, st)
	if !ok {
		log.Debug().Str("algorithm", tag).Str("game-id", st.ID).
			Msg("no-move-available")
		st.Forfeit()
		return st
	}
	mover := st.CurrentPlayer
	if err := st.PlayMove(pos); err != nil {
		// A strategy returning an illegal move is a bug; treat it like
		// having no move rather than corrupting the game.
		log.Error().Err(err).Str("algorithm", tag).Int("pos", pos).
			Msg("strategy-produced-illegal-move")
		st.Forfeit()
		return st
	}
	log.Debug().Str("algorithm", tag).Int("pos", pos).
		Int("player", mover).Msg("ai-move-committed")
	return st
}
