package strategy

import (
	"context"
	"math"

	"github.com/duelqueens/duelqueens/game"
)

// Greedy is a strictly one-ply lookahead: for every valid move it counts
// the opponent's resulting options and picks the move that minimizes
// them. Ties break toward the move that leaves the mover the most
// options for a hypothetical follow-up turn. A move that strands the
// opponent entirely minimizes trivially and becomes an immediate win.
type Greedy struct{}

func (g Greedy) SelectMove(_ context.Context, st *game.State) (int, bool) {
	if st.GameOver {
		return -1, false
	}
	b := st.Board()
	moves := st.ValidMoves
	if moves == nil {
		moves = b.ValidMoves(st.Queens)
	}

	best := -1
	minOpponentMoves := math.MaxInt
	maxOwnMoves := -1
	for _, m := range moves {
		after := st.Simulate(m)
		opponentMoves := len(b.ValidMoves(after.Queens))
		switch {
		case opponentMoves < minOpponentMoves:
			minOpponentMoves = opponentMoves
			best = m
			maxOwnMoves = ownMobility(after)
		case opponentMoves == minOpponentMoves:
			if own := ownMobility(after); own > maxOwnMoves {
				maxOwnMoves = own
				best = m
			}
		}
	}
	if best == -1 {
		return -1, false
	}
	return best, true
}

// ownMobility recounts the mover's options as if it were their turn
// again, ignoring whatever the opponent does in between.
func ownMobility(after *game.State) int {
	return len(after.Board().ValidMoves(after.Queens))
}
