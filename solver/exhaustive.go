package solver

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrSearchBudgetExceeded = errors.New("search budget exceeded")

// constraintKey identifies a search state exactly: the row about to be
// assigned plus the occupied column, diagonal, anti-diagonal, and region
// bitmasks. Two move orders reaching the same masks share the key, so a
// recorded dead end is rejected in O(1) on every later path.
type constraintKey struct {
	row                    int8
	cols, diags, antiDiags uint64
	regions                uint64
}

// Exhaustive assigns rows in fixed order, trying every column not blocked
// by the three attack masks or the region mask, and memoizes dead ends.
// The first full placement found wins.
type Exhaustive struct {
	// NodeBudget caps the recursion nodes; zero means unbounded.
	NodeBudget uint64

	nodes    uint64
	n        int
	bits     []int
	deadEnds map[constraintKey]bool
}

func (e *Exhaustive) Nodes() uint64 {
	return e.nodes
}

// Solve searches for any full placement of n non-attacking, one-per-region
// queens. Region-count validation happens before the search begins.
func (e *Exhaustive) Solve(ctx context.Context, n int, regions []int) Solution {
	if sol, ok := validate(n, regions); !ok {
		return sol
	}
	e.n = n
	e.bits = denseRegionBits(n, regions)
	e.deadEnds = make(map[constraintKey]bool)
	e.nodes = 0
	tstart := time.Now()

	positions := make([]int, 0, n)
	found, err := e.place(ctx, 0, 0, 0, 0, 0, &positions)
	log.Debug().Uint64("nodes", e.nodes).Int("dead-ends", len(e.deadEnds)).
		Bool("found", found).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("exhaustive-solve-done")
	if err != nil {
		return failure("search aborted: %v", err)
	}
	if !found {
		return failure("no solution exists for this region partition")
	}
	return Solution{
		Positions: positions,
		Solved:    true,
		Message:   "solved with exhaustive bitmask backtracking",
	}
}

func (e *Exhaustive) place(ctx context.Context, row int,
	cols, diags, antiDiags, regionMask uint64, positions *[]int) (bool, error) {
	if row == e.n {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	e.nodes++
	if e.NodeBudget > 0 && e.nodes > e.NodeBudget {
		return false, ErrSearchBudgetExceeded
	}

	key := constraintKey{
		row:  int8(row),
		cols: cols, diags: diags, antiDiags: antiDiags, regions: regionMask,
	}
	if e.deadEnds[key] {
		return false, nil
	}

	for col := 0; col < e.n; col++ {
		if cols&(1<<col) != 0 {
			continue
		}
		diagIdx := row - col + e.n
		if diags&(1<<diagIdx) != 0 {
			continue
		}
		antiIdx := row + col
		if antiDiags&(1<<antiIdx) != 0 {
			continue
		}
		regionBit := e.bits[row*e.n+col]
		if regionMask&(1<<regionBit) != 0 {
			continue
		}

		*positions = append(*positions, row*e.n+col)
		found, err := e.place(ctx, row+1,
			cols|1<<col, diags|1<<diagIdx, antiDiags|1<<antiIdx,
			regionMask|1<<regionBit, positions)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
		*positions = (*positions)[:len(*positions)-1]
	}

	e.deadEnds[key] = true
	return false, nil
}
