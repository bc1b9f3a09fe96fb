package solver

import (
	"sort"

	"github.com/duelqueens/duelqueens/board"
)

// GreedyPlacement fills the board one region at a time, most constrained
// region first: regions are processed in ascending cell-count order, and
// within a region the unattacked cell with the fewest conflicts against
// the placed queens wins. No backtracking; on a hard partition it may
// fail where the exhaustive solvers succeed, and says so.
type GreedyPlacement struct {
	// Cache is optional; when nil a fresh attack cache is built per call.
	Cache *board.AttackCache
}

func (g *GreedyPlacement) Solve(n int, regions []int) Solution {
	if sol, ok := validate(n, regions); !ok {
		return sol
	}
	cache := g.Cache
	if cache == nil || cache.Dim() != n {
		cache = board.NewAttackCache(n)
	}

	cellsByRegion := map[int][]int{}
	for pos, id := range regions {
		cellsByRegion[id] = append(cellsByRegion[id], pos)
	}
	order := make([]int, 0, len(cellsByRegion))
	for id := range cellsByRegion {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if len(cellsByRegion[a]) != len(cellsByRegion[b]) {
			return len(cellsByRegion[a]) < len(cellsByRegion[b])
		}
		return a < b
	})

	attacked := make([]bool, n*n)
	positions := make([]int, 0, n)
	for _, id := range order {
		best, minConflicts := -1, int(^uint(0)>>1)
		for _, pos := range cellsByRegion[id] {
			if attacked[pos] {
				continue
			}
			conflicts := countConflicts(n, pos, positions)
			if conflicts < minConflicts {
				minConflicts = conflicts
				best = pos
			}
		}
		if best == -1 {
			return failure("cannot place a queen in region %d: no unattacked cell left", id)
		}
		positions = append(positions, best)
		cache.Mark(best, attacked)
	}

	return Solution{
		Positions: positions,
		Solved:    true,
		Message:   "solved with greedy region-by-region placement",
	}
}

func countConflicts(n, pos int, queens []int) int {
	row, col := pos/n, pos%n
	conflicts := 0
	for _, q := range queens {
		qr, qc := q/n, q%n
		if row == qr {
			conflicts++
		}
		if col == qc {
			conflicts++
		}
		if row-col == qr-qc {
			conflicts++
		}
		if row+col == qr+qc {
			conflicts++
		}
	}
	return conflicts
}
