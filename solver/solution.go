// Package solver holds the standalone constraint solvers for the
// region-constrained N-Queens puzzle: an exhaustive bitmask backtracker,
// a divide-and-conquer backtracker with MRV ordering, and a greedy
// region-by-region placer. They search for a single full placement and
// are independent of adversarial turn order.
package solver

import (
	"fmt"
	"sort"

	"github.com/duelqueens/duelqueens/board"
)

// Solution is the uniform result shape of every solver: the ordered
// queen positions, whether a full placement was found, and a diagnostic
// message. Validation failures and exhausted searches are reported here,
// never as panics.
type Solution struct {
	Positions []int  `json:"queenPositions"`
	Solved    bool   `json:"solved"`
	Message   string `json:"message"`
}

func failure(format string, args ...interface{}) Solution {
	return Solution{Positions: []int{}, Message: fmt.Sprintf(format, args...)}
}

// validate applies the shared fail-fast checks before any search begins.
func validate(n int, regions []int) (Solution, bool) {
	if _, err := board.New(n, regions); err != nil {
		return failure("invalid regions array: %v", err), false
	}
	return Solution{}, true
}

// denseRegionBits remaps arbitrary region ids to bit indices 0..n-1, in
// ascending id order. The result maps each cell to its region's bit.
func denseRegionBits(n int, regions []int) []int {
	seen := map[int]bool{}
	var ids []int
	for _, id := range regions {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	bitFor := make(map[int]int, len(ids))
	for i, id := range ids {
		bitFor[id] = i
	}
	bits := make([]int, len(regions))
	for pos, id := range regions {
		bits[pos] = bitFor[id]
	}
	return bits
}
