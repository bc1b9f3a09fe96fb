// Package board implements the region-partitioned queens board and its
// legality oracle. A board of size N is divided into exactly N labeled
// regions; a cell is safe for a queen if it shares no row, column, or
// diagonal with any placed queen and its region holds no queen yet.
package board

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	ErrInvalidRegionsSize = errors.New("regions array does not cover the board")
	ErrInvalidRegionCount = errors.New("wrong number of distinct regions")
)

// Board is an immutable description of a puzzle instance: the dimension
// and the cell-to-region mapping. It carries no queens; callers pass the
// placed queens into the predicates below.
type Board struct {
	n       int
	regions []int
}

// New validates the region partition and creates a board. The regions
// slice maps each cell index (row*n + col) to a region id. It must have
// exactly n*n entries and exactly n distinct ids.
func New(n int, regions []int) (*Board, error) {
	if len(regions) != n*n {
		return nil, fmt.Errorf("%w: expected %d cells, got %d",
			ErrInvalidRegionsSize, n*n, len(regions))
	}
	if distinct := len(lo.Uniq(regions)); distinct != n {
		return nil, fmt.Errorf("%w: expected %d regions, found %d",
			ErrInvalidRegionCount, n, distinct)
	}
	return &Board{n: n, regions: append([]int(nil), regions...)}, nil
}

func (b *Board) Dim() int {
	return b.n
}

// Regions returns the cell-to-region mapping. Callers must not modify it.
func (b *Board) Regions() []int {
	return b.regions
}

func (b *Board) Region(pos int) int {
	return b.regions[pos]
}

func (b *Board) Row(pos int) int {
	return pos / b.n
}

func (b *Board) Col(pos int) int {
	return pos % b.n
}

func (b *Board) Pos(row, col int) int {
	return row*b.n + col
}

// Safe reports whether a queen at pos is compatible with the given queens:
// no shared row, column, or diagonal, and a region with no queen yet.
// O(k) for k placed queens.
func (b *Board) Safe(queens []int, pos int) bool {
	row, col := pos/b.n, pos%b.n
	region := b.regions[pos]
	for _, q := range queens {
		if b.regions[q] == region {
			return false
		}
		qr, qc := q/b.n, q%b.n
		if row == qr || col == qc || row-col == qr-qc || row+col == qr+qc {
			return false
		}
	}
	return true
}

// ValidMoves scans every cell and returns the ones that are safe given
// the placed queens, in ascending position order.
func (b *Board) ValidMoves(queens []int) []int {
	var moves []int
	for pos := 0; pos < b.n*b.n; pos++ {
		if b.Safe(queens, pos) {
			moves = append(moves, pos)
		}
	}
	return moves
}
