// Package zobrist hashes queens-game positions. Queens carry no identity
// beyond their square, so the hash XORs one random value per occupied
// cell plus a side-to-move toggle. XOR is order-independent, which makes
// the hash a canonical key for transposed move orders reaching the same
// placement.
// https://en.wikipedia.org/wiki/Zobrist_hashing
package zobrist

import (
	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

type Zobrist struct {
	theirTurn uint64
	posTable  []uint64
	boardDim  int
}

func (z *Zobrist) Initialize(boardDim int) {
	z.boardDim = boardDim
	z.posTable = make([]uint64, boardDim*boardDim)
	for i := range z.posTable {
		z.posTable[i] = frand.Uint64n(bignum) + 1
	}
	z.theirTurn = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

// Hash computes the full hash for a placement. theirTurn is true when
// the opponent of the hashing perspective is to move.
func (z *Zobrist) Hash(queens []int, theirTurn bool) uint64 {
	key := uint64(0)
	for _, pos := range queens {
		key ^= z.posTable[pos]
	}
	if theirTurn {
		key ^= z.theirTurn
	}
	return key
}

// AddMove incrementally updates a hash for a queen placed at pos. Every
// move flips the side to move. Applying the same move twice restores the
// original key.
func (z *Zobrist) AddMove(key uint64, pos int) uint64 {
	return key ^ z.posTable[pos] ^ z.theirTurn
}
