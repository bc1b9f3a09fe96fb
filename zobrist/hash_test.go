package zobrist

import (
	"testing"

	"github.com/matryer/is"
)

func TestOrderIndependence(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(6)

	a := z.Hash([]int{3, 17, 25}, false)
	b := z.Hash([]int{25, 3, 17}, false)
	is.Equal(a, b)

	c := z.Hash([]int{3, 17, 25}, true)
	is.True(a != c)
}

func TestAddMoveRoundTrip(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(6)

	h := z.Hash([]int{3, 17}, false)
	h1 := z.AddMove(h, 25)
	is.Equal(h1, z.Hash([]int{3, 17, 25}, true))
	is.True(h1 != h)

	h2 := z.AddMove(h1, 25)
	is.Equal(h2, h)
}

func TestDistinctPlacements(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(4)

	seen := map[uint64]bool{}
	for pos := 0; pos < 16; pos++ {
		h := z.Hash([]int{pos}, false)
		is.True(!seen[h])
		seen[h] = true
	}
}
