package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

var scatteredRegions = []int{
	0, 1, 2, 3,
	1, 0, 3, 2,
	2, 3, 0, 1,
	3, 2, 1, 0,
}

// One region per row; the classic n=4 solution (cols 1,3,0,2) satisfies it.
var rowRegions = []int{
	0, 0, 0, 0,
	1, 1, 1, 1,
	2, 2, 2, 2,
	3, 3, 3, 3,
}

func TestNewState(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, scatteredRegions)
	is.NoErr(err)
	is.Equal(s.CurrentPlayer, 1)
	is.Equal(len(s.Queens), 0)
	is.Equal(len(s.ValidMoves), 16)
	is.True(!s.GameOver)
	is.True(s.ID != "")
}

func TestNewStateRejectsBadRegions(t *testing.T) {
	is := is.New(t)
	_, err := NewState(4, []int{0, 1})
	is.True(err != nil)
	_, err = NewState(4, make([]int, 16))
	is.True(err != nil)
}

func TestPlayMoveExclusions(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, scatteredRegions)
	is.NoErr(err)

	is.NoErr(s.PlayMove(0))
	is.Equal(s.CurrentPlayer, 2)
	is.Equal(s.Player1Queens, 1)

	b := s.Board()
	for _, m := range s.ValidMoves {
		is.True(b.Row(m) != 0)
		is.True(b.Col(m) != 0)
		is.True(b.Row(m)-b.Col(m) != 0)
		is.True(b.Row(m)+b.Col(m) != 0)
		is.True(b.Region(m) != 0)
	}
}

func TestIllegalMoveLeavesStateUnchanged(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, scatteredRegions)
	is.NoErr(err)
	is.NoErr(s.PlayMove(0))

	queens := len(s.Queens)
	player := s.CurrentPlayer
	moves := len(s.ValidMoves)

	err = s.PlayMove(1) // same row as the first queen
	is.True(errors.Is(err, ErrIllegalMove))
	is.Equal(len(s.Queens), queens)
	is.Equal(s.CurrentPlayer, player)
	is.Equal(len(s.ValidMoves), moves)
}

func TestWinOnFullBoard(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, rowRegions)
	is.NoErr(err)

	// Cols 1,3,0,2 across rows 0..3: positions 1, 7, 8, 14.
	is.NoErr(s.PlayMove(1))
	is.NoErr(s.PlayMove(7))
	is.NoErr(s.PlayMove(8))
	is.NoErr(s.PlayMove(14))

	is.True(s.GameOver)
	is.Equal(s.Winner, 2) // the fourth mover
	is.Equal(len(s.ValidMoves), 0)
	is.Equal(len(s.Queens), 4)

	err = s.PlayMove(0)
	is.True(errors.Is(err, ErrGameOver))
}

func TestWinWhenOpponentStuck(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, scatteredRegions)
	is.NoErr(err)

	// This partition admits no full placement, so some prefix of moves
	// must strand the opponent. Drive the game with first-valid moves
	// until it ends and confirm the terminal bookkeeping.
	for !s.GameOver {
		is.True(len(s.ValidMoves) > 0)
		mover := s.CurrentPlayer
		is.NoErr(s.PlayMove(s.ValidMoves[0]))
		if s.GameOver {
			is.Equal(s.Winner, mover)
		}
	}
	is.True(len(s.Queens) <= 4)
}

func TestSimulateDoesNotMutate(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, scatteredRegions)
	is.NoErr(err)

	sim := s.Simulate(0)
	is.Equal(len(s.Queens), 0)
	is.Equal(s.CurrentPlayer, 1)
	is.Equal(len(sim.Queens), 1)
	is.Equal(sim.CurrentPlayer, 2)
	is.Equal(sim.Player1Queens, 1)

	// Appending to the simulation must not alias the original's storage.
	sim.Queens = append(sim.Queens, 11)
	is.Equal(len(s.Queens), 0)
}

func TestRecomputeValidMovesIdempotent(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, scatteredRegions)
	is.NoErr(err)
	is.NoErr(s.PlayMove(0))

	first := append([]int(nil), s.ValidMoves...)
	s.RecomputeValidMoves()
	is.Equal(s.ValidMoves, first)
	s.RecomputeValidMoves()
	is.Equal(s.ValidMoves, first)
}

func TestForfeit(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, scatteredRegions)
	is.NoErr(err)
	s.Forfeit()
	is.True(s.GameOver)
	is.Equal(s.Winner, 2)
}

func TestReset(t *testing.T) {
	is := is.New(t)
	s, err := NewState(4, scatteredRegions)
	is.NoErr(err)
	is.NoErr(s.PlayMove(0))

	fresh, err := s.Reset()
	is.NoErr(err)
	is.Equal(len(fresh.Queens), 0)
	is.Equal(fresh.CurrentPlayer, 1)
	is.Equal(len(fresh.ValidMoves), 16)
	is.True(fresh.ID != s.ID)
}
