package runner

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/duelqueens/duelqueens/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// No full legal placement exists for this 4x4 partition.
var unsolvableRegions = []int{
	0, 1, 2, 3,
	1, 0, 3, 2,
	2, 3, 0, 1,
	3, 2, 1, 0,
}

func rowRegions(n int) []int {
	regions := make([]int, n*n)
	for i := range regions {
		regions[i] = i / n
	}
	return regions
}

func TestInitGame(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	st, err := e.InitGame(4, unsolvableRegions)
	is.NoErr(err)
	is.Equal(st.CurrentPlayer, 1)
	is.Equal(len(st.ValidMoves), 16)

	_, err = e.InitGame(4, []int{0, 1, 2})
	is.True(err != nil)
}

func TestMakeMove(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	st, err := e.InitGame(4, unsolvableRegions)
	is.NoErr(err)

	out := e.MakeMove(st, 0)
	is.Equal(out, st)
	is.Equal(st.Queens, []int{0})
	is.Equal(st.CurrentPlayer, 2)
}

func TestMakeMoveRejectedKeepsState(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	st, err := e.InitGame(4, unsolvableRegions)
	is.NoErr(err)
	is.NoErr(st.PlayMove(0))

	// 5 shares a diagonal and a region with the queen at 0.
	e.MakeMove(st, 5)
	is.Equal(st.Queens, []int{0})
	is.Equal(st.CurrentPlayer, 2)
	is.True(strings.Contains(st.Message, "Invalid move!"))
}

func TestMakeMoveAfterGameOver(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	st, err := e.InitGame(4, unsolvableRegions)
	is.NoErr(err)
	st.Forfeit()

	e.MakeMove(st, 0)
	is.Equal(len(st.Queens), 0)
	is.Equal(st.Message, "Game is already over.")
}

func TestGetAIMoveUsesDefaultAlgorithm(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	st, err := e.InitGame(4, unsolvableRegions)
	is.NoErr(err)
	is.NoErr(st.PlayMove(0))

	e.GetAIMove(context.Background(), st, "")
	// Default greedy minimizes the opponent's replies; 6 is pinned by
	// the strategy tests.
	is.Equal(st.Queens, []int{0, 6})
}

func TestGetAIMovePerAlgorithm(t *testing.T) {
	is := is.New(t)
	for _, algo := range []string{"greedy", "minimax", "dp", "dnc"} {
		e := NewEngine(Options{Depth: 3})
		st, err := e.InitGame(6, rowRegions(6))
		is.NoErr(err)
		e.GetAIMove(context.Background(), st, algo)
		is.Equal(len(st.Queens), 1)
		is.Equal(st.CurrentPlayer, 2)
	}
}

func TestGetValidMoves(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	st, err := e.InitGame(4, unsolvableRegions)
	is.NoErr(err)
	is.NoErr(st.PlayMove(0))

	e.GetValidMoves(st)
	is.Equal(st.ValidMoves, []int{6, 7, 9, 11, 13, 14})
	is.Equal(st.Message, "6 valid moves available.")
}

func TestResetGame(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	st, err := e.InitGame(4, unsolvableRegions)
	is.NoErr(err)
	is.NoErr(st.PlayMove(0))

	fresh, err := e.ResetGame(st)
	is.NoErr(err)
	is.True(fresh.ID != st.ID)
	is.Equal(len(fresh.Queens), 0)
	is.Equal(fresh.CurrentPlayer, 1)
	is.Equal(fresh.Regions, st.Regions)
}

func TestSolveRouting(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})

	for _, algo := range []string{"dp", "dnc"} {
		sol := e.Solve(context.Background(), 6, rowRegions(6), algo)
		is.True(sol.Solved)
		is.Equal(len(sol.Positions), 6)
	}

	// Greedy is the default route and solves the 5x5 row partition.
	sol := e.Solve(context.Background(), 5, rowRegions(5), "")
	is.True(sol.Solved)
	is.True(strings.Contains(sol.Message, "greedy"))
}

func TestSolveUnsolvable(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	for _, algo := range []string{"dp", "dnc"} {
		sol := e.Solve(context.Background(), 4, unsolvableRegions, algo)
		is.True(!sol.Solved)
	}
}

func TestSolveMinimaxReportsPrincipalLine(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{Depth: 4})
	sol := e.Solve(context.Background(), 4, unsolvableRegions, "minimax")
	is.True(sol.Solved)
	is.True(len(sol.Positions) > 0)

	// Every prefix of the line must be a legal sequence of play.
	st, err := game.NewState(4, unsolvableRegions)
	is.NoErr(err)
	for _, pos := range sol.Positions {
		is.NoErr(st.PlayMove(pos))
	}
}

func TestSolveInvalidRegions(t *testing.T) {
	is := is.New(t)
	e := NewEngine(Options{})
	for _, algo := range []string{"dp", "dnc", "minimax", "greedy"} {
		sol := e.Solve(context.Background(), 4, []int{0, 1}, algo)
		is.True(!sol.Solved)
		is.True(strings.Contains(sol.Message, "invalid regions"))
	}
}
