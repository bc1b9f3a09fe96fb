// Package minimax implements a depth-bounded adversarial search for the
// queens game: alternating maximizing/minimizing plies, alpha-beta
// pruning, center-first move ordering, and a memo table keyed by the
// canonical position hash plus remaining depth and perspective.
package minimax

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/duelqueens/duelqueens/game"
	"github.com/duelqueens/duelqueens/zobrist"
)

const (
	WinScore  = 10000
	LoseScore = -10000

	// DefaultDepth bounds the search. Six plies keeps the search fast for
	// the board sizes the game is played at.
	DefaultDepth = 6
)

var ErrSearchBudgetExceeded = errors.New("search budget exceeded")

// Result is the outcome of a search: a signed score, the recommended
// move (-1 when none exists), and the principal move sequence found.
type Result struct {
	Score     int
	Move      int
	Variation []int
}

// The memo key pairs the order-independent position hash with the
// remaining depth and perspective, so entries from different plies that
// reuse the same board layout never contaminate each other.
type memoKey struct {
	hash       uint64
	remaining  int8
	maximizing bool
}

type Solver struct {
	zobrist *zobrist.Zobrist
	depth   int
	// nodeBudget bounds the number of expanded nodes; zero means no
	// bound. Exceeding it aborts the search with ErrSearchBudgetExceeded.
	nodeBudget uint64
	nodes      atomic.Uint64
	memo       map[memoKey]Result
}

func NewSolver(depth int) *Solver {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Solver{depth: depth}
}

func (s *Solver) SetNodeBudget(n uint64) {
	s.nodeBudget = n
}

func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Search finds the best move for the player on turn. The memo table is
// rebuilt per call; nothing is shared between searches, so a Solver may
// be discarded or reused freely within a single session.
func (s *Solver) Search(ctx context.Context, st *game.State) (Result, error) {
	if st.GameOver {
		return Result{Move: -1}, nil
	}
	moves := st.ValidMoves
	if moves == nil {
		moves = st.Board().ValidMoves(st.Queens)
	}
	if len(moves) == 0 {
		return Result{Score: LoseScore, Move: -1}, nil
	}
	if len(moves) == 1 {
		// Forced move; no point running the full search.
		return Result{Move: moves[0], Variation: []int{moves[0]}}, nil
	}

	if s.zobrist == nil || s.zobrist.BoardDim() != st.N {
		s.zobrist = &zobrist.Zobrist{}
		s.zobrist.Initialize(st.N)
	}
	s.memo = make(map[memoKey]Result)
	s.nodes.Store(0)
	tstart := time.Now()

	rootKey := s.zobrist.Hash(st.Queens, false)

	var res Result
	g := &errgroup.Group{}
	done := make(chan bool)
	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})
	g.Go(func() error {
		var err error
		res, err = s.search(ctx, st, rootKey, 0, true, LoseScore-1, WinScore+1)
		done <- true
		return err
	})
	err := g.Wait()

	log.Debug().
		Int("memo-entries", len(s.memo)).
		Uint64("nodes", s.nodes.Load()).
		Int("score", res.Score).
		Int("move", res.Move).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("search-returning")
	return res, err
}

func (s *Solver) search(ctx context.Context, st *game.State, nodeKey uint64,
	ply int, maximizing bool, alpha, beta int) (Result, error) {
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}
	if n := s.nodes.Add(1); s.nodeBudget > 0 && n > s.nodeBudget {
		return Result{}, ErrSearchBudgetExceeded
	}

	key := memoKey{hash: nodeKey, remaining: int8(s.depth - ply), maximizing: maximizing}
	if cached, ok := s.memo[key]; ok {
		return cached, nil
	}

	moves := st.Board().ValidMoves(st.Queens)
	if len(moves) == 0 {
		// Having no moves is bad for whoever must move.
		score := WinScore - ply
		if maximizing {
			score = LoseScore + ply
		}
		res := Result{Score: score, Move: -1}
		s.memo[key] = res
		return res, nil
	}
	if ply >= s.depth {
		score := evaluate(st, moves)
		if !maximizing {
			score = -score
		}
		res := Result{Score: score, Move: -1}
		s.memo[key] = res
		return res, nil
	}

	orderByCenterDistance(moves, st.N)

	best := Result{Move: -1}
	if maximizing {
		best.Score = LoseScore - 1
	} else {
		best.Score = WinScore + 1
	}
	for _, m := range moves {
		child := st.Simulate(m)
		childKey := s.zobrist.AddMove(nodeKey, m)
		childRes, err := s.search(ctx, child, childKey, ply+1, !maximizing, alpha, beta)
		if err != nil {
			return Result{}, err
		}
		if maximizing {
			if childRes.Score > best.Score {
				best = Result{Score: childRes.Score, Move: m,
					Variation: append([]int{m}, childRes.Variation...)}
			}
			if best.Score > alpha {
				alpha = best.Score
			}
		} else {
			if childRes.Score < best.Score {
				best = Result{Score: childRes.Score, Move: m,
					Variation: append([]int{m}, childRes.Variation...)}
			}
			if best.Score < beta {
				beta = best.Score
			}
		}
		if beta <= alpha {
			break
		}
	}
	s.memo[key] = best
	return best, nil
}

// evaluate is the depth-limit heuristic: mobility of the player on turn,
// weighted, plus how close the placed queens sit to the board center.
func evaluate(st *game.State, moves []int) int {
	n := st.N
	center := n / 2
	centerControl := 0
	for _, pos := range st.Queens {
		row, col := pos/n, pos%n
		dist := abs(row-center) + abs(col-center)
		centerControl += n - dist
	}
	return len(moves)*10 + centerControl
}

// Center-first ordering improves the alpha-beta cutoff rate.
func orderByCenterDistance(moves []int, n int) {
	center := n / 2
	dist := func(pos int) int {
		return abs(pos/n-center) + abs(pos%n-center)
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return dist(moves[i]) < dist(moves[j])
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
