// Package game encapsulates the turn-based state machine for the
// two-player queens game. A State is created by NewState, mutated only
// through PlayMove, and replaced wholesale by Reset. Simulation never
// mutates shared state; Simulate returns a fresh value.
package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/duelqueens/duelqueens/board"
)

var (
	ErrGameOver    = errors.New("game is already over")
	ErrIllegalMove = errors.New("illegal move")
)

// State holds one game in progress. Queens is append-only during normal
// play: one entry per move, in move order. ValidMoves is the cached set
// of legal positions for the player on turn.
type State struct {
	ID            string `json:"id"`
	N             int    `json:"n"`
	Regions       []int  `json:"regions"`
	Queens        []int  `json:"queenPositions"`
	CurrentPlayer int    `json:"currentPlayer"`
	GameOver      bool   `json:"gameOver"`
	Winner        int    `json:"winner,omitempty"`
	Message       string `json:"message,omitempty"`
	ValidMoves    []int  `json:"validMoves"`
	Player1Queens int    `json:"player1Queens"`
	Player2Queens int    `json:"player2Queens"`

	board *board.Board
}

// NewState initializes a game: player 1 to move, no queens placed, and
// the full valid-move set of an empty board. The region partition is
// validated before anything else.
func NewState(n int, regions []int) (*State, error) {
	b, err := board.New(n, regions)
	if err != nil {
		return nil, err
	}
	s := &State{
		ID:            uuid.NewString(),
		N:             n,
		Regions:       b.Regions(),
		CurrentPlayer: 1,
		ValidMoves:    b.ValidMoves(nil),
		Message:       "Game initialized. Player 1's turn.",
		board:         b,
	}
	log.Debug().Str("game-id", s.ID).Int("n", n).Msg("game-initialized")
	return s, nil
}

func (s *State) Board() *board.Board {
	return s.board
}

func Opponent(player int) int {
	if player == 1 {
		return 2
	}
	return 1
}

// PlayMove commits a move for the player on turn. An illegal position
// leaves the state untouched and returns ErrIllegalMove; the caller may
// retry with a different position. Reaching N queens ends the game with
// the mover as winner (the region budget is exhausted by construction),
// as does leaving the opponent without a legal reply.
func (s *State) PlayMove(pos int) error {
	if s.GameOver {
		return ErrGameOver
	}
	if !slices.Contains(s.ValidMoves, pos) {
		return fmt.Errorf("%w: position %d", ErrIllegalMove, pos)
	}
	mover := s.CurrentPlayer
	s.Queens = append(s.Queens, pos)
	if mover == 1 {
		s.Player1Queens++
	} else {
		s.Player2Queens++
	}

	if len(s.Queens) == s.N {
		s.finish(mover, fmt.Sprintf("Player %d wins! All %d regions are filled.", mover, s.N))
		return nil
	}
	moves := s.board.ValidMoves(s.Queens)
	if len(moves) == 0 {
		s.finish(mover, fmt.Sprintf("Player %d wins! Opponent has no valid moves.", mover))
		return nil
	}
	s.CurrentPlayer = Opponent(mover)
	s.ValidMoves = moves
	s.Message = fmt.Sprintf("Player %d's turn. %d valid moves available.",
		s.CurrentPlayer, len(moves))
	return nil
}

// Forfeit ends the game in favor of the opponent of the player on turn.
// The dispatcher uses this when no strategy can produce a move.
func (s *State) Forfeit() {
	if s.GameOver {
		return
	}
	winner := Opponent(s.CurrentPlayer)
	s.finish(winner, fmt.Sprintf("Player %d wins! Player %d has no valid moves.",
		winner, s.CurrentPlayer))
}

func (s *State) finish(winner int, msg string) {
	s.GameOver = true
	s.Winner = winner
	s.ValidMoves = nil
	s.Message = msg
	log.Debug().Str("game-id", s.ID).Int("winner", winner).
		Int("queens", len(s.Queens)).Msg("game-over")
}

// Simulate returns a copy of the state with pos played and the turn
// flipped. The receiver is never modified. The copy's ValidMoves cache
// is cleared; callers that need it recompute from the board.
func (s *State) Simulate(pos int) *State {
	cp := s.Copy()
	cp.Queens = append(cp.Queens, pos)
	if s.CurrentPlayer == 1 {
		cp.Player1Queens++
	} else {
		cp.Player2Queens++
	}
	cp.CurrentPlayer = Opponent(s.CurrentPlayer)
	cp.ValidMoves = nil
	return cp
}

// Copy deep-copies the mutable parts of the state. The board is immutable
// and shared.
func (s *State) Copy() *State {
	cp := *s
	cp.Queens = slices.Clone(s.Queens)
	cp.ValidMoves = slices.Clone(s.ValidMoves)
	return &cp
}

// RecomputeValidMoves refreshes the cached valid-move set from the board.
// It is idempotent: repeated calls on an unmodified state yield the same
// set.
func (s *State) RecomputeValidMoves() {
	if s.GameOver {
		s.ValidMoves = nil
		return
	}
	s.ValidMoves = s.board.ValidMoves(s.Queens)
}

// Reset returns a brand-new state with the same dimension and regions.
func (s *State) Reset() (*State, error) {
	return NewState(s.N, s.Regions)
}
