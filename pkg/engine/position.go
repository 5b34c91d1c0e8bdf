// Package engine provides the public API for the backgammon rules engine.
//
// An Engine models one game in progress. Front-ends roll, move and end the
// turn through it and only ever receive copies of the position.
package engine

import (
	"fmt"

	"github.com/yourusername/bgrules/internal/board"
	"github.com/yourusername/bgrules/internal/positionid"
	"github.com/yourusername/bgrules/internal/rules"
)

// Color identifies a player: White (A, moves 1->24) or Black (B, moves 24->1).
type Color = board.Color

const (
	White = board.White
	Black = board.Black
)

// Counts holds a per-color checker count for the bar or the borne-off tray.
type Counts = board.Counts

// NumPoints is the number of points on the board.
const NumPoints = board.NumPoints

// Outcome describes what a successful move did.
type Outcome = rules.Outcome

// OutcomeKind classifies an Outcome.
type OutcomeKind = rules.OutcomeKind

const (
	Moved              = rules.Moved
	MovedAndCaptured   = rules.MovedAndCaptured
	Entered            = rules.Entered
	EnteredAndCaptured = rules.EnteredAndCaptured
	BoreOff            = rules.BoreOff
	GameOver           = rules.GameOver
)

// ParseColor parses a color label ("white", "black", "blancas", "negras", ...).
func ParseColor(s string) (Color, error) {
	return board.ParseColor(s)
}

// Position is a full checker layout. Points are indexed 0-23 for points
// 1-24; positive values are white checkers, negative values black.
type Position struct {
	Points   [NumPoints]int `json:"points"`
	Bar      Counts         `json:"bar"`
	BorneOff Counts         `json:"borne_off"`
}

// StartingPosition returns the standard opening layout.
func StartingPosition() Position {
	b := board.New()
	return positionOf(&b)
}

// CheckerCount returns every checker c owns in p (points, bar and off).
func (p Position) CheckerCount(c Color) int {
	b := p.board()
	return b.CheckerCount(c)
}

// ID returns the GNU Backgammon position ID of p with onRoll to move.
func (p Position) ID(onRoll Color) (string, error) {
	return positionid.Encode(p.board(), onRoll)
}

// ParsePositionID decodes a GNU Backgammon position ID with onRoll to move.
func ParsePositionID(id string, onRoll Color) (Position, error) {
	b, err := positionid.Decode(id, onRoll)
	if err != nil {
		return Position{}, err
	}
	return positionOf(&b), nil
}

// Validate checks that p is a layout a game can start from: no negative
// bar or borne-off count and fifteen checkers per side.
func (p Position) Validate() error {
	for _, c := range []Color{White, Black} {
		if p.Bar.Of(c) < 0 || p.BorneOff.Of(c) < 0 {
			return fmt.Errorf("%w: negative count for %s", ErrInvalidPosition, c)
		}
		if n := p.CheckerCount(c); n != board.CheckersPerSide {
			return fmt.Errorf("%w: %s has %d checkers, want %d", ErrInvalidPosition, c, n, board.CheckersPerSide)
		}
	}
	return nil
}

func (p Position) board() board.Board {
	return board.FromPoints(p.Points, p.Bar, p.BorneOff)
}

func positionOf(b *board.Board) Position {
	return Position{
		Points:   b.Points(),
		Bar:      b.Bar(),
		BorneOff: b.BorneOff(),
	}
}

// State is a read-only snapshot of a game for front-ends.
type State struct {
	Position
	Turn          Color  `json:"turn"`
	Dice          [2]int `json:"dice"`    // last roll, {0,0} before the first roll
	Pending       []int  `json:"pending"` // dice still to play this turn
	MustUseLarger bool   `json:"must_use_larger"`
	CanMove       bool   `json:"can_move"`
	Winner        Color  `json:"winner,omitempty"`
	PositionID    string `json:"position_id,omitempty"` // empty when the layout cannot be encoded
}

// Finished reports whether the snapshot shows a winner.
func (s State) Finished() bool {
	return s.Winner.Valid()
}
