// Package rules decides whether single checker moves are legal and applies
// them to a board.
//
// The checks and the effects are package-level functions over a *board.Board
// and the moving color, so the analyzer can run them against a throwaway copy.
// Validator and Executor bind them to the live board and turn manager.
package rules

import (
	"fmt"

	"github.com/yourusername/bgrules/internal/board"
	"github.com/yourusername/bgrules/internal/turn"
	"github.com/yourusername/bgrules/pkg/dice"
)

// Reason explains why a move was rejected. OK means it was accepted.
type Reason int

const (
	OK Reason = iota
	InvalidOrigin
	Blocked
	NotAllHome
	InsufficientValue
	FartherChecker
	OutOfRange
)

var reasonText = [...]string{
	OK:                "ok",
	InvalidOrigin:     "origin holds no checker of the player to move",
	Blocked:           "two or more opposing checkers",
	NotAllHome:        "not all checkers are home",
	InsufficientValue: "die value insufficient to bear off",
	FartherChecker:    "must move a farther checker first",
	OutOfRange:        "move leaves the board",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonText) {
		return fmt.Sprintf("Reason(%d)", int(r))
	}
	return reasonText[r]
}

// Verdict is the result of a legality check.
type Verdict struct {
	Reason  Reason
	Dest    int  // destination index, or -1 when bearing off
	Capture bool // destination holds a single opposing checker
	BearOff bool
}

// Ok reports whether the move is legal.
func (v Verdict) Ok() bool {
	return v.Reason == OK
}

func reject(r Reason) Verdict {
	return Verdict{Reason: r, Dest: -1}
}

// CheckMove validates moving one of c's checkers from origin (0-23) by die pips.
func CheckMove(b *board.Board, c board.Color, origin, die int) Verdict {
	if !board.OnBoard(origin) || !c.Owns(b.Point(origin)) {
		return reject(InvalidOrigin)
	}
	if !dice.Valid(die) {
		return reject(OutOfRange)
	}

	dest := origin + c.Direction()*die
	if !board.OnBoard(dest) {
		return checkBearOff(b, c, origin, die)
	}
	return checkLanding(b, c, dest)
}

// CheckBarEntry validates entering one of c's checkers from the bar with die.
func CheckBarEntry(b *board.Board, c board.Color, die int) Verdict {
	dest, err := EntryIndex(c, die)
	if err != nil {
		return reject(OutOfRange)
	}
	return checkLanding(b, c, dest)
}

// checkLanding applies the blocked / blot / free rule to an on-board destination.
func checkLanding(b *board.Board, c board.Color, dest int) Verdict {
	v := b.Point(dest)
	if c.Opposes(v) {
		if abs(v) >= 2 {
			return Verdict{Reason: Blocked, Dest: dest}
		}
		return Verdict{Reason: OK, Dest: dest, Capture: true}
	}
	return Verdict{Reason: OK, Dest: dest}
}

func checkBearOff(b *board.Board, c board.Color, origin, die int) Verdict {
	if !AllHome(b, c) {
		return reject(NotAllHome)
	}

	needed := BearOffDistance(c, origin)
	switch {
	case die < needed:
		return reject(InsufficientValue)
	case die > needed && hasCheckerTowardEdge(b, c, origin):
		return reject(FartherChecker)
	}
	return Verdict{Reason: OK, Dest: -1, BearOff: true}
}

// hasCheckerTowardEdge reports whether c has a checker strictly between
// origin and its bear-off edge. Such a checker forbids an overshoot.
func hasCheckerTowardEdge(b *board.Board, c board.Color, origin int) bool {
	for idx := origin + c.Direction(); board.OnBoard(idx); idx += c.Direction() {
		if c.Owns(b.Point(idx)) {
			return true
		}
	}
	return false
}

// EntryIndex returns the point index a checker of c enters on with die.
// White enters on points 1-6 (index die-1), black on 24-19 (index 24-die).
func EntryIndex(c board.Color, die int) (int, error) {
	if !dice.Valid(die) {
		return 0, fmt.Errorf("die %d outside 1..%d", die, dice.Faces)
	}
	if c == board.Black {
		return board.NumPoints - die, nil
	}
	return die - 1, nil
}

// BearOffDistance is the exact pip count from origin to c's bear-off edge.
func BearOffDistance(c board.Color, origin int) int {
	if c == board.Black {
		return origin + 1
	}
	return board.NumPoints - origin
}

// AllHome reports whether c may bear off: nothing on the bar and no checker
// outside the home board.
func AllHome(b *board.Board, c board.Color) bool {
	if b.HasCheckersOnBar(c) {
		return false
	}
	for idx := 0; idx < board.NumPoints; idx++ {
		if c.Owns(b.Point(idx)) && !board.InHome(c, idx) {
			return false
		}
	}
	return true
}

// Validator checks moves for the player to move on the live board.
type Validator struct {
	board *board.Board
	turns *turn.Manager
}

// NewValidator binds a Validator to b and turns.
func NewValidator(b *board.Board, turns *turn.Manager) *Validator {
	return &Validator{board: b, turns: turns}
}

// ValidateMove checks a move from origin (0-23) with die.
func (v *Validator) ValidateMove(origin, die int) Verdict {
	return CheckMove(v.board, v.turns.Current(), origin, die)
}

// ValidateBarEntry checks entering from the bar with die.
func (v *Validator) ValidateBarEntry(die int) Verdict {
	return CheckBarEntry(v.board, v.turns.Current(), die)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
