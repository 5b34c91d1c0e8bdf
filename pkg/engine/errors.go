package engine

import (
	"errors"
	"fmt"

	"github.com/yourusername/bgrules/internal/board"
	"github.com/yourusername/bgrules/internal/positionid"
	"github.com/yourusername/bgrules/internal/rules"
)

// Rule violations returned by Engine.Move. All are recoverable: the
// position and the pending dice are unchanged when one is returned.
var (
	// ErrInvalidOrigin: origin out of range or holds no checker of the player to move.
	ErrInvalidOrigin = errors.New("invalid origin")
	// ErrBlockedDestination: destination holds two or more opposing checkers.
	ErrBlockedDestination = errors.New("destination blocked")
	// ErrDieUnavailable: die not pending, or the larger die is forced.
	ErrDieUnavailable = errors.New("die not available")
	// ErrInvalidBearOff: not all checkers home, die too small, or a checker
	// nearer the edge must move first.
	ErrInvalidBearOff = errors.New("invalid bear off")
	// ErrOutOfRange: a position or die value outside the board.
	ErrOutOfRange = errors.New("out of range")
	// ErrGameOver: the game already has a winner.
	ErrGameOver = errors.New("game over")
)

// ErrInvalidPosition is returned by Position.Validate.
var ErrInvalidPosition = errors.New("invalid position")

// ErrInvalidColor is returned by ParseColor.
var ErrInvalidColor = board.ErrInvalidColor

// ErrInvalidPositionID is returned by ParsePositionID for a string that
// does not decode to a legal layout.
var ErrInvalidPositionID = positionid.ErrInvalid

// reasonError maps a rejected verdict to its typed error.
func reasonError(r rules.Reason) error {
	var base error
	switch r {
	case rules.InvalidOrigin:
		base = ErrInvalidOrigin
	case rules.Blocked:
		base = ErrBlockedDestination
	case rules.NotAllHome, rules.InsufficientValue, rules.FartherChecker:
		base = ErrInvalidBearOff
	case rules.OutOfRange:
		base = ErrOutOfRange
	default:
		panic(fmt.Sprintf("engine: no error for reason %v", r))
	}
	return fmt.Errorf("%w: %s", base, r)
}
