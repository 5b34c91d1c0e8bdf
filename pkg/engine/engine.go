package engine

import (
	"fmt"

	"github.com/yourusername/bgrules/internal/analysis"
	"github.com/yourusername/bgrules/internal/board"
	"github.com/yourusername/bgrules/internal/rules"
	"github.com/yourusername/bgrules/internal/turn"
	"github.com/yourusername/bgrules/pkg/dice"
)

// Engine coordinates one game: it owns the board, the turn, the dice and
// the pending moves. It is not safe for concurrent use.
type Engine struct {
	board     board.Board
	turns     *turn.Manager
	roller    dice.Roller
	validator *rules.Validator
	executor  *rules.Executor
	analyzer  *analysis.Analyzer

	pending []int
	roll    [2]int
	winner  Color
}

// Options configures a new game.
type Options struct {
	Roller   dice.Roller // nil = dice seeded from crypto/rand
	Position *Position   // nil = standard opening layout
	Start    Color       // zero = White
}

// New creates a game.
func New(opts Options) (*Engine, error) {
	roller := opts.Roller
	if roller == nil {
		d, err := dice.NewRandom()
		if err != nil {
			return nil, fmt.Errorf("create dice: %w", err)
		}
		roller = d
	}

	e := &Engine{
		turns:  turn.New(opts.Start),
		roller: roller,
	}
	if opts.Position != nil {
		e.board = opts.Position.board()
	} else {
		e.board = board.New()
	}
	e.validator = rules.NewValidator(&e.board, e.turns)
	e.executor = rules.NewExecutor(&e.board, e.turns)
	e.analyzer = analysis.New(&e.board, e.turns)

	for _, c := range []Color{White, Black} {
		if e.board.OffCount(c) >= board.CheckersPerSide {
			e.winner = c
		}
	}
	return e, nil
}

// RollDice rolls both dice and replaces the pending moves with the result.
func (e *Engine) RollDice() (int, int) {
	d1, d2 := e.roller.Roll()
	e.roll = [2]int{d1, d2}
	e.pending = dice.Pending(d1, d2)
	return d1, d2
}

// Move plays die for the checker on origin (1-24). While the player to move
// has checkers on the bar the move is a bar entry and origin is ignored.
// On success one occurrence of die is removed from the pending moves.
func (e *Engine) Move(origin, die int) (Outcome, error) {
	if e.winner.Valid() {
		return Outcome{}, fmt.Errorf("%w: %s won", ErrGameOver, e.winner)
	}
	if !contains(e.pending, die) {
		return Outcome{}, fmt.Errorf("%w: %d not in %v", ErrDieUnavailable, die, e.pending)
	}
	if e.analyzer.MustUseLargerDie(e.pending) {
		if larger := max(e.pending[0], e.pending[1]); die != larger {
			return Outcome{}, fmt.Errorf("%w: only one die can be played and it must be the %d",
				ErrDieUnavailable, larger)
		}
	}

	var out Outcome
	if e.board.HasCheckersOnBar(e.turns.Current()) {
		if v := e.validator.ValidateBarEntry(die); !v.Ok() {
			return Outcome{}, reasonError(v.Reason)
		}
		out = e.executor.ExecuteBarEntry(die)
	} else {
		idx := origin - 1
		if !board.OnBoard(idx) {
			return Outcome{}, fmt.Errorf("%w: point %d", ErrInvalidOrigin, origin)
		}
		if v := e.validator.ValidateMove(idx, die); !v.Ok() {
			return Outcome{}, reasonError(v.Reason)
		}
		out = e.executor.ExecuteMove(idx, die)
	}

	e.pending = remove(e.pending, die)
	if out.Kind == GameOver {
		e.winner = out.Winner
	}
	return out, nil
}

// EndTurn discards any pending moves and passes the turn.
func (e *Engine) EndTurn() {
	e.pending = nil
	e.turns.Switch()
}

// CurrentTurn returns the player to move.
func (e *Engine) CurrentTurn() Color {
	return e.turns.Current()
}

// PendingMoves returns a copy of the dice still to play.
func (e *Engine) PendingMoves() []int {
	return append([]int(nil), e.pending...)
}

// HasMovesPending reports whether any die is still to play.
func (e *Engine) HasMovesPending() bool {
	return len(e.pending) > 0
}

// HasAnyMovePossible reports whether at least one pending die can be played.
func (e *Engine) HasAnyMovePossible() bool {
	if e.winner.Valid() {
		return false
	}
	return e.analyzer.HasAnyMove(e.pending)
}

// MustUseLargerDie reports whether only the larger of two pending dice may be played.
func (e *Engine) MustUseLargerDie() bool {
	return e.analyzer.MustUseLargerDie(e.pending)
}

// LastRoll returns the most recent roll, or (0, 0) before the first.
func (e *Engine) LastRoll() (int, int) {
	return e.roll[0], e.roll[1]
}

// Positions returns a copy of the 24 points.
func (e *Engine) Positions() [NumPoints]int {
	return e.board.Points()
}

// BarState returns a copy of the bar counts.
func (e *Engine) BarState() Counts {
	return e.board.Bar()
}

// BorneOffState returns a copy of the borne-off counts.
func (e *Engine) BorneOffState() Counts {
	return e.board.BorneOff()
}

// CheckerAt returns the signed checker value on position (1-24).
func (e *Engine) CheckerAt(position int) (int, error) {
	if position < 1 || position > NumPoints {
		return 0, fmt.Errorf("%w: point %d", ErrOutOfRange, position)
	}
	return e.board.Point(position - 1), nil
}

// Winner returns the winning color once a side has borne off all checkers.
func (e *Engine) Winner() (Color, bool) {
	return e.winner, e.winner.Valid()
}

// Position returns a copy of the full layout.
func (e *Engine) Position() Position {
	return positionOf(&e.board)
}

// Snapshot returns the complete game state.
func (e *Engine) Snapshot() State {
	pos, turn := e.Position(), e.turns.Current()
	id, _ := pos.ID(turn)
	return State{
		Position:      pos,
		PositionID:    id,
		Turn:          turn,
		Dice:          e.roll,
		Pending:       e.PendingMoves(),
		MustUseLarger: e.MustUseLargerDie(),
		CanMove:       e.HasAnyMovePossible(),
		Winner:        e.winner,
	}
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// remove drops the first occurrence of v.
func remove(values []int, v int) []int {
	for i, x := range values {
		if x == v {
			out := make([]int, 0, len(values)-1)
			out = append(out, values[:i]...)
			return append(out, values[i+1:]...)
		}
	}
	return values
}
