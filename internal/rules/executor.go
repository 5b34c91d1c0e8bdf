package rules

import (
	"fmt"

	"github.com/yourusername/bgrules/internal/board"
	"github.com/yourusername/bgrules/internal/turn"
)

// OutcomeKind classifies what a move did.
type OutcomeKind int

const (
	Moved OutcomeKind = iota
	MovedAndCaptured
	Entered
	EnteredAndCaptured
	BoreOff
	GameOver
)

var outcomeText = [...]string{
	Moved:              "moved",
	MovedAndCaptured:   "moved_and_captured",
	Entered:            "entered",
	EnteredAndCaptured: "entered_and_captured",
	BoreOff:            "removed",
	GameOver:           "game_over",
}

func (k OutcomeKind) String() string {
	if k < 0 || int(k) >= len(outcomeText) {
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
	return outcomeText[k]
}

// Outcome is the effect of an executed move. Winner is only set for GameOver.
type Outcome struct {
	Kind   OutcomeKind
	Winner board.Color
}

func (o Outcome) String() string {
	if o.Kind == GameOver {
		return fmt.Sprintf("%s:%s", o.Kind, o.Winner)
	}
	return o.Kind.String()
}

// Captured reports whether the move sent an opposing checker to the bar.
func (o Outcome) Captured() bool {
	return o.Kind == MovedAndCaptured || o.Kind == EnteredAndCaptured
}

// Apply moves one of c's checkers from origin by die pips. The move must
// already have passed CheckMove; an empty origin panics.
func Apply(b *board.Board, c board.Color, origin, die int) Outcome {
	if !c.Owns(b.Point(origin)) {
		panic(fmt.Sprintf("rules: apply from empty origin %d for %v", origin, c))
	}

	dest := origin + c.Direction()*die
	b.AddPoint(origin, -c.Direction())

	if !board.OnBoard(dest) {
		if n := b.AddBorneOff(c, 1); n >= board.CheckersPerSide {
			return Outcome{Kind: GameOver, Winner: c}
		}
		return Outcome{Kind: BoreOff}
	}

	if land(b, c, dest) {
		return Outcome{Kind: MovedAndCaptured}
	}
	return Outcome{Kind: Moved}
}

// ApplyBarEntry enters one of c's checkers from the bar with die. The entry
// must already have passed CheckBarEntry.
func ApplyBarEntry(b *board.Board, c board.Color, die int) Outcome {
	dest, err := EntryIndex(c, die)
	if err != nil {
		panic("rules: " + err.Error())
	}

	b.AddBar(c, -1)
	if land(b, c, dest) {
		return Outcome{Kind: EnteredAndCaptured}
	}
	return Outcome{Kind: Entered}
}

// land places one of c's checkers on dest. A lone opposing checker is sent
// to the bar and replaced, not stacked on.
func land(b *board.Board, c board.Color, dest int) bool {
	v := b.Point(dest)
	if c.Opposes(v) && abs(v) == 1 {
		b.AddBar(c.Opponent(), 1)
		b.SetPoint(dest, c.Direction())
		return true
	}
	b.AddPoint(dest, c.Direction())
	return false
}

// Executor applies validated moves for the player to move on the live board.
type Executor struct {
	board *board.Board
	turns *turn.Manager
}

// NewExecutor binds an Executor to b and turns.
func NewExecutor(b *board.Board, turns *turn.Manager) *Executor {
	return &Executor{board: b, turns: turns}
}

// ExecuteMove applies a validated move from origin (0-23) with die.
func (e *Executor) ExecuteMove(origin, die int) Outcome {
	return Apply(e.board, e.turns.Current(), origin, die)
}

// ExecuteBarEntry applies a validated bar entry with die.
func (e *Executor) ExecuteBarEntry(die int) Outcome {
	return ApplyBarEntry(e.board, e.turns.Current(), die)
}
