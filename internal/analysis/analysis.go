// Package analysis answers look-ahead questions about the current roll:
// whether a die can be played at all, whether both dice of a roll can be
// played in some order, and whether the larger die is forced.
//
// Speculative moves are made on a copy of the board (board.Board is a value
// type), so the committed position is never written and nothing has to be
// restored afterwards.
package analysis

import (
	"sort"

	"github.com/yourusername/bgrules/internal/board"
	"github.com/yourusername/bgrules/internal/rules"
	"github.com/yourusername/bgrules/internal/turn"
)

// FromBar is the Candidate origin used for bar entries.
const FromBar = -1

// Candidate is a single legal checker move.
type Candidate struct {
	Origin  int // 0-23, or FromBar
	Die     int
	Verdict rules.Verdict
}

// Analyzer inspects the live board for the player to move.
type Analyzer struct {
	board *board.Board
	turns *turn.Manager
}

// New binds an Analyzer to b and turns.
func New(b *board.Board, turns *turn.Manager) *Analyzer {
	return &Analyzer{board: b, turns: turns}
}

// CanUseDie reports whether the player to move has any legal move with v.
func (a *Analyzer) CanUseDie(v int) bool {
	return CanUseDie(a.board, a.turns.Current(), v)
}

// CanUseBoth reports whether both dice of a non-double roll can be played
// in at least one order. Doubles always report true.
func (a *Analyzer) CanUseBoth(d1, d2 int) bool {
	return CanUseBoth(*a.board, a.turns.Current(), d1, d2)
}

// MustUseLargerDie reports whether only one die of a two-dice pending set
// can be played, in which case it has to be the larger one.
func (a *Analyzer) MustUseLargerDie(pending []int) bool {
	return MustUseLargerDie(*a.board, a.turns.Current(), pending)
}

// HasAnyMove reports whether at least one pending die can be played.
func (a *Analyzer) HasAnyMove(pending []int) bool {
	c := a.turns.Current()
	for _, v := range distinct(pending) {
		if CanUseDie(a.board, c, v) {
			return true
		}
	}
	return false
}

// Moves lists every legal single move for the distinct values in dice,
// ordered by die then origin.
func (a *Analyzer) Moves(dice []int) []Candidate {
	return Moves(a.board, a.turns.Current(), dice)
}

// CanUseDie reports whether c has a legal move with v on b. Bar checkers
// must enter first, so only the entry point matters while any are waiting.
func CanUseDie(b *board.Board, c board.Color, v int) bool {
	if b.HasCheckersOnBar(c) {
		return rules.CheckBarEntry(b, c, v).Ok()
	}
	for origin := 0; origin < board.NumPoints; origin++ {
		if !c.Owns(b.Point(origin)) {
			continue
		}
		if rules.CheckMove(b, c, origin, v).Ok() {
			return true
		}
	}
	return false
}

// CanUseBoth works on its own copy of b.
func CanUseBoth(b board.Board, c board.Color, d1, d2 int) bool {
	if d1 == d2 {
		return true
	}
	return playableAfter(b, c, d1, d2) || playableAfter(b, c, d2, d1)
}

// playableAfter plays one move with first on b (a copy) and reports whether
// second can still be used.
func playableAfter(b board.Board, c board.Color, first, second int) bool {
	if !playFirst(&b, c, first) {
		return false
	}
	return CanUseDie(&b, c, second)
}

// playFirst applies the first legal move found for v: a bar entry when
// checkers are waiting, otherwise the lowest-indexed origin that can move.
// Each origin has one destination per die, so a bear-off is only picked
// when that origin's destination is off the board.
func playFirst(b *board.Board, c board.Color, v int) bool {
	if b.HasCheckersOnBar(c) {
		if !rules.CheckBarEntry(b, c, v).Ok() {
			return false
		}
		rules.ApplyBarEntry(b, c, v)
		return true
	}
	for origin := 0; origin < board.NumPoints; origin++ {
		if !c.Owns(b.Point(origin)) {
			continue
		}
		if rules.CheckMove(b, c, origin, v).Ok() {
			rules.Apply(b, c, origin, v)
			return true
		}
	}
	return false
}

// MustUseLargerDie works on its own copy of b.
func MustUseLargerDie(b board.Board, c board.Color, pending []int) bool {
	if len(pending) != 2 || pending[0] == pending[1] {
		return false
	}
	d1, d2 := pending[0], pending[1]
	if !CanUseDie(&b, c, d1) || !CanUseDie(&b, c, d2) {
		return false
	}
	return !CanUseBoth(b, c, d1, d2)
}

// Moves lists every legal single move for c on b with the distinct values in dice.
func Moves(b *board.Board, c board.Color, dice []int) []Candidate {
	var out []Candidate
	onBar := b.HasCheckersOnBar(c)
	for _, v := range distinct(dice) {
		if onBar {
			if verdict := rules.CheckBarEntry(b, c, v); verdict.Ok() {
				out = append(out, Candidate{Origin: FromBar, Die: v, Verdict: verdict})
			}
			continue
		}
		for origin := 0; origin < board.NumPoints; origin++ {
			if !c.Owns(b.Point(origin)) {
				continue
			}
			if verdict := rules.CheckMove(b, c, origin, v); verdict.Ok() {
				out = append(out, Candidate{Origin: origin, Die: v, Verdict: verdict})
			}
		}
	}
	return out
}

// distinct returns the unique values of dice in ascending order.
func distinct(dice []int) []int {
	seen := make(map[int]bool, len(dice))
	out := make([]int, 0, len(dice))
	for _, v := range dice {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
