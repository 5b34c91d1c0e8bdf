package engine

import (
	"sort"

	"github.com/yourusername/bgrules/internal/analysis"
)

// BarOrigin is the PossibleMoves key for checkers entering from the bar.
const BarOrigin = 0

// Target is one legal destination for a checker.
type Target struct {
	To      int  `json:"to"`  // 1-24, or 0 when bearing off
	Die     int  `json:"die"` // die value that reaches it
	BearOff bool `json:"bear_off,omitempty"`
	Capture bool `json:"capture,omitempty"`
}

// PossibleMoves lists every move Move would accept right now, keyed by
// 1-based origin (BarOrigin for bar entries). When the larger die is forced
// only its moves are listed.
func (e *Engine) PossibleMoves() map[int][]Target {
	out := make(map[int][]Target)
	if e.winner.Valid() || len(e.pending) == 0 {
		return out
	}

	playable := e.pending
	if e.analyzer.MustUseLargerDie(e.pending) {
		playable = []int{max(e.pending[0], e.pending[1])}
	}

	for _, c := range e.analyzer.Moves(playable) {
		key := c.Origin + 1
		if c.Origin == analysis.FromBar {
			key = BarOrigin
		}
		t := Target{Die: c.Die, BearOff: c.Verdict.BearOff, Capture: c.Verdict.Capture}
		if !c.Verdict.BearOff {
			t.To = c.Verdict.Dest + 1
		}
		out[key] = append(out[key], t)
	}
	return out
}

// Origins returns the keys of a PossibleMoves result in ascending order.
func Origins(moves map[int][]Target) []int {
	keys := make([]int, 0, len(moves))
	for k := range moves {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
