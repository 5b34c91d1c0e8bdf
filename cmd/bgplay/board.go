package main

import (
	"fmt"
	"strings"

	"github.com/yourusername/bgrules/pkg/engine"
)

// stackRows is how many checkers a point shows before switching to a count.
const stackRows = 5

// printBoard draws points 13-24 on top and 12-1 underneath, with the bar
// and borne-off counts in between.
func (s *session) printBoard() {
	s.printf("%s", renderBoard(s.game.Position()))
}

func renderBoard(p engine.Position) string {
	var b strings.Builder
	top := pointRange(12, 23)
	bottom := pointRange(11, 0)

	b.WriteString(numbers(top))
	for row := 0; row < stackRows; row++ {
		b.WriteString(stackLine(p, top, row))
	}
	fmt.Fprintf(&b, " BAR  W:%d B:%d    OFF  W:%d B:%d\n",
		p.Bar.White, p.Bar.Black, p.BorneOff.White, p.BorneOff.Black)
	for row := stackRows - 1; row >= 0; row-- {
		b.WriteString(stackLine(p, bottom, row))
	}
	b.WriteString(numbers(bottom))
	return b.String()
}

// pointRange lists indices from first to last inclusive, in either direction.
func pointRange(first, last int) []int {
	step := 1
	if last < first {
		step = -1
	}
	var out []int
	for i := first; i != last+step; i += step {
		out = append(out, i)
	}
	return out
}

func numbers(idx []int) string {
	var b strings.Builder
	for i, n := range idx {
		if i == 6 {
			b.WriteString(" |")
		}
		fmt.Fprintf(&b, " %3d", n+1)
	}
	b.WriteString("\n")
	return b.String()
}

// stackLine draws one row of checkers. The last row shows the count when a
// stack is taller than the board.
func stackLine(p engine.Position, idx []int, row int) string {
	var b strings.Builder
	for i, n := range idx {
		if i == 6 {
			b.WriteString(" |")
		}
		v := p.Points[n]
		count := v
		if count < 0 {
			count = -count
		}
		cell := "."
		switch {
		case count > stackRows && row == stackRows-1:
			cell = fmt.Sprintf("%d", count)
		case count > row:
			cell = "W"
			if v < 0 {
				cell = "B"
			}
		}
		fmt.Fprintf(&b, " %3s", cell)
	}
	b.WriteString("\n")
	return b.String()
}
