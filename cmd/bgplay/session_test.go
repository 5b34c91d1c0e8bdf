package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yourusername/bgrules/pkg/dice"
	"github.com/yourusername/bgrules/pkg/engine"
)

func newTestSession(t *testing.T, input string, pos *engine.Position, rolls ...[2]int) (*session, *bytes.Buffer) {
	t.Helper()
	game, err := engine.New(engine.Options{Roller: dice.NewSequence(rolls...), Position: pos})
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	var out bytes.Buffer
	return newSession(game, strings.NewReader(input), &out), &out
}

func TestSessionAliases(t *testing.T) {
	for _, name := range []string{"help", "h", "dados", "d", "mover", "m", "tablero", "t", "estado", "e", "finalizar", "f", "salir", "q"} {
		if _, ok := commands[name]; !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestSessionPlaysATurn(t *testing.T) {
	s, out := newTestSession(t, "d\nm 1 3\nm 12 5\nq\n", nil, [2]int{3, 5})
	s.run()

	text := out.String()
	for _, want := range []string{"Rolled 3-5", "Moved.", "All dice played.", "Black to play.", "Thanks for playing!"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if s.game.CurrentTurn() != engine.Black {
		t.Errorf("CurrentTurn() = %v, want black", s.game.CurrentTurn())
	}
	if pos := s.game.Positions(); pos[3] != 1 || pos[16] != 4 {
		t.Errorf("after 1/4 12/17: [3]=%d [16]=%d", pos[3], pos[16])
	}
}

func TestSessionRejectsIllegalMove(t *testing.T) {
	pos := &engine.Position{}
	pos.Points[0] = 1
	pos.Points[3] = -2
	s, out := newTestSession(t, "", pos, [2]int{3, 5})

	s.exec("roll")
	s.exec("move 1 3")
	if !strings.Contains(out.String(), "Illegal move: that point is held") {
		t.Errorf("output = %q", out.String())
	}
	if got := s.game.PendingMoves(); len(got) != 2 {
		t.Errorf("pending after rejected move = %v", got)
	}
}

func TestSessionPassesWhenBlocked(t *testing.T) {
	pos := &engine.Position{Bar: engine.Counts{White: 1}}
	pos.Points[2] = -2
	pos.Points[4] = -2
	s, out := newTestSession(t, "", pos, [2]int{3, 5})

	s.exec("roll")
	if !strings.Contains(out.String(), "No legal move with this roll.") {
		t.Errorf("output = %q", out.String())
	}
	if s.game.CurrentTurn() != engine.Black {
		t.Errorf("turn not passed: %v", s.game.CurrentTurn())
	}
}

func TestSessionWin(t *testing.T) {
	pos := &engine.Position{BorneOff: engine.Counts{White: 14}}
	pos.Points[20] = 1
	s, out := newTestSession(t, "", pos, [2]int{4, 1})

	s.exec("d")
	s.exec("m 21 4")
	s.exec("d")
	text := out.String()
	if !strings.Contains(text, "White wins the game!") {
		t.Errorf("output missing win message: %q", text)
	}
	if !strings.Contains(text, "The game is over: White won.") {
		t.Errorf("roll after the win not refused: %q", text)
	}
}

func TestSessionStatusShowsPositionID(t *testing.T) {
	s, out := newTestSession(t, "", nil, [2]int{1, 2})
	s.exec("estado")
	if !strings.Contains(out.String(), "Position ID: 4HPwATDgc/ABMA") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSessionUnknownCommand(t *testing.T) {
	s, out := newTestSession(t, "", nil, [2]int{1, 2})
	if s.exec("fly") {
		t.Error("unknown command ended the session")
	}
	if !strings.Contains(out.String(), `Unknown command "fly"`) {
		t.Errorf("output = %q", out.String())
	}
}

func TestRenderBoard(t *testing.T) {
	board := renderBoard(engine.StartingPosition())
	lines := strings.Split(strings.TrimRight(board, "\n"), "\n")
	if len(lines) != 2*stackRows+3 {
		t.Fatalf("board has %d lines:\n%s", len(lines), board)
	}
	if !strings.Contains(lines[0], " 13") || !strings.Contains(lines[0], " 24") {
		t.Errorf("top numbers = %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "  1") {
		t.Errorf("bottom numbers = %q", lines[len(lines)-1])
	}
	if !strings.Contains(board, "BAR  W:0 B:0") {
		t.Errorf("bar line missing:\n%s", board)
	}
}
