package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yourusername/bgrules/pkg/engine"
)

// session reads commands line by line and plays them on one game.
type session struct {
	game  *engine.Engine
	in    *bufio.Scanner
	out   io.Writer
	title cases.Caser
}

func newSession(game *engine.Engine, in io.Reader, out io.Writer) *session {
	return &session{
		game:  game,
		in:    bufio.NewScanner(in),
		out:   out,
		title: cases.Title(language.English),
	}
}

type command func(s *session, args []string) (quit bool)

// commands maps every accepted name, including the short and Spanish
// aliases, to its handler.
var commands = map[string]command{}

func init() {
	register := func(fn command, names ...string) {
		for _, n := range names {
			commands[n] = fn
		}
	}
	register((*session).help, "help", "h", "ayuda")
	register((*session).roll, "roll", "r", "dados", "d")
	register((*session).move, "move", "mover", "m")
	register((*session).showBoard, "board", "tablero", "t")
	register((*session).status, "status", "estado", "e")
	register((*session).moves, "moves", "options", "o")
	register((*session).endTurn, "end", "finalizar", "f")
	register((*session).quit, "quit", "salir", "q")
}

func (s *session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

// label returns a color name for display, e.g. "White".
func (s *session) label(c engine.Color) string {
	return s.title.String(c.String())
}

func (s *session) run() {
	s.printf("Backgammon - type 'help' for commands\n")
	s.printf("%s moves first\n", s.label(s.game.CurrentTurn()))
	s.printBoard()

	for {
		s.printf("%s> ", s.game.CurrentTurn())
		if !s.in.Scan() {
			s.printf("\n")
			return
		}
		if s.exec(s.in.Text()) {
			return
		}
	}
}

// exec runs one input line and reports whether the session should end.
func (s *session) exec(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}
	cmd, ok := commands[fields[0]]
	if !ok {
		s.printf("Unknown command %q. Type 'help' for the list.\n", fields[0])
		return false
	}
	return cmd(s, fields[1:])
}

func (s *session) help(_ []string) bool {
	s.printf(`Commands:
  help, h               show this help
  roll, dados, d        roll the dice
  move, m <from> <die>  move a checker from point <from> (1-24, or "bar") by <die>
  moves, o              list the moves you can make now
  board, tablero, t     show the board
  status, estado, e     show turn, dice and counts
  end, finalizar, f     end the turn, forfeiting unused dice
  quit, salir, q        leave the game

W = white, moves from 1 towards 24. B = black, moves from 24 towards 1.
`)
	return false
}

func (s *session) roll(_ []string) bool {
	if s.finished() {
		return false
	}
	if s.game.HasMovesPending() {
		s.printf("You still have dice to play: %v\n", s.game.PendingMoves())
		return false
	}

	d1, d2 := s.game.RollDice()
	s.printf("Rolled %d-%d", d1, d2)
	if d1 == d2 {
		s.printf(" (doubles: four moves of %d)", d1)
	}
	s.printf("\n")

	if !s.game.HasAnyMovePossible() {
		s.printf("No legal move with this roll.\n")
		s.passTurn()
		return false
	}
	if s.game.MustUseLargerDie() {
		s.printf("Only one die can be played: it must be the larger.\n")
	}
	s.printf("Dice to play: %v\n", s.game.PendingMoves())
	return false
}

func (s *session) move(args []string) bool {
	if s.finished() {
		return false
	}
	if len(args) != 2 {
		s.printf("Usage: move <from> <die>\n")
		return false
	}

	origin := engine.BarOrigin
	if args[0] != "bar" && args[0] != "barra" {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			s.printf("Point must be a number from 1 to 24 or 'bar'\n")
			return false
		}
		origin = n
	}
	die, err := strconv.Atoi(args[1])
	if err != nil {
		s.printf("Die must be a number\n")
		return false
	}

	out, err := s.game.Move(origin, die)
	if err != nil {
		s.printf("Illegal move: %s\n", describe(err))
		return false
	}

	s.printf("%s\n", s.outcomeText(out))
	s.printBoard()
	if out.Kind == engine.GameOver {
		return false
	}

	switch {
	case !s.game.HasMovesPending():
		s.printf("All dice played.\n")
		s.passTurn()
	case !s.game.HasAnyMovePossible():
		s.printf("No legal move for the remaining dice %v.\n", s.game.PendingMoves())
		s.passTurn()
	default:
		s.printf("Dice left: %v\n", s.game.PendingMoves())
	}
	return false
}

func (s *session) moves(_ []string) bool {
	possible := s.game.PossibleMoves()
	if len(possible) == 0 {
		s.printf("No moves available.\n")
		return false
	}
	for _, origin := range engine.Origins(possible) {
		from := strconv.Itoa(origin)
		if origin == engine.BarOrigin {
			from = "bar"
		}
		var targets []string
		for _, t := range possible[origin] {
			to := strconv.Itoa(t.To)
			if t.BearOff {
				to = "off"
			}
			if t.Capture {
				to += "*"
			}
			targets = append(targets, fmt.Sprintf("%s (%d)", to, t.Die))
		}
		s.printf("  %3s -> %s\n", from, strings.Join(targets, ", "))
	}
	return false
}

func (s *session) showBoard(_ []string) bool {
	s.printBoard()
	return false
}

func (s *session) status(_ []string) bool {
	s.printf("Turn: %s\n", s.label(s.game.CurrentTurn()))
	if pending := s.game.PendingMoves(); len(pending) > 0 {
		s.printf("Dice to play: %v\n", pending)
	} else {
		s.printf("No dice to play\n")
	}
	bar, off := s.game.BarState(), s.game.BorneOffState()
	if bar.White > 0 || bar.Black > 0 {
		s.printf("On the bar - White: %d, Black: %d\n", bar.White, bar.Black)
	}
	s.printf("Borne off - White: %d, Black: %d\n", off.White, off.Black)
	if id := s.game.Snapshot().PositionID; id != "" {
		s.printf("Position ID: %s\n", id)
	}
	if w, over := s.game.Winner(); over {
		s.printf("%s won.\n", s.label(w))
	}
	return false
}

func (s *session) endTurn(_ []string) bool {
	if s.finished() {
		return false
	}
	if pending := s.game.PendingMoves(); len(pending) > 0 {
		s.printf("Forfeiting unused dice %v\n", pending)
	}
	s.passTurn()
	return false
}

func (s *session) quit(_ []string) bool {
	s.printf("Thanks for playing!\n")
	return true
}

func (s *session) passTurn() {
	s.game.EndTurn()
	s.printf("%s to play.\n", s.label(s.game.CurrentTurn()))
}

// finished prints the result and reports true once the game has a winner.
func (s *session) finished() bool {
	if w, over := s.game.Winner(); over {
		s.printf("The game is over: %s won.\n", s.label(w))
		return true
	}
	return false
}

func (s *session) outcomeText(out engine.Outcome) string {
	switch out.Kind {
	case engine.Moved:
		return "Moved."
	case engine.MovedAndCaptured:
		return "Moved and hit a blot."
	case engine.Entered:
		return "Entered from the bar."
	case engine.EnteredAndCaptured:
		return "Entered from the bar and hit a blot."
	case engine.BoreOff:
		return "Checker borne off."
	case engine.GameOver:
		return fmt.Sprintf("Checker borne off. %s wins the game!", s.label(out.Winner))
	}
	return out.String()
}

// describe turns an engine error into a short message for the player.
func describe(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidOrigin):
		return "you have no checker on that point"
	case errors.Is(err, engine.ErrBlockedDestination):
		return "that point is held by two or more opposing checkers"
	}
	return err.Error()
}
