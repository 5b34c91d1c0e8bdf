package positionid

import (
	"errors"
	"testing"

	"github.com/yourusername/bgrules/internal/board"
)

// Known ID of the opening layout, the same for either side on roll.
const startingPositionID = "4HPwATDgc/ABMA"

func layout(points map[int]int, bar, off board.Counts) board.Board {
	var p [board.NumPoints]int
	for idx, v := range points {
		p[idx] = v
	}
	return board.FromPoints(p, bar, off)
}

func TestEncodeStartingPosition(t *testing.T) {
	for _, c := range []board.Color{board.White, board.Black} {
		id, err := Encode(board.New(), c)
		if err != nil {
			t.Fatalf("Encode(%v) error = %v", c, err)
		}
		if id != startingPositionID {
			t.Errorf("Encode(start, %v) = %s, want %s", c, id, startingPositionID)
		}
	}
}

func TestEncode(t *testing.T) {
	// white made its 5-point with an opening 3-1
	afterOpening := board.New()
	afterOpening.AddPoint(16, -1)
	afterOpening.AddPoint(18, -1)
	afterOpening.AddPoint(19, 2)

	tests := []struct {
		name   string
		b      board.Board
		onRoll board.Color
		want   string
	}{
		{"opening 3-1, black on roll", afterOpening, board.Black, "sGfwATDgc/ABMA"},
		{"opening 3-1, white on roll", afterOpening, board.White, "4HPwATCwZ/ABMA"},
		{"last checker, white on roll", layout(map[int]int{20: 1}, board.Counts{}, board.Counts{White: 14, Black: 15}), board.White, "AAAAEAAAAAAAAA"},
		{"last checker, black on roll", layout(map[int]int{20: 1}, board.Counts{}, board.Counts{White: 14, Black: 15}), board.Black, "CAAAAAAAAAAAAA"},
		{"white on the bar", layout(map[int]int{2: -2, 4: -2}, board.Counts{White: 1}, board.Counts{White: 14, Black: 11}), board.White, "zAAAAAAAIAAAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.b, tt.onRoll)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}

			back, err := Decode(got, tt.onRoll)
			if err != nil {
				t.Fatalf("Decode(%s) error = %v", got, err)
			}
			if back != tt.b {
				t.Errorf("Decode(%s) = %+v, want %+v", got, back, tt.b)
			}
		})
	}
}

func TestEncodeTooManyCheckers(t *testing.T) {
	b := layout(map[int]int{0: 16}, board.Counts{}, board.Counts{})
	if _, err := Encode(b, board.White); !errors.Is(err, ErrTooManyCheckers) {
		t.Errorf("Encode() error = %v, want ErrTooManyCheckers", err)
	}
}

func TestEncodeNegativeBar(t *testing.T) {
	for _, bar := range []board.Counts{{White: -3}, {Black: -100}} {
		b := layout(map[int]int{0: 15, 23: -15}, bar, board.Counts{})
		if _, err := Encode(b, board.White); !errors.Is(err, ErrNegativeCount) {
			t.Errorf("Encode(bar %+v) error = %v, want ErrNegativeCount", bar, err)
		}
	}
}

func TestInvalidOnRoll(t *testing.T) {
	if _, err := Encode(board.New(), board.Color(0)); !errors.Is(err, board.ErrInvalidColor) {
		t.Errorf("Encode() error = %v, want ErrInvalidColor", err)
	}
	if _, err := Decode(startingPositionID, board.Color(0)); !errors.Is(err, board.ErrInvalidColor) {
		t.Errorf("Decode() error = %v, want ErrInvalidColor", err)
	}
}

func TestDecodeStartingPosition(t *testing.T) {
	b, err := Decode(startingPositionID, board.White)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if b != board.New() {
		t.Errorf("Decode(start) = %+v", b)
	}
}

func TestDecodeEmpty(t *testing.T) {
	b, err := Decode("AAAAAAAAAAAAAA", board.White)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if off := b.BorneOff(); off != (board.Counts{White: 15, Black: 15}) {
		t.Errorf("BorneOff() = %+v, want all checkers off", off)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"short", "4HPwATDgc/ABM"},
		{"long", "4HPwATDgc/ABMAA"},
		{"bad character", "4HPwATDgc*ABMA"},
		{"all ones", "//////////////"},
		{"sixteen checkers", "//8AAAAAAAAAAA"},
		{"shared point", "AQAAAAAAAgAAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.id, board.White); !errors.Is(err, ErrInvalid) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalid", tt.id, err)
			}
		})
	}
}
