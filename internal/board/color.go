package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidColor is returned for any color tag other than white or black.
var ErrInvalidColor = errors.New("invalid color")

// Color identifies a player. The zero value is not a valid color.
type Color int

const (
	White Color = 1  // player A, moves toward higher points
	Black Color = -1 // player B, moves toward lower points
)

// Valid reports whether c is White or Black.
func (c Color) Valid() bool {
	return c == White || c == Black
}

// Direction is the signed step applied to an index: destination = origin + Direction()*die.
func (c Color) Direction() int {
	return int(c)
}

// Opponent returns the other color.
func (c Color) Opponent() Color {
	return -c
}

// Owns reports whether a point value v holds c's checkers.
func (c Color) Owns(v int) bool {
	return v*int(c) > 0
}

// Opposes reports whether a point value v holds the opponent's checkers.
func (c Color) Opposes(v int) bool {
	return v*int(c) < 0
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColor, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "white"/"black", the single letters "w"/"b", the
// player labels "A"/"B" and the Spanish "blancas"/"negras".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w", "a", "blancas":
		return White, nil
	case "black", "b", "negras":
		return Black, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func (c Color) index() int {
	if c == Black {
		return 1
	}
	return 0
}
