// Package positionid converts boards to and from GNU Backgammon position IDs.
//
// A position ID is 80 bits written as 14 base64 characters. Each player's
// 25 slots (24 points counted from their own ace point, then the bar) are
// stored as one 1-bit per checker followed by a 0-bit. The player not on
// roll is written first, so the same layout has a different ID depending
// on who moves next.
package positionid

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/yourusername/bgrules/internal/board"
)

// Length is the length of a position ID string.
const Length = 14

const (
	keyBytes = 10
	keyBits  = keyBytes * 8
	slots    = board.NumPoints + 1 // slot 24 is the bar
)

var (
	// ErrInvalid is returned for a string that does not decode to a legal layout.
	ErrInvalid = errors.New("invalid position ID")
	// ErrTooManyCheckers is returned when a side has more than 15 checkers
	// in play and cannot be packed into 80 bits.
	ErrTooManyCheckers = errors.New("too many checkers to encode")
	// ErrNegativeCount is returned for a board with a negative bar count.
	ErrNegativeCount = errors.New("negative checker count")
)

var encoding = base64.RawStdEncoding

type key [keyBytes]byte

func (k *key) setRun(pos, n int) {
	for p := pos; p < pos+n; p++ {
		k[p/8] |= 1 << (p % 8)
	}
}

func (k *key) bit(pos int) bool {
	return k[pos/8]&(1<<(pos%8)) != 0
}

// boardIndex maps c's own point i (0 = c's ace point) to a board index.
func boardIndex(c board.Color, i int) int {
	if c == board.White {
		return board.NumPoints - 1 - i
	}
	return i
}

// slotsOf returns c's checkers as c sees the board.
func slotsOf(b *board.Board, c board.Color) [slots]int {
	var s [slots]int
	for i := 0; i < board.NumPoints; i++ {
		if v := b.Point(boardIndex(c, i)); c.Owns(v) {
			s[i] = v * c.Direction()
		}
	}
	s[board.NumPoints] = b.BarCount(c)
	return s
}

// Encode returns the position ID of b with onRoll to move.
func Encode(b board.Board, onRoll board.Color) (string, error) {
	if !onRoll.Valid() {
		return "", fmt.Errorf("%w: %d", board.ErrInvalidColor, int(onRoll))
	}
	var k key
	pos := 0
	for _, c := range [2]board.Color{onRoll.Opponent(), onRoll} {
		s := slotsOf(&b, c)
		total := 0
		for _, n := range s {
			if n < 0 {
				return "", fmt.Errorf("%w: %s", ErrNegativeCount, c)
			}
			total += n
		}
		if total > board.CheckersPerSide {
			return "", fmt.Errorf("%w: %s has %d", ErrTooManyCheckers, c, total)
		}
		for _, n := range s {
			k.setRun(pos, n)
			pos += n + 1
		}
	}
	return encoding.EncodeToString(k[:]), nil
}

// Decode rebuilds the board described by id with onRoll to move. Checkers
// missing from a side are placed in its borne-off tray.
func Decode(id string, onRoll board.Color) (board.Board, error) {
	if !onRoll.Valid() {
		return board.Board{}, fmt.Errorf("%w: %d", board.ErrInvalidColor, int(onRoll))
	}
	if len(id) != Length {
		return board.Board{}, fmt.Errorf("%w: length %d, want %d", ErrInvalid, len(id), Length)
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return board.Board{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var k key
	copy(k[:], raw)

	var counts [2][slots]int
	side, slot := 0, 0
	for pos := 0; pos < keyBits; pos++ {
		set := k.bit(pos)
		if side == 2 {
			if set {
				return board.Board{}, fmt.Errorf("%w: trailing checkers", ErrInvalid)
			}
			continue
		}
		if set {
			counts[side][slot]++
			continue
		}
		slot++
		if slot == slots {
			side, slot = side+1, 0
		}
	}
	if side < 2 {
		return board.Board{}, fmt.Errorf("%w: truncated", ErrInvalid)
	}

	var points [board.NumPoints]int
	var bar, off board.Counts
	for i, c := range [2]board.Color{onRoll.Opponent(), onRoll} {
		total := 0
		for p := 0; p < board.NumPoints; p++ {
			n := counts[i][p]
			if n == 0 {
				continue
			}
			idx := boardIndex(c, p)
			if points[idx] != 0 {
				return board.Board{}, fmt.Errorf("%w: both sides on point %d", ErrInvalid, idx+1)
			}
			points[idx] = n * c.Direction()
			total += n
		}
		onBar := counts[i][board.NumPoints]
		total += onBar
		if total > board.CheckersPerSide {
			return board.Board{}, fmt.Errorf("%w: %s has %d checkers", ErrInvalid, c, total)
		}
		if c == board.White {
			bar.White, off.White = onBar, board.CheckersPerSide-total
		} else {
			bar.Black, off.Black = onBar, board.CheckersPerSide-total
		}
	}
	return board.FromPoints(points, bar, off), nil
}
