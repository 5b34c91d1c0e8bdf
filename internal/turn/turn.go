// Package turn tracks whose turn it is.
package turn

import (
	"fmt"

	"github.com/yourusername/bgrules/internal/board"
)

// Manager holds the player to move. Turns only change through Switch.
type Manager struct {
	current board.Color
}

// New returns a Manager with start to move. An invalid start falls back to white.
func New(start board.Color) *Manager {
	if !start.Valid() {
		start = board.White
	}
	return &Manager{current: start}
}

// Current returns the color to move.
func (m *Manager) Current() board.Color {
	return m.current
}

// Direction returns the arithmetic step of the player to move (+1 or -1).
func (m *Manager) Direction() int {
	return m.current.Direction()
}

// Switch passes the turn to the opponent.
func (m *Manager) Switch() {
	m.current = m.current.Opponent()
}

// IsTurnOf reports whether c is to move.
func (m *Manager) IsTurnOf(c board.Color) (bool, error) {
	if !c.Valid() {
		return false, fmt.Errorf("%w: %d", board.ErrInvalidColor, int(c))
	}
	return m.current == c, nil
}
