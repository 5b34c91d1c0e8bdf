// Package api provides an HTTP/JSON and WebSocket front-end over the rules
// engine. Each game lives in memory under a generated id and is played
// hot-seat: the server enforces the rules, not who is calling.
package api

import (
	"github.com/yourusername/bgrules/pkg/engine"
	"github.com/yourusername/bgrules/pkg/playout"
)

// ============================================================================
// Request Types
// ============================================================================

// CreateGameRequest is the optional request body for POST /api/games.
type CreateGameRequest struct {
	Seed     int64            `json:"seed,omitempty"`     // Dice seed (0 = random)
	Start    string           `json:"start,omitempty"`    // "white" or "black" (default white)
	Position *engine.Position `json:"position,omitempty"` // Custom layout (default opening)
	// GNU Backgammon position ID, read with Start on roll. Not allowed together with Position.
	PositionID string `json:"position_id,omitempty"`
}

// MoveRequest is the request body for POST /api/games/{id}/move.
type MoveRequest struct {
	Origin int `json:"origin"` // Point 1-24, ignored while the mover has checkers on the bar
	Die    int `json:"die"`    // Pending die value to play
}

// PlayoutRequest is the request body for POST /api/playout.
type PlayoutRequest struct {
	Games    int   `json:"games,omitempty"`     // Number of games (default 100, max 10000)
	Seed     int64 `json:"seed,omitempty"`      // Random seed (0 = random)
	Workers  int   `json:"workers,omitempty"`   // Parallel workers (0 = all cores)
	MaxTurns int   `json:"max_turns,omitempty"` // Turn limit per game (default 1000)
}

// ============================================================================
// Response Types
// ============================================================================

// GameResponse is the state of one game.
type GameResponse struct {
	ID string `json:"id"`
	engine.State
}

// RollResponse is the response for POST /api/games/{id}/roll.
type RollResponse struct {
	Dice [2]int       `json:"dice"`
	Game GameResponse `json:"game"`
}

// MoveResponse is the response for POST /api/games/{id}/move.
type MoveResponse struct {
	Outcome  string       `json:"outcome"`            // moved, moved_and_captured, entered, removed, game_over:<color>
	Captured bool         `json:"captured,omitempty"` // an opposing blot went to the bar
	Game     GameResponse `json:"game"`
}

// MovesResponse lists the moves the player to move may make now.
type MovesResponse struct {
	Moves         map[int][]engine.Target `json:"moves"`   // keyed by origin point, 0 = bar
	Origins       []int                   `json:"origins"` // keys of Moves in ascending order
	MustUseLarger bool                    `json:"must_use_larger"`
}

// PlayoutResponse is the response for POST /api/playout.
type PlayoutResponse struct {
	*playout.Result
	ElapsedMs int64 `json:"elapsed_ms"`
}

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Error string `json:"error"`          // Error message
	Code  string `json:"code,omitempty"` // Error code
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string     `json:"status"`         // "ok"
	Version string     `json:"version"`        // Server version
	Games   int        `json:"games"`          // Live games
	Pool    *PoolStats `json:"pool,omitempty"` // Worker pool stats
}
