package api

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/bgrules/pkg/engine"
)

var (
	// ErrGameNotFound is returned for an unknown or expired game id.
	ErrGameNotFound = errors.New("game not found")
	// ErrStoreFull is returned when the live game limit is reached.
	ErrStoreFull = errors.New("too many games")
)

// Game is one live game. All access to its engine goes through Do or View,
// which serialize callers.
type Game struct {
	ID      string
	Created time.Time

	mu      sync.Mutex
	engine  *engine.Engine
	touched time.Time
	subs    map[chan GameResponse]struct{}
	closed  bool
}

// Do runs fn against the engine while holding the game lock. When fn
// succeeds the new state is pushed to every subscriber and returned.
func (g *Game) Do(fn func(e *engine.Engine) error) (GameResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return GameResponse{}, ErrGameNotFound
	}
	g.touched = time.Now()
	if err := fn(g.engine); err != nil {
		return GameResponse{}, err
	}
	state := g.stateLocked()
	for ch := range g.subs {
		// Slow subscribers miss intermediate states, never the lock.
		select {
		case ch <- state:
		default:
		}
	}
	return state, nil
}

// View returns the current state without changing it.
func (g *Game) View() GameResponse {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

// Inspect runs fn against the engine under the game lock without notifying
// subscribers. fn must not change the game.
func (g *Game) Inspect(fn func(e *engine.Engine)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.engine)
}

// Subscribe returns a channel receiving the state after every change. The
// channel is closed when the game is removed or cancel is called.
func (g *Game) Subscribe() (<-chan GameResponse, func()) {
	ch := make(chan GameResponse, 8)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		close(ch)
		return ch, func() {}
	}
	g.subs[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if _, ok := g.subs[ch]; ok {
				delete(g.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

func (g *Game) stateLocked() GameResponse {
	return GameResponse{ID: g.ID, State: g.engine.Snapshot()}
}

// close ends every subscription and rejects further changes.
func (g *Game) close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	for ch := range g.subs {
		delete(g.subs, ch)
		close(ch)
	}
}

func (g *Game) idleSince() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.touched
}

// Store holds the live games.
type Store struct {
	mu    sync.RWMutex
	games map[string]*Game
	max   int
	ttl   time.Duration
}

// NewStore creates a Store holding at most maxGames games (0 = unlimited).
// Games idle for longer than ttl are removed by Sweep (0 = never).
func NewStore(maxGames int, ttl time.Duration) *Store {
	return &Store{
		games: make(map[string]*Game),
		max:   maxGames,
		ttl:   ttl,
	}
}

// Create starts a new game.
func (s *Store) Create(opts engine.Options) (*Game, error) {
	e, err := engine.New(opts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	g := &Game{
		ID:      uuid.NewString(),
		Created: now,
		engine:  e,
		touched: now,
		subs:    make(map[chan GameResponse]struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.games) >= s.max {
		return nil, ErrStoreFull
	}
	s.games[g.ID] = g
	return g, nil
}

// Get returns the game with id.
func (s *Store) Get(id string) (*Game, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrGameNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Delete removes the game with id and closes its subscriptions.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	g, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()

	if !ok {
		return ErrGameNotFound
	}
	g.close()
	return nil
}

// Len returns the number of live games.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Sweep removes games idle since before now minus the TTL and returns how
// many were removed.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	var expired []*Game
	for id, g := range s.games {
		if g.idleSince().Before(cutoff) {
			expired = append(expired, g)
			delete(s.games, id)
		}
	}
	s.mu.Unlock()

	for _, g := range expired {
		g.close()
	}
	return len(expired)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Sweep(now); n > 0 {
				log.Printf("Removed %d idle games", n)
			}
		}
	}
}
