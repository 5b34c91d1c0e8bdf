package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yourusername/bgrules/pkg/dice"
	"github.com/yourusername/bgrules/pkg/engine"
	"github.com/yourusername/bgrules/pkg/playout"
)

// maxPlayoutGames bounds a single playout request.
const maxPlayoutGames = 10000

// Handlers holds the HTTP handlers and the game store.
type Handlers struct {
	store   *Store
	version string
	pool    *WorkerPool
}

// NewHandlers creates a new Handlers instance without a worker pool.
func NewHandlers(store *Store, version string) *Handlers {
	return &Handlers{
		store:   store,
		version: version,
	}
}

// NewHandlersWithPool creates a new Handlers instance with a worker pool.
func NewHandlersWithPool(store *Store, version string, pool *WorkerPool) *Handlers {
	return &Handlers{
		store:   store,
		version: version,
		pool:    pool,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// errorStatus maps an error to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return http.StatusNotFound, "GAME_NOT_FOUND"
	case errors.Is(err, ErrStoreFull):
		return http.StatusServiceUnavailable, "TOO_MANY_GAMES"
	case errors.Is(err, engine.ErrGameOver):
		return http.StatusConflict, "GAME_OVER"
	case errors.Is(err, engine.ErrInvalidOrigin):
		return http.StatusUnprocessableEntity, "INVALID_ORIGIN"
	case errors.Is(err, engine.ErrBlockedDestination):
		return http.StatusUnprocessableEntity, "BLOCKED_DESTINATION"
	case errors.Is(err, engine.ErrDieUnavailable):
		return http.StatusUnprocessableEntity, "DIE_UNAVAILABLE"
	case errors.Is(err, engine.ErrInvalidBearOff):
		return http.StatusUnprocessableEntity, "INVALID_BEAR_OFF"
	case errors.Is(err, engine.ErrOutOfRange):
		return http.StatusBadRequest, "OUT_OF_RANGE"
	case errors.Is(err, engine.ErrInvalidColor):
		return http.StatusBadRequest, "INVALID_COLOR"
	case errors.Is(err, engine.ErrInvalidPositionID):
		return http.StatusBadRequest, "INVALID_POSITION_ID"
	case errors.Is(err, engine.ErrInvalidPosition):
		return http.StatusBadRequest, "INVALID_POSITION"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

func writeEngineError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	writeError(w, status, err.Error(), code)
}

// acquireFast takes a fast slot when a pool is configured. It writes the
// error response and returns false when the server is busy.
func (h *Handlers) acquireFast(w http.ResponseWriter, r *http.Request) (release func(), ok bool) {
	if h.pool == nil {
		return func() {}, true
	}
	if err := h.pool.AcquireFast(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		return nil, false
	}
	return h.pool.ReleaseFast, true
}

// game looks up the {id} path value and writes a 404 when it is unknown.
func (h *Handlers) game(w http.ResponseWriter, r *http.Request) (*Game, bool) {
	g, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	return g, true
}

// gameOptions turns a create request into engine options.
func gameOptions(req CreateGameRequest) (engine.Options, error) {
	var opts engine.Options
	if req.Seed != 0 {
		opts.Roller = dice.New(req.Seed)
	}
	if req.Start != "" {
		c, err := engine.ParseColor(req.Start)
		if err != nil {
			return opts, err
		}
		opts.Start = c
	}
	if req.Position != nil && req.PositionID != "" {
		return opts, fmt.Errorf("%w: position and position_id are exclusive", engine.ErrInvalidPosition)
	}
	if req.Position != nil {
		if err := req.Position.Validate(); err != nil {
			return opts, err
		}
		opts.Position = req.Position
	}
	if req.PositionID != "" {
		onRoll := opts.Start
		if !onRoll.Valid() {
			onRoll = engine.White
		}
		pos, err := engine.ParsePositionID(req.PositionID, onRoll)
		if err != nil {
			return opts, err
		}
		opts.Position = &pos
	}
	return opts, nil
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}
	if h.store != nil {
		resp.Games = h.store.Len()
	}

	// Include pool stats if available
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateGame handles POST /api/games
func (h *Handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	// The body is optional.
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	opts, err := gameOptions(req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	g, err := h.store.Create(opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g.View())
}

// GetGame handles GET /api/games/{id}
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

// DeleteGame handles DELETE /api/games/{id}
func (h *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.PathValue("id")); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Roll handles POST /api/games/{id}/roll
func (h *Handlers) Roll(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	g, ok := h.game(w, r)
	if !ok {
		return
	}
	resp, err := roll(g)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Move handles POST /api/games/{id}/move
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	g, ok := h.game(w, r)
	if !ok {
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	resp, err := move(g, req)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// EndTurn handles POST /api/games/{id}/end-turn
func (h *Handlers) EndTurn(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	g, ok := h.game(w, r)
	if !ok {
		return
	}
	state, err := endTurn(g)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// Moves handles GET /api/games/{id}/moves
func (h *Handlers) Moves(w http.ResponseWriter, r *http.Request) {
	release, ok := h.acquireFast(w, r)
	if !ok {
		return
	}
	defer release()

	g, ok := h.game(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, possibleMoves(g))
}

// Playout handles POST /api/playout
func (h *Handlers) Playout(w http.ResponseWriter, r *http.Request) {
	// Playouts are CPU-intensive
	if h.pool != nil {
		if err := h.pool.AcquireSlow(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseSlow()
	}

	var req PlayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.Games > maxPlayoutGames {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("games must be at most %d", maxPlayoutGames), "TOO_MANY_GAMES")
		return
	}

	start := time.Now()
	result, err := playout.Run(r.Context(), playoutOptions(req))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "PLAYOUT_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, PlayoutResponse{
		Result:    result,
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

func playoutOptions(req PlayoutRequest) playout.Options {
	return playout.Options{
		Games:    req.Games,
		Seed:     req.Seed,
		Workers:  req.Workers,
		MaxTurns: req.MaxTurns,
	}
}

// Game operations shared by the HTTP and WebSocket front-ends.

func roll(g *Game) (RollResponse, error) {
	var d [2]int
	state, err := g.Do(func(e *engine.Engine) error {
		if w, over := e.Winner(); over {
			return fmt.Errorf("%w: %s won", engine.ErrGameOver, w)
		}
		d[0], d[1] = e.RollDice()
		return nil
	})
	if err != nil {
		return RollResponse{}, err
	}
	return RollResponse{Dice: d, Game: state}, nil
}

func move(g *Game, req MoveRequest) (MoveResponse, error) {
	var out engine.Outcome
	state, err := g.Do(func(e *engine.Engine) error {
		var err error
		out, err = e.Move(req.Origin, req.Die)
		return err
	})
	if err != nil {
		return MoveResponse{}, err
	}
	return MoveResponse{Outcome: out.String(), Captured: out.Captured(), Game: state}, nil
}

func endTurn(g *Game) (GameResponse, error) {
	return g.Do(func(e *engine.Engine) error {
		if w, over := e.Winner(); over {
			return fmt.Errorf("%w: %s won", engine.ErrGameOver, w)
		}
		e.EndTurn()
		return nil
	})
}

func possibleMoves(g *Game) MovesResponse {
	var resp MovesResponse
	g.Inspect(func(e *engine.Engine) {
		resp.Moves = e.PossibleMoves()
		resp.MustUseLarger = e.MustUseLargerDie()
	})
	resp.Origins = engine.Origins(resp.Moves)
	return resp
}
