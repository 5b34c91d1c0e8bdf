package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/yourusername/bgrules/pkg/playout"
)

// GameEvents streams the game state as Server-Sent Events.
// GET /api/games/{id}/events
//
// The current state is sent first, then a "state" event after every change.
// A "closed" event ends the stream when the game is deleted or expires.
func (h *Handlers) GameEvents(w http.ResponseWriter, r *http.Request) {
	g, ok := h.game(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported", "STREAMING_UNSUPPORTED")
		return
	}

	setSSEHeaders(w)
	// The stream outlives the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})
	updates, cancel := g.Subscribe()
	defer cancel()

	writeSSEEvent(w, "state", g.View())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case state, open := <-updates:
			if !open {
				writeSSEEvent(w, "closed", nil)
				flusher.Flush()
				return
			}
			writeSSEEvent(w, "state", state)
			flusher.Flush()
		}
	}
}

// PlayoutSSE streams playout progress as Server-Sent Events.
// GET /api/playout/stream?games=...&seed=...&workers=...&max_turns=...
func (h *Handlers) PlayoutSSE(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.AcquireSlow(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseSlow()
	}

	query := r.URL.Query()
	req := PlayoutRequest{
		Games:    parseIntParam(query.Get("games"), 100),
		Seed:     int64(parseIntParam(query.Get("seed"), 0)),
		Workers:  parseIntParam(query.Get("workers"), 0),
		MaxTurns: parseIntParam(query.Get("max_turns"), 0),
	}

	// Flush function for streaming
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}
	setSSEHeaders(w)

	if req.Games > maxPlayoutGames {
		writeSSEError(w, fmt.Sprintf("games must be at most %d", maxPlayoutGames))
		return
	}

	// Progress callback sends SSE events
	callback := func(p playout.Progress) {
		writeSSEEvent(w, "progress", p)
		flusher.Flush()
	}

	result, err := playout.RunWithProgress(r.Context(), playoutOptions(req), callback)
	if err != nil {
		writeSSEError(w, "playout failed: "+err.Error())
		return
	}

	writeSSEEvent(w, "result", result)
	flusher.Flush()

	// Send done event to signal completion
	writeSSEEvent(w, "done", nil)
	flusher.Flush()
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeSSEEvent writes a Server-Sent Event to the response.
func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

// writeSSEError writes an error event and closes the stream.
func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// parseIntParam parses an integer from a string with a default value.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}
