package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host           string        // Host to bind to (default "localhost")
	Port           int           // Port to listen on (default 8080)
	ReadTimeout    time.Duration // Read timeout (default 30s)
	WriteTimeout   time.Duration // Write timeout (default 30s)
	IdleTimeout    time.Duration // Idle timeout (default 60s)
	MaxFastWorkers int           // Max concurrent game operations (default 100)
	MaxSlowWorkers int           // Max concurrent playouts (default 4)
	MaxGames       int           // Max live games (0 = unlimited)
	GameTTL        time.Duration // Idle games are dropped after this (0 = never)
}

const shutdownGrace = 10 * time.Second

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Host:           "localhost",
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxFastWorkers: 100,
		MaxSlowWorkers: 4,
		MaxGames:       1000,
		GameTTL:        2 * time.Hour,
	}
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	store    *Store
	handlers *Handlers
	server   *http.Server
	pool     *WorkerPool
	version  string
}

// NewServer creates a new API server with an empty game store.
func NewServer(config ServerConfig, version string) *Server {
	pool := NewWorkerPool(PoolConfig{
		MaxFastWorkers: config.MaxFastWorkers,
		MaxSlowWorkers: config.MaxSlowWorkers,
	})
	store := NewStore(config.MaxGames, config.GameTTL)

	s := &Server{
		config:   config,
		store:    store,
		handlers: NewHandlersWithPool(store, version, pool),
		pool:     pool,
		version:  version,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

// Pool returns the worker pool for monitoring.
func (s *Server) Pool() *WorkerPool {
	return s.pool
}

// Store returns the game store.
func (s *Server) Store() *Store {
	return s.store
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handlers.Health)

	// Games
	mux.HandleFunc("POST /api/games", s.handlers.CreateGame)
	mux.HandleFunc("GET /api/games/{id}", s.handlers.GetGame)
	mux.HandleFunc("DELETE /api/games/{id}", s.handlers.DeleteGame)
	mux.HandleFunc("POST /api/games/{id}/roll", s.handlers.Roll)
	mux.HandleFunc("POST /api/games/{id}/move", s.handlers.Move)
	mux.HandleFunc("POST /api/games/{id}/end-turn", s.handlers.EndTurn)
	mux.HandleFunc("GET /api/games/{id}/moves", s.handlers.Moves)
	mux.HandleFunc("GET /api/games/{id}/events", s.handlers.GameEvents)
	mux.HandleFunc("GET /api/games/{id}/ws", s.handlers.GameWebSocket)

	// Playouts
	mux.HandleFunc("POST /api/playout", s.handlers.Playout)
	mux.HandleFunc("GET /api/playout/stream", s.handlers.PlayoutSSE)

	return corsMiddleware(loggingMiddleware(mux))
}

// Start starts the HTTP server and the idle game sweeper.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.server.RegisterOnShutdown(cancel)
	go s.store.RunSweeper(ctx, sweepInterval(s.config.GameTTL))

	log.Printf("Starting bgrules API server v%s on %s", s.version, s.server.Addr)
	log.Printf("Endpoints:")
	log.Printf("  GET    /api/health              - Health check")
	log.Printf("  POST   /api/games               - New game")
	log.Printf("  GET    /api/games/{id}          - Game state")
	log.Printf("  DELETE /api/games/{id}          - Drop game")
	log.Printf("  POST   /api/games/{id}/roll     - Roll dice")
	log.Printf("  POST   /api/games/{id}/move     - Move one checker")
	log.Printf("  POST   /api/games/{id}/end-turn - Pass the turn")
	log.Printf("  GET    /api/games/{id}/moves    - Possible moves")
	log.Printf("  GET    /api/games/{id}/events   - SSE state stream")
	log.Printf("  WS     /api/games/{id}/ws       - WebSocket game session")
	log.Printf("  POST   /api/playout             - Random playouts")
	log.Printf("  GET    /api/playout/stream      - SSE playout progress")

	return s.server.ListenAndServe()
}

// sweepInterval checks for idle games a few times per TTL, at most once a minute.
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return min(ttl/4, time.Minute)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown serves until SIGINT or SIGTERM, then
// gives open requests up to shutdownGrace to finish.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Printf("Shutdown requested, draining connections")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
