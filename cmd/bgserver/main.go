// Command bgserver runs the backgammon rules HTTP/WebSocket server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yourusername/bgrules/internal/config"
	"github.com/yourusername/bgrules/pkg/api"
)

const version = "0.1.0"

func main() {
	// Environment first, flags override.
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	host := flag.String("host", cfg.Host, "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", cfg.Port, "Port to listen on")
	readTimeout := flag.Duration("read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	maxGames := flag.Int("max-games", cfg.MaxGames, "Maximum live games (0 = unlimited)")
	gameTTL := flag.Duration("game-ttl", cfg.GameTTL, "Drop games idle for this long (0 = never)")
	slowWorkers := flag.Int("playout-workers", cfg.MaxSlowWorkers, "Concurrent playout requests")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("bgrules server v%s\n", version)
		os.Exit(0)
	}

	server := api.NewServer(api.ServerConfig{
		Host:           *host,
		Port:           *port,
		ReadTimeout:    *readTimeout,
		WriteTimeout:   *writeTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxFastWorkers: cfg.MaxFastWorkers,
		MaxSlowWorkers: *slowWorkers,
		MaxGames:       *maxGames,
		GameTTL:        *gameTTL,
	}, version)

	log.Printf("bgrules server v%s (max %d games, idle TTL %v)", version, *maxGames, *gameTTL)

	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
