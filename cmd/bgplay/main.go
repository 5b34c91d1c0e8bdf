// Command bgplay is a hot-seat terminal backgammon game.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yourusername/bgrules/pkg/dice"
	"github.com/yourusername/bgrules/pkg/engine"
)

func main() {
	seed := flag.Int64("seed", 0, "Dice seed (0 = random)")
	start := flag.String("start", "white", "Color that moves first")
	id := flag.String("position", "", "GNU Backgammon position ID to start from")
	flag.Parse()

	c, err := engine.ParseColor(*start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := engine.Options{Start: c}
	if *id != "" {
		pos, err := engine.ParsePositionID(*id, c)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts.Position = &pos
	}
	if *seed != 0 {
		opts.Roller = dice.New(*seed)
	}
	game, err := engine.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	newSession(game, os.Stdin, os.Stdout).run()
}
