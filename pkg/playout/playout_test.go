package playout

import (
	"context"
	"errors"
	"testing"

	"github.com/yourusername/bgrules/pkg/engine"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Games != 100 {
		t.Errorf("Default Games = %d, want 100", opts.Games)
	}
	if opts.MaxTurns != 1000 {
		t.Errorf("Default MaxTurns = %d, want 1000", opts.MaxTurns)
	}
}

func TestRun(t *testing.T) {
	opts := Options{Games: 40, Seed: 12345, Workers: 4}
	result, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	t.Logf("white %d black %d unfinished %d, turns %.1f ± %.1f, chi2 %.2f",
		result.WhiteWins, result.BlackWins, result.Unfinished,
		result.TurnsMean, result.TurnsStdDev, result.FaceChiSquare)

	if result.Games != opts.Games {
		t.Errorf("Games = %d, want %d", result.Games, opts.Games)
	}
	if got := result.WhiteWins + result.BlackWins + result.Unfinished; got != opts.Games {
		t.Errorf("wins + unfinished = %d, want %d", got, opts.Games)
	}
	if result.Moves == 0 {
		t.Error("no moves were played")
	}
	if result.TurnsMean <= 0 {
		t.Errorf("TurnsMean = %f", result.TurnsMean)
	}

	faces := 0
	for _, n := range result.Faces {
		faces += n
	}
	if faces == 0 || faces%2 != 0 {
		t.Errorf("rolled faces = %d, want a positive even count", faces)
	}
}

func TestRunDeterministic(t *testing.T) {
	opts := Options{Games: 12, Seed: 777, Workers: 3}
	a, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	b, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if a.WhiteWins != b.WhiteWins || a.BlackWins != b.BlackWins || a.Moves != b.Moves ||
		a.Captures != b.Captures || a.Faces != b.Faces {
		t.Errorf("runs differ:\n%+v\n%+v", a, b)
	}
}

func TestRunWithProgress(t *testing.T) {
	var updates []Progress
	opts := Options{Games: 20, Seed: 42, Workers: 2}
	result, err := RunWithProgress(context.Background(), opts, func(p Progress) {
		updates = append(updates, p)
	})
	if err != nil {
		t.Fatalf("RunWithProgress failed: %v", err)
	}
	if len(updates) == 0 {
		t.Fatal("no progress updates")
	}

	last := updates[len(updates)-1]
	if last.GamesCompleted != opts.Games || last.Percent != 100 {
		t.Errorf("final progress = %+v", last)
	}
	for i := 1; i < len(updates); i++ {
		if updates[i].GamesCompleted < updates[i-1].GamesCompleted {
			t.Errorf("progress went backwards at update %d", i)
		}
	}
	if result.Games != opts.Games {
		t.Errorf("Games = %d, want %d", result.Games, opts.Games)
	}
}

func TestRunMaxTurns(t *testing.T) {
	result, err := Run(context.Background(), Options{Games: 4, Seed: 9, Workers: 1, MaxTurns: 3})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Unfinished != 4 {
		t.Errorf("Unfinished = %d, want 4", result.Unfinished)
	}
	if result.TurnsMean != 3 {
		t.Errorf("TurnsMean = %f, want 3", result.TurnsMean)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Games: 50, Seed: 1, Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestCheckConservation(t *testing.T) {
	if err := checkConservation(engine.StartingPosition()); err != nil {
		t.Errorf("opening position: %v", err)
	}

	p := engine.StartingPosition()
	p.Points[0] = 0
	if err := checkConservation(p); !errors.Is(err, ErrInvariant) {
		t.Errorf("missing checkers: error = %v, want ErrInvariant", err)
	}
}

func TestCountingRoller(t *testing.T) {
	r := &countingRoller{Roller: fixed{2, 5}}
	r.Roll()
	r.Roll()
	if r.faces[1] != 2 || r.faces[4] != 2 {
		t.Errorf("faces = %v", r.faces)
	}
}

type fixed [2]int

func (f fixed) Roll() (int, int) { return f[0], f[1] }
