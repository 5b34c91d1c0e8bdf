// Package playout plays random games through the rules engine.
//
// Every game picks uniformly among the moves the engine lists as possible,
// so a run exercises the validator, executor and analyzer together. After
// each move the checker count is verified and the look-ahead queries are
// checked to leave the position untouched. Games are spread across workers
// with their own seeded dice, so the same seed and worker count always
// produce the same game tallies.
package playout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/bgrules/pkg/dice"
	"github.com/yourusername/bgrules/pkg/engine"
)

// ErrInvariant is returned when a game breaks a rule the engine guarantees.
var ErrInvariant = errors.New("invariant violated")

// Options controls a run.
type Options struct {
	Games    int   // number of games (default 100)
	Seed     int64 // 0 = random seed
	Workers  int   // parallel workers (0 = GOMAXPROCS)
	MaxTurns int   // turns before a game counts as unfinished (default 1000)
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Games:    100,
		MaxTurns: 1000,
	}
}

// Progress is reported after each batch of games.
type Progress struct {
	GamesCompleted int     `json:"games_completed"`
	GamesTotal     int     `json:"games_total"`
	Percent        float64 `json:"percent"`
	WhiteWinRate   float64 `json:"white_win_rate"`
}

// ProgressCallback receives progress updates from RunWithProgress.
type ProgressCallback func(Progress)

// Result summarizes a run.
type Result struct {
	Games      int   `json:"games"`
	Seed       int64 `json:"seed"`
	WhiteWins  int   `json:"white_wins"`
	BlackWins  int   `json:"black_wins"`
	Unfinished int   `json:"unfinished"`

	WhiteWinRate float64 `json:"white_win_rate"`
	TurnsMean    float64 `json:"turns_mean"`
	TurnsStdDev  float64 `json:"turns_stddev"`

	Moves         int `json:"moves"`
	Captures      int `json:"captures"`
	ForfeitedDice int `json:"forfeited_dice"`

	// Faces counts every rolled die value; FaceChiSquare is the chi-square
	// statistic of those counts against a fair die (5 degrees of freedom).
	Faces         [dice.Faces]int `json:"faces"`
	FaceChiSquare float64         `json:"face_chi_square"`
}

// partial holds the tallies from one batch of games.
type partial struct {
	games      int
	whiteWins  int
	blackWins  int
	unfinished int
	turns      []float64
	moves      int
	captures   int
	forfeited  int
	faces      [dice.Faces]float64
}

func (p *partial) merge(o partial) {
	p.games += o.games
	p.whiteWins += o.whiteWins
	p.blackWins += o.blackWins
	p.unfinished += o.unfinished
	p.turns = append(p.turns, o.turns...)
	p.moves += o.moves
	p.captures += o.captures
	p.forfeited += o.forfeited
	floats.Add(p.faces[:], o.faces[:])
}

// Run plays opts.Games random games.
func Run(ctx context.Context, opts Options) (*Result, error) {
	return RunWithProgress(ctx, opts, nil)
}

// RunWithProgress plays opts.Games random games, calling cb after each
// completed batch. cb runs on the calling goroutine.
func RunWithProgress(ctx context.Context, opts Options, cb ProgressCallback) (*Result, error) {
	if opts.Games <= 0 {
		opts.Games = 100
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 1000
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Workers > opts.Games {
		opts.Workers = opts.Games
	}
	if opts.Seed == 0 {
		seed, err := dice.NewSeed()
		if err != nil {
			return nil, err
		}
		opts.Seed = seed
	}

	// Report progress roughly 20 times over the run.
	batchSize := max(opts.Games/20, 1)

	perWorker := opts.Games / opts.Workers
	extra := opts.Games % opts.Workers

	batches := make(chan partial, opts.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.Workers; i++ {
		games := perWorker
		if i < extra {
			games++
		}
		seed := opts.Seed + int64(i)*1000000
		g.Go(func() error {
			return worker(gctx, games, seed, opts.MaxTurns, batchSize, batches)
		})
	}

	var werr error
	go func() {
		werr = g.Wait()
		close(batches)
	}()

	var total partial
	for b := range batches {
		total.merge(b)
		if cb != nil {
			cb(Progress{
				GamesCompleted: total.games,
				GamesTotal:     opts.Games,
				Percent:        100 * float64(total.games) / float64(opts.Games),
				WhiteWinRate:   winRate(total.whiteWins, total.games),
			})
		}
	}
	if werr != nil {
		return nil, werr
	}
	return summarize(total, opts.Seed), nil
}

// worker plays games in batches and sends each batch's tallies.
func worker(ctx context.Context, games int, seed int64, maxTurns, batchSize int, out chan<- partial) error {
	roller := &countingRoller{Roller: dice.New(seed)}
	pick := rand.New(rand.NewSource(seed ^ 0x5eed))

	for remaining := games; remaining > 0; {
		n := min(batchSize, remaining)
		pr := partial{}
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := playGame(roller, pick, maxTurns, &pr); err != nil {
				return fmt.Errorf("worker seed %d: %w", seed, err)
			}
		}
		pr.faces = roller.faces
		roller.faces = [dice.Faces]float64{}

		select {
		case out <- pr:
		case <-ctx.Done():
			return ctx.Err()
		}
		remaining -= n
	}
	return nil
}

// playGame plays one game from the opening and adds its tallies to pr.
func playGame(roller dice.Roller, pick *rand.Rand, maxTurns int, pr *partial) error {
	e, err := engine.New(engine.Options{Roller: roller})
	if err != nil {
		return err
	}

	turns := 0
	for ; turns < maxTurns; turns++ {
		if _, over := e.Winner(); over {
			break
		}
		e.RollDice()
		for e.HasMovesPending() {
			if err := checkQueriesReadOnly(e); err != nil {
				return err
			}
			moves := e.PossibleMoves()
			if len(moves) == 0 {
				break
			}
			origins := engine.Origins(moves)
			origin := origins[pick.Intn(len(origins))]
			t := moves[origin][pick.Intn(len(moves[origin]))]

			out, err := e.Move(origin, t.Die)
			if err != nil {
				return fmt.Errorf("%w: listed move %d/%d rejected: %v", ErrInvariant, origin, t.Die, err)
			}
			if err := checkConservation(e.Position()); err != nil {
				return err
			}
			pr.moves++
			if out.Captured() {
				pr.captures++
			}
			if out.Kind == engine.GameOver {
				break
			}
		}
		pr.forfeited += len(e.PendingMoves())
		e.EndTurn()
	}

	pr.games++
	pr.turns = append(pr.turns, float64(turns))
	switch w, _ := e.Winner(); w {
	case engine.White:
		pr.whiteWins++
	case engine.Black:
		pr.blackWins++
	default:
		pr.unfinished++
	}
	return nil
}

// checkConservation verifies that each side still has fifteen checkers.
func checkConservation(p engine.Position) error {
	for _, c := range []engine.Color{engine.White, engine.Black} {
		if n := p.CheckerCount(c); n != 15 {
			return fmt.Errorf("%w: %s has %d checkers", ErrInvariant, c, n)
		}
	}
	return nil
}

// checkQueriesReadOnly runs the look-ahead queries and verifies that the
// committed position did not change.
func checkQueriesReadOnly(e *engine.Engine) error {
	before := e.Position()
	e.HasAnyMovePossible()
	e.MustUseLargerDie()
	e.PossibleMoves()
	if after := e.Position(); after != before {
		return fmt.Errorf("%w: look-ahead changed the position", ErrInvariant)
	}
	return nil
}

func summarize(total partial, seed int64) *Result {
	r := &Result{
		Games:         total.games,
		Seed:          seed,
		WhiteWins:     total.whiteWins,
		BlackWins:     total.blackWins,
		Unfinished:    total.unfinished,
		WhiteWinRate:  winRate(total.whiteWins, total.games),
		Moves:         total.moves,
		Captures:      total.captures,
		ForfeitedDice: total.forfeited,
	}
	switch len(total.turns) {
	case 0:
	case 1:
		r.TurnsMean = total.turns[0]
	default:
		r.TurnsMean, r.TurnsStdDev = stat.MeanStdDev(total.turns, nil)
	}
	for i, n := range total.faces {
		r.Faces[i] = int(n)
	}
	if rolled := floats.Sum(total.faces[:]); rolled > 0 {
		expected := make([]float64, dice.Faces)
		for i := range expected {
			expected[i] = rolled / dice.Faces
		}
		r.FaceChiSquare = stat.ChiSquare(total.faces[:], expected)
	}
	return r
}

func winRate(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

// countingRoller tallies every face it rolls.
type countingRoller struct {
	dice.Roller
	faces [dice.Faces]float64
}

func (r *countingRoller) Roll() (int, int) {
	d1, d2 := r.Roller.Roll()
	r.faces[d1-1]++
	r.faces[d2-1]++
	return d1, d2
}
