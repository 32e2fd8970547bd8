package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/bricks/config"
	"github.com/plus3/bricks/event"
	"github.com/plus3/bricks/game"
	"github.com/plus3/bricks/score"
	"github.com/plus3/bricks/shape"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	games := flag.Int("games", cfg.Soak.Games, "Number of games to play.")
	workers := flag.Int("workers", cfg.Soak.Workers, "Games played concurrently.")
	maxTicks := flag.Int("max-ticks", cfg.Soak.MaxTicks, "Frame limit per game.")
	seed := flag.Uint64("seed", cfg.Seed, "Base seed, 0 for random.")
	duration := flag.Duration("duration", 0, "Stop early after this long (0 = no limit).")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg.Soak.Games, cfg.Soak.Workers, cfg.Soak.MaxTicks, cfg.Seed = *games, *workers, *maxTicks, *seed
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	_, base, err := cfg.Rand()
	if err != nil {
		log.Fatal("seed", zap.Error(err))
	}

	ctx := context.Background()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	report := &Report{
		Games:          cfg.Soak.Games,
		Workers:        cfg.Soak.Workers,
		MaxTicks:       cfg.Soak.MaxTicks,
		Width:          cfg.Width,
		Height:         cfg.Height,
		Seed:           base,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("starting soak test",
		zap.Int("games", cfg.Soak.Games),
		zap.Int("workers", cfg.Soak.Workers),
		zap.Uint64("seed", base),
	)

	start := time.Now()
	results, err := soak(ctx, cfg, base, log)
	if err != nil {
		log.Fatal("soak failed", zap.Error(err))
	}
	report.TotalTime = time.Since(start)
	report.Add(results)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("soak finished", zap.Int("played", len(results)), zap.Duration("took", report.TotalTime))

	fmt.Println("\n\n--- Soak Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// soak plays cfg.Soak.Games games on a bounded worker pool. Game i uses seed
// base+i so any single game can be replayed.
func soak(ctx context.Context, cfg config.Config, base uint64, log *zap.Logger) ([]Result, error) {
	results := make([]Result, cfg.Soak.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Soak.Workers)
	for i := range results {
		g.Go(func() error {
			r, err := play(ctx, cfg, base+uint64(i), log)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	played := results[:0]
	for _, r := range results {
		if !r.Cancelled {
			played = append(played, r)
		}
	}
	return played, nil
}

// Result summarises one headless game.
type Result struct {
	Seed       uint64
	Frames     int
	Ticks      int
	Intents    int
	Locks      int
	Rows       int
	Score      int
	Level      int
	GameOver   bool
	Cancelled  bool
	Dispatches int64
	Elapsed    time.Duration
}

// virtualClock lets a game run at full speed while gravity sees frame time.
type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time { return c.now }

func (c *virtualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// play runs one game with random player input until it ends, hits the frame
// limit, or ctx is done.
func play(ctx context.Context, cfg config.Config, seed uint64, log *zap.Logger) (Result, error) {
	res := Result{Seed: seed}
	rng := rand.New(rand.NewPCG(seed, seed))
	clk := &virtualClock{now: time.Unix(0, 0)}

	bus := event.NewBus()
	scores := score.NewPolicy(bus)
	speed, err := score.NewSpeedPolicy(bus, score.DefaultTable())
	if err != nil {
		return res, err
	}
	bus.Subscribe(event.CycleEndedType, func(*event.Event) { res.Locks++ })
	bus.Subscribe(event.RowsClearedType, func(e *event.Event) {
		if rc, ok := event.PayloadOf[event.RowsCleared](e); ok {
			res.Rows += rc.Count
		}
	})

	loop := game.NewLoop(bus, shape.Default(rng), cfg.Width, cfg.Height,
		game.WithTimer(game.NewDeadlineTimer(clk.Now)),
		game.WithPeriod(cfg.Period),
		game.WithLogger(log.Named("game")),
	)
	defer loop.Close()

	start := time.Now()
	if err := loop.Start(); err != nil {
		return res, err
	}

	for res.Frames < cfg.Soak.MaxTicks && loop.State() != game.GameOver {
		if ctx.Err() != nil {
			return Result{Seed: seed, Cancelled: true}, nil
		}

		if rng.IntN(4) == 0 {
			if err := loop.Submit(randomIntent(rng)); err == nil {
				res.Intents++
			}
		}
		clk.Advance(cfg.Soak.Step)
		if loop.Poll() {
			res.Ticks++
		}
		res.Frames++
	}

	res.Elapsed = time.Since(start)
	res.Score = scores.Score()
	res.Level = speed.Level()
	res.GameOver = loop.State() == game.GameOver
	res.Dispatches = bus.Stats().TotalDispatches
	return res, nil
}

func randomIntent(rng *rand.Rand) event.Intent {
	switch rng.IntN(4) {
	case 0:
		return event.MoveBy(-1, 0)
	case 1:
		return event.MoveBy(1, 0)
	case 2:
		return event.MoveBy(0, 1)
	default:
		return event.Rotate()
	}
}
