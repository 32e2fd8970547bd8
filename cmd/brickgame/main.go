package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/bricks/config"
	"github.com/plus3/bricks/debugui"
	"github.com/plus3/bricks/event"
	"github.com/plus3/bricks/game"
	"github.com/plus3/bricks/score"
	"github.com/plus3/bricks/shape"
)

const (
	CellSize   = 24
	SidePanel  = 8 * CellSize
	WindowPad  = CellSize
	FrameStats = 120
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	width := flag.Int("width", cfg.Width, "Stage width in cells.")
	height := flag.Int("height", cfg.Height, "Stage height in cells.")
	seed := flag.Uint64("seed", cfg.Seed, "Brick sequence seed, 0 for random.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	flag.Parse()

	cfg.Width, cfg.Height, cfg.Seed = *width, *height, *seed
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

	g, err := newGame(cfg, log)
	if err != nil {
		log.Fatal("setup failed", zap.Error(err))
	}

	screenW := cfg.Width*CellSize + SidePanel + 2*WindowPad
	screenH := cfg.Height*CellSize + 2*WindowPad
	if *debug {
		g.overlay = debugui.NewOverlay("Bricks (debug)", screenW+480, screenH,
			debugui.NewPerformanceStats(g.bus, FrameStats),
			debugui.NewGameInspector(g.loop),
		)
	} else {
		ebiten.SetWindowSize(screenW, screenH)
		ebiten.SetWindowTitle("Bricks")
	}

	if err := g.loop.Start(); err != nil {
		log.Fatal("start failed", zap.Error(err))
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal("game stopped", zap.Error(err))
	}
}

// Game adapts a game.Loop to ebiten.
type Game struct {
	bus     *event.Bus
	loop    *game.Loop
	scores  *score.Policy
	speed   *score.SpeedPolicy
	overlay *debugui.Overlay
	log     *zap.Logger

	level int
}

func newGame(cfg config.Config, log *zap.Logger) (*Game, error) {
	rng, seed, err := cfg.Rand()
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	scores := score.NewPolicy(bus)
	speed, err := score.NewSpeedPolicy(bus, score.DefaultTable())
	if err != nil {
		return nil, err
	}

	loop := game.NewLoop(bus, shape.Default(rng), cfg.Width, cfg.Height,
		game.WithLogger(log),
		game.WithPeriod(cfg.Period),
		game.WithPreviewSize(cfg.PreviewSize),
		game.WithTimer(game.NewDeadlineTimer(nil)),
	)
	log.Info("bricks ready", zap.Uint64("seed", seed), zap.String("game_id", loop.ID().String()))

	g := &Game{
		bus:    bus,
		loop:   loop,
		scores: scores,
		speed:  speed,
		log:    log,
		level:  speed.Level(),
	}
	bus.Subscribe(event.LevelUpdatedType, func(e *event.Event) {
		if lu, ok := event.PayloadOf[event.LevelUpdated](e); ok {
			g.level = lu.Level
		}
	})
	return g, nil
}

func (g *Game) Update() error {
	if g.overlay != nil {
		g.overlay.Update()
	}

	kb := keyboard{}
	if kb.quit() {
		return ebiten.Termination
	}
	if g.overlay != nil && g.overlay.WantCaptureKeyboard() {
		return nil
	}

	if g.loop.State() == game.GameOver {
		if kb.restart() {
			g.restart()
		}
		return nil
	}

	for _, in := range intents(kb) {
		if err := g.loop.Submit(in); err != nil {
			break
		}
	}
	g.loop.Poll()
	return nil
}

func (g *Game) restart() {
	g.loop.Reset()
	g.scores.Reset()
	g.speed.Reset()
	g.level = g.speed.Level()
	if err := g.loop.Start(); err != nil {
		g.log.Error("restart failed", zap.Error(err))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawGame(screen, g)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
