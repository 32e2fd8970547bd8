package game

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/plus3/bricks/event"
)

// ErrNoChannelTimer is returned by Runner.Run for loops built without a
// ChannelTimer.
var ErrNoChannelTimer = errors.New("game: runner needs a ChannelTimer")

// Runner drives a Loop from one goroutine: gravity ticks and submitted
// intents are serialised through a single select.
type Runner struct {
	loop    *Loop
	intents chan event.Intent
	log     *zap.Logger
}

// NewRunner wraps loop, which must have been created WithTimer(NewChannelTimer()).
func NewRunner(loop *Loop, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		loop:    loop,
		intents: make(chan event.Intent),
		log:     log.With(zap.String("game_id", loop.ID().String())),
	}
}

// Submit hands an intent to the running loop. It blocks until Run accepts it
// or ctx is done.
func (r *Runner) Submit(ctx context.Context, in event.Intent) error {
	select {
	case r.intents <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the loop if it is idle and processes ticks and intents until the
// game ends or ctx is cancelled. It returns nil when the game ended and
// ctx.Err() on cancellation. The loop must not be touched by other
// goroutines while Run is active.
func (r *Runner) Run(ctx context.Context) error {
	timer, ok := r.loop.Timer().(*ChannelTimer)
	if !ok {
		return ErrNoChannelTimer
	}

	if r.loop.State() == Idle {
		if err := r.loop.Start(); err != nil {
			return err
		}
	}

	for r.loop.State() != GameOver {
		select {
		case <-ctx.Done():
			timer.Stop()
			r.log.Info("runner stopped", zap.Error(ctx.Err()))
			return ctx.Err()
		case <-timer.C():
			timer.Fired()
			if err := r.loop.Tick(); err != nil {
				r.log.Debug("tick rejected", zap.Error(err))
			}
		case in := <-r.intents:
			if err := r.loop.Submit(in); err != nil {
				r.log.Debug("intent rejected", zap.Error(err))
			}
		}
	}

	r.log.Info("runner finished", zap.Int("score", r.loop.Score()))
	return nil
}
