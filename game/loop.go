// Package game drives a single match: it owns the stage and the falling
// brick, applies intents through the collision oracle, locks bricks, clears
// rows and hands over to the next brick.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/bricks/collision"
	"github.com/plus3/bricks/event"
	"github.com/plus3/bricks/grid"
	"github.com/plus3/bricks/rows"
	"github.com/plus3/bricks/transform"
)

var (
	// ErrGameOver is returned for intents submitted after the game ended.
	ErrGameOver = errors.New("game: game over")

	// ErrNotIdle is returned by Start and StartAt on a running loop.
	ErrNotIdle = errors.New("game: loop already started")
)

const (
	DefaultPeriod      = time.Second
	DefaultPreviewSize = 6
)

// Source supplies bricks. *shape.Catalog implements it.
type Source interface {
	Next() (name string, shape *grid.Grid, err error)
}

// Bus is the part of the event bus the loop needs.
type Bus interface {
	Subscribe(event.Type, event.Handler) event.Subscription
	Unsubscribe(event.Subscription) bool
	Publish(*event.Event)
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// WithTimer sets the gravity timer. The default is a DeadlineTimer on the
// wall clock.
func WithTimer(t Timer) Option {
	return func(l *Loop) { l.timer = t }
}

// WithPeriod sets the initial gravity period.
func WithPeriod(d time.Duration) Option {
	return func(l *Loop) { l.period = d }
}

// WithPreviewSize sets the side of the square next-brick preview.
func WithPreviewSize(n int) Option {
	return func(l *Loop) { l.previewSize = n }
}

// WithStage starts the game on a copy of stage instead of an empty grid. Its
// size overrides the one given to NewLoop.
func WithStage(stage *grid.Grid) Option {
	return func(l *Loop) { l.initial = stage.Clone() }
}

// WithID fixes the game id.
func WithID(id uuid.UUID) Option {
	return func(l *Loop) { l.id = id }
}

type brick struct {
	name  string
	shape *grid.Grid
}

// Loop is the game state machine. It is driven synchronously: Tick, Submit
// and Poll process the intent completely before returning. A Loop is not safe
// for concurrent use; see Runner for a goroutine driver.
type Loop struct {
	id          uuid.UUID
	bus         Bus
	source      Source
	oracle      *collision.Oracle
	clearer     *rows.Clearer
	timer       Timer
	log         *zap.Logger
	period      time.Duration
	basePeriod  time.Duration
	previewSize int

	width, height int
	initial       *grid.Grid

	state   State
	stage   *grid.Grid
	view    *grid.Grid
	current brick
	pos     grid.Fragment
	next    brick
	score   int
	err     error
	subs    []event.Subscription
}

// NewLoop creates an idle loop on a width x height stage. The loop subscribes
// to controls_event, update_speed and score_changed on bus.
func NewLoop(bus Bus, source Source, width, height int, opts ...Option) *Loop {
	l := &Loop{
		id:          uuid.New(),
		bus:         bus,
		source:      source,
		oracle:      collision.NewOracle(bus),
		clearer:     rows.NewClearer(bus),
		log:         zap.NewNop(),
		period:      DefaultPeriod,
		previewSize: DefaultPreviewSize,
		width:       width,
		height:      height,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.timer == nil {
		l.timer = NewDeadlineTimer(nil)
	}
	l.basePeriod = l.period
	if l.initial != nil {
		l.width, l.height = l.initial.Width(), l.initial.Height()
	}
	l.log = l.log.With(zap.String("game_id", l.id.String()))
	l.stage = l.freshStage()
	l.view = l.stage.Clone()

	l.subs = []event.Subscription{
		bus.Subscribe(event.ControlsType, l.onControls),
		bus.Subscribe(event.SpeedChangedType, l.onSpeedChanged),
		bus.Subscribe(event.ScoreChangedType, l.onScoreChanged),
	}
	return l
}

func (l *Loop) freshStage() *grid.Grid {
	if l.initial != nil {
		return l.initial.Clone()
	}
	return grid.New(l.width, l.height)
}

// Start draws the first two bricks and drops the first one at the spawn
// column.
func (l *Loop) Start() error {
	if l.state != Idle {
		return ErrNotIdle
	}

	first, err := l.draw()
	if err != nil {
		return err
	}
	if err := l.refill(); err != nil {
		return err
	}

	l.log.Info("game started",
		zap.Int("width", l.width),
		zap.Int("height", l.height),
		zap.Duration("period", l.period),
	)
	l.place(first, grid.Fragment{X: SpawnColumn(l.width), Y: 0, Shape: first.shape})
	return nil
}

// StartAt starts the game with an explicitly placed first brick. The brick
// after it comes from the source as usual.
func (l *Loop) StartAt(first grid.Fragment) error {
	if l.state != Idle {
		return ErrNotIdle
	}
	if first.Shape == nil {
		return fmt.Errorf("%w: fragment without shape", grid.ErrMalformedShape)
	}
	first = first.WithShape(first.Shape.Clone())
	if err := l.refill(); err != nil {
		return err
	}

	l.log.Info("game started",
		zap.Int("width", l.width),
		zap.Int("height", l.height),
		zap.Duration("period", l.period),
		zap.Int("x", first.X),
		zap.Int("y", first.Y),
	)
	l.place(brick{shape: first.Shape}, first)
	return nil
}

// Tick delivers one gravity step, as the timer would.
func (l *Loop) Tick() error {
	return l.Submit(event.Gravity())
}

// Poll fires the gravity timer if it is a Poller whose delay has elapsed.
// It reports whether a gravity step ran.
func (l *Loop) Poll() bool {
	p, ok := l.timer.(Poller)
	if !ok || !p.Fire() {
		return false
	}
	if err := l.Tick(); err != nil {
		return false
	}
	return true
}

// Submit publishes an intent on the bus. The loop's own handler processes it
// before Submit returns.
func (l *Loop) Submit(in event.Intent) error {
	if l.state == GameOver {
		return ErrGameOver
	}
	l.bus.Publish(event.New(event.ControlsType, in))
	return nil
}

// Reset abandons the current game and returns to Idle with an empty stage
// and the configured gravity period. The score is left to the score policy.
func (l *Loop) Reset() {
	if l.state == Idle {
		return
	}

	l.timer.Stop()
	l.stage = l.freshStage()
	l.view = l.stage.Clone()
	l.pos = grid.Fragment{}
	l.current = brick{}
	l.next = brick{}
	l.score = 0
	l.period = l.basePeriod
	l.err = nil
	l.transition(Idle)
	l.log.Info("game reset")
}

// Close detaches the loop from the bus and stops the timer.
func (l *Loop) Close() {
	l.timer.Stop()
	for _, s := range l.subs {
		l.bus.Unsubscribe(s)
	}
	l.subs = nil
}

func (l *Loop) onControls(e *event.Event) {
	in, ok := event.PayloadOf[event.Intent](e)
	if !ok {
		return
	}

	if l.state != FallingFree {
		if l.state == GameOver {
			l.log.Warn("intent ignored after game over", zap.String("action", string(in.Coords.Action)))
		}
		return
	}

	switch in.Coords.Action {
	case event.Move:
		l.move(in)
	case event.RotateRight:
		l.rotate()
	default:
		l.log.Debug("unknown action", zap.String("action", string(in.Coords.Action)))
	}
}

func (l *Loop) onSpeedChanged(e *event.Event) {
	sc, ok := event.PayloadOf[event.SpeedChanged](e)
	if !ok || sc.Speed <= 0 {
		return
	}
	l.period = sc.Speed
	l.log.Info("speed changed",
		zap.Int("level", sc.Level),
		zap.Duration("period", sc.Speed),
		zap.Int("score", sc.Score),
	)
}

func (l *Loop) onScoreChanged(e *event.Event) {
	if sc, ok := event.PayloadOf[event.ScoreChanged](e); ok {
		l.score = sc.Score
	}
}

func (l *Loop) move(in event.Intent) {
	v := collision.Vector{DX: in.Coords.OffsetX, DY: in.Coords.OffsetY}
	verdict := l.oracle.Check(l.pos, l.stage, v)

	if verdict.Movable {
		l.commit(l.pos.Moved(v.DX, v.DY))
		if in.Auto {
			l.arm()
		}
		return
	}

	if in.Auto || (v.DY > 0 && verdict.BlockedBelow()) {
		l.bus.Publish(event.New(event.CycleEndedType, event.CycleEnded{Fragment: l.pos}))
		l.lock()
		return
	}

	l.log.Debug("move rejected",
		zap.Int("dx", v.DX),
		zap.Int("dy", v.DY),
		zap.Int("collisions", len(verdict.Collisions)),
		zap.Int("violations", len(verdict.Violations)),
	)
}

func (l *Loop) rotate() {
	candidate := l.pos.WithShape(transform.RotateRight(l.pos.Shape))
	if !l.oracle.CanMove(candidate, l.stage, collision.Vector{}) {
		l.log.Debug("rotation rejected", zap.Int("x", l.pos.X), zap.Int("y", l.pos.Y))
		return
	}
	l.commit(candidate)
}

// commit publishes the position change and makes next the current fragment.
func (l *Loop) commit(next grid.Fragment) {
	view := next.Merge(l.stage)
	l.bus.Publish(event.New(event.PositionChangedType, event.PositionChanged{
		Old:     l.pos,
		New:     next,
		Preview: view,
		Changed: grid.Diff(l.view, view),
	}))

	l.pos = next
	l.view = view
	l.render()
}

func (l *Loop) lock() {
	l.transition(Locking)
	l.timer.Stop()

	merged := l.pos.Merge(l.stage)
	l.bus.Publish(event.New(event.BeforeClearType, event.BeforeClear{Stage: merged.Clone()}))

	l.transition(RowsClearing)
	cleared := l.clearer.Update(merged)
	l.stage = merged
	l.log.Info("brick locked",
		zap.String("shape", l.current.name),
		zap.Int("x", l.pos.X),
		zap.Int("y", l.pos.Y),
		zap.Int("rows_cleared", cleared),
	)

	next := l.next
	if err := l.refill(); err != nil {
		l.err = err
		l.log.Error("cannot draw brick", zap.Error(err))
		l.end()
		return
	}
	l.place(next, grid.Fragment{X: SpawnColumn(l.width), Y: 0, Shape: next.shape})
}

// place puts a freshly spawned brick on the stage, or ends the game if it
// does not fit.
func (l *Loop) place(b brick, f grid.Fragment) {
	l.current = b
	l.pos = f

	if !l.oracle.CanMove(f, l.stage, collision.Vector{}) {
		l.end()
		return
	}

	l.transition(FallingFree)
	l.view = f.Merge(l.stage)
	l.render()
	l.arm()
}

func (l *Loop) end() {
	l.timer.Stop()
	l.transition(GameOver)
	l.view = l.stage.Clone()
	l.bus.Publish(event.New(event.GameOverType, event.GameOver{Score: l.score, Fragment: l.pos}))
	l.log.Info("game over", zap.Int("score", l.score))
}

// refill draws the lookahead brick and announces it.
func (l *Loop) refill() error {
	b, err := l.draw()
	if err != nil {
		return err
	}
	l.next = b
	l.bus.Publish(event.New(event.NewFragmentType, event.NewFragment{Name: b.name, Grid: b.shape.Clone()}))
	return nil
}

func (l *Loop) draw() (brick, error) {
	name, shape, err := l.source.Next()
	if err != nil {
		return brick{}, fmt.Errorf("draw brick: %w", err)
	}
	return brick{name: name, shape: shape}, nil
}

func (l *Loop) render() {
	l.bus.Publish(event.New(event.BeforeRenderType, event.BeforeRender{Grid: l.view.Clone()}))
}

func (l *Loop) arm() {
	l.timer.Reset(l.period)
}

func (l *Loop) transition(to State) {
	from := l.state
	if !CanTransition(from, to) {
		panic(&TransitionError{From: from, To: to})
	}
	l.state = to
	l.log.Debug("state changed", zap.Stringer("from", from), zap.Stringer("to", to))
	l.bus.Publish(event.New(event.StateChangedType, event.StateChanged{From: from.String(), To: to.String()}))
}

// SpawnColumn is the column new bricks appear in: the stage midpoint minus
// one, or 0 on stages narrower than two cells.
func SpawnColumn(width int) int {
	if mid := width / 2; mid != 0 {
		return mid - 1
	}
	return 0
}

// ID identifies this game in logs.
func (l *Loop) ID() uuid.UUID { return l.id }

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Stage returns a copy of the locked cells.
func (l *Loop) Stage() *grid.Grid { return l.stage.Clone() }

// View returns a copy of the stage with the falling brick merged in.
func (l *Loop) View() *grid.Grid { return l.view.Clone() }

// Current returns the falling brick. Its shape is a copy.
func (l *Loop) Current() grid.Fragment {
	if l.pos.Shape == nil {
		return l.pos
	}
	return l.pos.WithShape(l.pos.Shape.Clone())
}

// CurrentName returns the shape name of the falling brick. Bricks placed
// with StartAt have no name.
func (l *Loop) CurrentName() string { return l.current.name }

// Next returns the brick that spawns after the current one.
func (l *Loop) Next() (string, *grid.Grid) {
	if l.next.shape == nil {
		return l.next.name, nil
	}
	return l.next.name, l.next.shape.Clone()
}

// NextPreview returns the next brick centred in the preview square, or nil
// before the game started.
func (l *Loop) NextPreview() *grid.Grid {
	if l.next.shape == nil {
		return nil
	}
	return Preview(l.next.shape, l.previewSize)
}

// Period returns the gravity period the next re-arm will use.
func (l *Loop) Period() time.Duration { return l.period }

// Score returns the last score published on the bus.
func (l *Loop) Score() int { return l.score }

// Timer returns the gravity timer.
func (l *Loop) Timer() Timer { return l.timer }

// Err returns the error that ended the game, if the brick source failed.
func (l *Loop) Err() error { return l.err }

// Preview centres shape in a size x size grid.
func Preview(shape *grid.Grid, size int) *grid.Grid {
	return grid.Center(shape, size, size)
}
