package event

import (
	"time"

	"github.com/plus3/bricks/grid"
)

// Action is what an intent asks the falling brick to do.
type Action string

const (
	Move        Action = "move"
	RotateRight Action = "rotate_right"
)

// Coords describes the requested action. Offsets only apply to Move.
type Coords struct {
	Action  Action
	OffsetX int
	OffsetY int
}

// Intent is the payload of ControlsType. Auto marks intents produced by the
// gravity timer rather than by a player.
type Intent struct {
	Coords Coords
	Auto   bool
}

// MoveBy builds a player move intent.
func MoveBy(dx, dy int) Intent {
	return Intent{Coords: Coords{Action: Move, OffsetX: dx, OffsetY: dy}}
}

// Rotate builds a player rotation intent.
func Rotate() Intent {
	return Intent{Coords: Coords{Action: RotateRight}}
}

// Gravity builds the timer's downward move.
func Gravity() Intent {
	return Intent{Coords: Coords{Action: Move, OffsetY: 1}, Auto: true}
}

// OutOfBounds lists the stage edges a candidate position crossed.
type OutOfBounds struct {
	Fragment   grid.Fragment
	Violations []grid.Violation
}

// PositionChanged is published before a move or rotation is committed.
// Preview is the stage with the new fragment merged in; Changed lists the
// cells that differ from the previous preview.
type PositionChanged struct {
	Old, New grid.Fragment
	Preview  *grid.Grid
	Changed  []grid.Point
}

// CycleEnded reports that the falling brick was blocked and must lock.
type CycleEnded struct {
	Fragment grid.Fragment
}

// BeforeClear carries the stage with the locked brick merged in, before full
// rows are removed.
type BeforeClear struct {
	Stage *grid.Grid
}

// RowsCleared reports how many rows were removed and which ones.
type RowsCleared struct {
	Count int
	Rows  []int
}

// NewFragment announces the brick that will spawn next.
type NewFragment struct {
	Name string
	Grid *grid.Grid
}

// BeforeRender carries the grid a renderer should draw.
type BeforeRender struct {
	Grid *grid.Grid
}

// ScoreChanged carries the running total and every increment so far.
type ScoreChanged struct {
	Score   int
	History []int
}

// LevelUpdated is published for every score change with the matching tier.
type LevelUpdated struct {
	Speed time.Duration
	Level int
	Score int
}

// SpeedChanged is published only when the level changes.
type SpeedChanged struct {
	Speed time.Duration
	Level int
	Score int
}

// StateChanged records a game state transition.
type StateChanged struct {
	From, To string
}

// GameOver is published once when a freshly spawned brick collides.
type GameOver struct {
	Score    int
	Fragment grid.Fragment
}
