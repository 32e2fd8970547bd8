package game

import (
	"fmt"
	"slices"
)

// State is the phase the loop is in.
type State int

const (
	// Idle is the state before Start and after Reset.
	Idle State = iota
	// FallingFree means a brick is airborne and accepts intents.
	FallingFree
	// Locking means the brick was blocked and is being merged into the stage.
	Locking
	// RowsClearing covers row removal and score publication.
	RowsClearing
	// GameOver is terminal until Reset.
	GameOver
)

var stateNames = [...]string{
	Idle:         "idle",
	FallingFree:  "falling_free",
	Locking:      "locking",
	RowsClearing: "rows_clearing",
	GameOver:     "game_over",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

var transitions = map[State][]State{
	Idle:         {FallingFree, GameOver},
	FallingFree:  {Locking, GameOver, Idle},
	Locking:      {RowsClearing},
	RowsClearing: {FallingFree, GameOver},
	GameOver:     {Idle},
}

// CanTransition reports whether the loop may go from one state to another.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

// TransitionError is the panic value for a transition the loop never makes.
type TransitionError struct {
	From, To State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("game: illegal transition %s -> %s", e.From, e.To)
}
