package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/bricks/game"
	"github.com/plus3/bricks/grid"
)

// GameInspector shows the state machine, the falling brick and the stage.
type GameInspector struct {
	loop *game.Loop
}

func NewGameInspector(loop *game.Loop) *GameInspector {
	return &GameInspector{loop: loop}
}

func (gi *GameInspector) Render(deltaTime float32) {
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, line := range Summary(gi.loop) {
		imgui.Text(line)
	}

	if imgui.TreeNodeStr("Next") {
		if preview := gi.loop.NextPreview(); preview != nil {
			imgui.Text(preview.String())
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Stage") {
		imgui.Text(Art(gi.loop.View(), gi.loop.Current()))
		imgui.TreePop()
	}

	imgui.End()
}

// Summary lists the loop's headline values.
func Summary(loop *game.Loop) []string {
	current := loop.Current()
	name := loop.CurrentName()
	if name == "" {
		name = "-"
	}
	nextName, _ := loop.Next()
	if nextName == "" {
		nextName = "-"
	}

	return []string{
		fmt.Sprintf("Game: %s", loop.ID()),
		fmt.Sprintf("State: %s", loop.State()),
		fmt.Sprintf("Score: %d", loop.Score()),
		fmt.Sprintf("Period: %s", loop.Period()),
		fmt.Sprintf("Brick: %s at (%d,%d)", name, current.X, current.Y),
		fmt.Sprintf("Next: %s", nextName),
	}
}

// Art renders view with locked cells as '#', the falling brick as '@' and
// empty cells as '.'.
func Art(view *grid.Grid, falling grid.Fragment) string {
	var b strings.Builder
	for y := 0; y < view.Height(); y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < view.Width(); x++ {
			switch {
			case covers(falling, x, y):
				b.WriteByte('@')
			case view.Get(x, y):
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

func covers(f grid.Fragment, x, y int) bool {
	if f.Shape == nil {
		return false
	}
	lx, ly := x-f.X, y-f.Y
	return f.Shape.Contains(lx, ly) && f.Shape.Get(lx, ly)
}
