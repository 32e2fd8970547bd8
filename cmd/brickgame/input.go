package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/bricks/event"
)

// keys reports which keys went down this frame.
type keys interface {
	justPressed(ebiten.Key) bool
}

type keyboard struct{}

func (keyboard) justPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

func (kb keyboard) quit() bool {
	return kb.justPressed(ebiten.KeyQ) || kb.justPressed(ebiten.KeyEscape)
}

func (kb keyboard) restart() bool { return kb.justPressed(ebiten.KeyR) }

var bindings = []struct {
	key    ebiten.Key
	intent event.Intent
}{
	{ebiten.KeyArrowLeft, event.MoveBy(-1, 0)},
	{ebiten.KeyArrowRight, event.MoveBy(1, 0)},
	{ebiten.KeyArrowDown, event.MoveBy(0, 1)},
	{ebiten.KeySpace, event.Rotate()},
}

// intents maps this frame's key presses to player intents in binding order.
func intents(k keys) []event.Intent {
	var out []event.Intent
	for _, b := range bindings {
		if k.justPressed(b.key) {
			out = append(out, b.intent)
		}
	}
	return out
}
