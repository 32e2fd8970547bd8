package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/bricks/game"
	"github.com/plus3/bricks/grid"
	"github.com/plus3/bricks/shape"
)

var (
	background = color.RGBA{24, 24, 32, 255}
	wellColor  = color.RGBA{40, 40, 52, 255}
	plainCell  = color.RGBA{200, 200, 200, 255}
)

var shapeColors = map[string]color.RGBA{
	shape.LongLine:    {179, 229, 252, 255},
	shape.LShapeLeft:  {186, 225, 255, 255},
	shape.LShapeRight: {255, 223, 186, 255},
	shape.ZigZagZ:     {255, 179, 186, 255},
	shape.ZigZagS:     {186, 255, 201, 255},
	shape.FourByFour:  {255, 255, 186, 255},
	shape.TShape:      {217, 186, 255, 255},
}

// cellColor picks a colour from the shape tag a cell carries.
func cellColor(tag grid.Tag) color.RGBA {
	if name, ok := tag[shape.TagKey].(string); ok {
		if c, ok := shapeColors[name]; ok {
			return c
		}
	}
	return plainCell
}

func drawGrid(screen *ebiten.Image, g *grid.Grid, ox, oy float32) {
	size := float32(CellSize)
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			if !g.Get(x, y) {
				continue
			}
			sx := ox + float32(x)*size
			sy := oy + float32(y)*size
			vector.DrawFilledRect(screen, sx+1, sy+1, size-2, size-2, cellColor(g.Tag(x, y)), false)
		}
	}
}

func drawGame(screen *ebiten.Image, g *Game) {
	screen.Fill(background)

	view := g.loop.View()
	ox, oy := float32(WindowPad), float32(WindowPad)
	vector.DrawFilledRect(screen, ox, oy, float32(view.Width()*CellSize), float32(view.Height()*CellSize), wellColor, false)
	drawGrid(screen, view, ox, oy)

	px := WindowPad*2 + view.Width()*CellSize
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d\nLEVEL %d", g.loop.Score(), g.level), px, WindowPad)

	if preview := g.loop.NextPreview(); preview != nil {
		ebitenutil.DebugPrintAt(screen, "NEXT", px, WindowPad+3*CellSize)
		drawGrid(screen, preview, float32(px), float32(WindowPad+4*CellSize))
	}

	if g.loop.State() == game.GameOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER\nR to restart", px, WindowPad+11*CellSize)
	}
}
