// Package debugui draws Dear ImGui debug panels over a running game.
package debugui

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Panel renders one ImGui window per frame.
type Panel interface {
	Render(deltaTime float32)
}

// Overlay owns the ImGui backend and the panels drawn on top of the game.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend
	frames  *FrameTimer
	panels  []Panel
}

// NewOverlay creates the ebiten window through the ImGui backend.
func NewOverlay(title string, width, height int, panels ...Panel) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		backend: backend,
		frames:  NewFrameTimer(),
		panels:  panels,
	}
}

// Update builds this frame's panels. Call it from ebiten.Game.Update.
func (o *Overlay) Update() {
	o.backend.BeginFrame()
	dt := o.frames.GetDeltaTime()
	for _, p := range o.panels {
		p.Render(dt)
	}
	o.backend.EndFrame()
}

// Draw paints the panels over screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

// Layout forwards the window size to the backend.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}

// WantCaptureKeyboard reports whether ImGui is consuming key presses.
func (o *Overlay) WantCaptureKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
