package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/bricks/event"
)

// StatsSource is anything that reports bus statistics.
type StatsSource interface {
	Stats() *event.BusStats
}

// PerformanceStats shows frame times and per-event dispatch costs.
type PerformanceStats struct {
	bus           StatsSource
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(bus StatsSource, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		bus:           bus,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record stores one frame time.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean frame time in milliseconds over the
// history window.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var avg float32
	for _, ft := range ps.frameHistory {
		avg += ft
	}
	return avg / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.Record(deltaTime)
	stats := ps.bus.Stats()

	imgui.Text(fmt.Sprintf("Event Types: %d", stats.TypeCount))
	imgui.Text(fmt.Sprintf("Dispatches: %d", stats.TotalDispatches))

	avgFrameTime := ps.AverageFrameTime()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Event Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		header := []string{"Type", "Subs", "Dispatches", "Calls", "Stopped", "Avg", "Max"}
		if imgui.BeginTableV("EventStatsTable", int32(len(header)), tableFlags, imgui.NewVec2(0, 0), 0) {
			for _, h := range header {
				imgui.TableSetupColumn(h)
			}
			imgui.TableHeadersRow()

			for _, row := range EventRows(stats) {
				imgui.TableNextRow()
				for _, cell := range row {
					imgui.TableNextColumn()
					imgui.Text(cell)
				}
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// EventRows formats bus statistics as table cells.
func EventRows(stats *event.BusStats) [][]string {
	rows := make([][]string, 0, len(stats.Types))
	for _, t := range stats.Types {
		rows = append(rows, []string{
			string(t.Type),
			fmt.Sprintf("%d", t.Subscribers),
			fmt.Sprintf("%d", t.Dispatches),
			fmt.Sprintf("%d", t.Invocations),
			fmt.Sprintf("%d", t.Stopped),
			t.AvgDuration.String(),
			t.MaxDuration.String(),
		})
	}
	return rows
}
