package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/leveled/ecs"
)

// PerformanceStats is a window with frame timing, storage counts and per
// system latency history.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	// systemHistory is indexed like SchedulerStats.Systems, since several
	// systems can share a type name.
	systemHistory [][]float32
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	historyFrames = max(historyFrames, 1)
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record stores one frame. deltaTime is in seconds.
func (ps *PerformanceStats) Record(deltaTime float32, systems *ecs.SchedulerStats) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	if systems != nil {
		for i, sys := range systems.Systems {
			for len(ps.systemHistory) <= i {
				ps.systemHistory = append(ps.systemHistory, make([]float32, ps.historyFrames))
			}
			ps.systemHistory[i][ps.frameIndex] = float32(sys.LastDuration) / float32(time.Millisecond)
		}
	}
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean recorded frame time in milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

// ordered returns history oldest first.
func (ps *PerformanceStats) ordered(history []float32) []float32 {
	out := make([]float32, 0, len(history))
	out = append(out, history[ps.frameIndex:]...)
	return append(out, history[:ps.frameIndex]...)
}

// Render draws the window. open may be nil; when not nil the window gets a
// close button bound to it.
func (ps *PerformanceStats) Render(storage *ecs.Storage, systems *ecs.SchedulerStats, open *bool) {
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 360), imgui.CondOnce)
	if !imgui.BeginV("Performance", open, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Resources: %d", stats.SingletonCount))

	avg := ps.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	frames := ps.ordered(ps.frameHistory)
	imgui.PlotLinesFloatPtr("##frametime", &frames[0], int32(len(frames)))

	if systems != nil && imgui.TreeNodeStr("Systems") {
		ps.renderSystems(systems)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Resources") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStats) renderSystems(systems *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Skipped")
		imgui.TableSetupColumn("Avg")
		imgui.TableHeadersRow()

		for i, sys := range systems.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d %s", i, sys.Name))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.SkipCount))
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
		}
		imgui.EndTable()
	}

	if implot.BeginPlotV("System Latency", imgui.NewVec2(-1, 200), 0) {
		implot.SetupAxesV("Frame", "Time (ms)", 0, implot.AxisFlagsAutoFit)
		for i, sys := range systems.Systems {
			if i >= len(ps.systemHistory) {
				break
			}
			samples := ps.ordered(ps.systemHistory[i])
			implot.PlotLineFloatPtrInt(fmt.Sprintf("%s##%d", sys.Name, i), &samples[0], int32(len(samples)))
		}
		implot.EndPlot()
	}
}

// FrameTimer measures wall-clock time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// Tick returns the seconds elapsed since the previous Tick.
func (ft *FrameTimer) Tick() float64 {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime).Seconds()
	ft.lastFrameTime = now
	return delta
}
