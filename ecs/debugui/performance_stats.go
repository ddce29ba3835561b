package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/drop/ecs"
)

// PerformanceStats renders a window with frame timing, storage counts and per-system timings.
type PerformanceStats struct {
	storage      *ecs.Storage
	scheduler    *ecs.Scheduler
	frameHistory []float32
	frameIndex   int

	// lastFrame is when Tick last ran; zero until the first frame.
	lastFrame time.Time
}

func NewPerformanceStats(scheduler *ecs.Scheduler, historyFrames int) *PerformanceStats {
	if historyFrames < 1 {
		historyFrames = 1
	}
	return &PerformanceStats{
		storage:      scheduler.Storage(),
		scheduler:    scheduler,
		frameHistory: make([]float32, historyFrames),
	}
}

// Record adds one frame duration, in seconds, to the rolling history.
func (ps *PerformanceStats) Record(deltaTime float64) {
	ps.frameHistory[ps.frameIndex] = float32(deltaTime * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % len(ps.frameHistory)
}

// AverageFrameMillis returns the mean of the recorded history.
func (ps *PerformanceStats) AverageFrameMillis() float32 {
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(len(ps.frameHistory))
}

// Tick records the wall time since the previous Tick. The first call only starts the clock.
func (ps *PerformanceStats) Tick(now time.Time) {
	if !ps.lastFrame.IsZero() {
		ps.Record(now.Sub(ps.lastFrame).Seconds())
	}
	ps.lastFrame = now
}

// Item wraps the panel as an ImguiItem that measures the time between rendered frames.
func (ps *PerformanceStats) Item() ImguiItem {
	return ImguiItem{Render: func() {
		ps.Tick(time.Now())
		ps.Render()
	}}
}

func (ps *PerformanceStats) Render() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := ps.AverageFrameMillis()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, system := range ps.scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(system.Name)
				imgui.TableNextColumn()
				imgui.Text(system.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(system.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(system.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}
