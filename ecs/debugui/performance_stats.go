package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

func NewPerformanceStats(target Target, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		target:  target,
		history: make([]float32, historyFrames),
	}
}

// Record stores one frame's duration.
func (ps *PerformanceStats) Record(dt time.Duration) {
	ps.history[ps.next] = float32(dt.Seconds() * 1000)
	ps.next = (ps.next + 1) % len(ps.history)
}

// Average is the mean recorded frame time in milliseconds.
func (ps *PerformanceStats) Average() float32 {
	var sum float32
	for _, ms := range ps.history {
		sum += ms
	}
	return sum / float32(len(ps.history))
}

func (ps *PerformanceStats) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	storage := ps.target.Storage()
	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	avg := ps.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &ps.history[0], int32(len(ps.history)))

	sched := ps.target.Scheduler().GetStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Systems (tick %d)", sched.Ticks))
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()
		for _, s := range sched.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(s.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range stats.ArchetypeBreakdown {
			imgui.BulletText(fmt.Sprintf("0x%08X  %d entities  %v", arch.ID, arch.EntityCount, arch.ComponentTypes))
		}
		imgui.TreePop()
	}
	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}
