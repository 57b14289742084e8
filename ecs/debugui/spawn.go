package debugui

import (
	"time"

	"github.com/plus3/zonefall/ecs"
)

// RegisterComponents registers the component types a UI world needs.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Spawn adds the standard inspector windows for target to the UI world and
// returns a function that feeds frame times to the performance window.
func Spawn(ui *ecs.Storage, target Target) (frame func(time.Duration)) {
	ecs.NewSingleton(ui, ImguiInputState{})

	inspector := &EntityInspector{target: target}
	stats := NewPerformanceStats(target, 120)
	ui.Spawn(ImguiItem{Render: inspector.Render})
	ui.Spawn(ImguiItem{Render: stats.Render})
	return stats.Record
}
