package debugui

import "github.com/plus3/zonefall/ecs"

// EntityInspector lists the target's entities and shows the selected one's
// components.
type EntityInspector struct {
	target   Target
	selected ecs.EntityId
	filter   string
}

// PerformanceStats graphs frame times and the target scheduler's per-system
// timings.
type PerformanceStats struct {
	target  Target
	history []float32
	next    int
}
