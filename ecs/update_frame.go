package ecs

import "time"

// UpdateFrame carries the per-frame context handed to every system.
type UpdateFrame struct {
	DeltaTime time.Duration
	// Tick counts frames since the scheduler was created, starting at 1.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}

// Seconds is DeltaTime as fractional seconds.
func (f *UpdateFrame) Seconds() float64 {
	return f.DeltaTime.Seconds()
}
