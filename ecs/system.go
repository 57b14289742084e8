package ecs

// System is one step of a frame. Query and Singleton fields, including those
// of embedded structs, are wired by the Scheduler on registration; any other
// fields persist between frames untouched.
type System interface {
	Execute(frame *UpdateFrame)
}
