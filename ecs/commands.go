package ecs

// Commands buffers structural changes made while systems run. The Scheduler
// flushes it after the last system: deletes first, then spawns, then
// deferred functions in the order they were queued.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

func (c *Commands) Delete(id EntityId) {
	c.deletes = append(c.deletes, id)
}

// Defer queues fn to run after structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports whether anything is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns)+len(c.deletes)+len(c.defers) > 0
}

// Flush applies the buffer to storage and empties it.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}
	for _, components := range c.spawns {
		storage.Spawn(components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
}
