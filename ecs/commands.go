package ecs

// Commands buffers structural changes made while systems iterate. The scheduler flushes
// the buffer once every system of the frame has run, so no system ever observes a
// collection changing underneath it.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion. Deleting the same entity twice in one frame is a no-op
// the second time.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues a function to run after spawns and deletes have been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies every queued operation to storage and resets the buffer.
// Deletes are applied before spawns so a freed slot can be reused in the same flush.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]struct{}, len(c.deletes))
	for _, id := range c.deletes {
		if _, seen := deleted[id]; seen {
			continue
		}
		deleted[id] = struct{}{}
		storage.Delete(id)
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = c.defers[:0]
}
