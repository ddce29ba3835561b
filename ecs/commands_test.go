package ecs_test

import (
	"testing"

	"github.com/plus3/drop/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnEachFrame struct{}

func (s *spawnEachFrame) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{Y: 300}, Velocity{Y: -200})
}

type despawnBelow struct {
	Movers ecs.Query[mover]
}

func (s *despawnBelow) Execute(frame *ecs.UpdateFrame) {
	for id, m := range s.Movers.Iter() {
		if m.Position.Y < 0 {
			// queued twice on purpose
			frame.Commands.Delete(id)
			frame.Commands.Delete(id)
		}
	}
}

func TestCommandsAreDeferredUntilFrameEnd(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var pendingDuringFrame int
	scheduler.Register(&spawnEachFrame{})
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		pendingDuringFrame = frame.Commands.Pending()
		assert.Equal(t, 0, storage.EntityCount())
	}))

	scheduler.Once(0.1)
	assert.Equal(t, 1, pendingDuringFrame)
	assert.Equal(t, 1, storage.EntityCount())
}

func TestCommandsDeleteIsIdempotent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&despawnBelow{})

	below := storage.Spawn(Position{Y: -10}, Velocity{})
	above := storage.Spawn(Position{Y: 10}, Velocity{})

	scheduler.Once(0.1)
	assert.False(t, storage.Alive(below))
	assert.True(t, storage.Alive(above))

	// the freed slot is reused exactly once
	again := storage.Spawn(Position{Y: 5}, Velocity{})
	assert.Equal(t, below.Index(), again.Index())
	next := storage.Spawn(Position{Y: 5}, Velocity{})
	assert.NotEqual(t, again.Index(), next.Index())
}

func TestCommandsDeferRunsAfterStructuralChanges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var countInDefer int
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Label{Value: "pool"})
		frame.Commands.Defer(func() {
			countInDefer = storage.EntityCount()
		})
	}))

	scheduler.Once(0.1)
	require.Equal(t, 1, countInDefer)
}
