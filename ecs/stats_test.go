package ecs_test

import (
	"testing"

	"github.com/plus3/drop/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	empty := storage.CollectStats()
	assert.Equal(t, 0, empty.ArchetypeCount)
	assert.Equal(t, 0, empty.TotalEntityCount)

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})
	doomed := storage.Spawn(Position{})
	storage.Delete(doomed)
	storage.AddSingleton(Counter{})

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Counter"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Velocity"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, 0, stats.ArchetypeBreakdown[1].EntityCount)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(Counter{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&TickSystem{})

	before := scheduler.GetStats()
	assert.Equal(t, 2, before.SystemCount)
	assert.Equal(t, int64(0), before.TotalExecutions)

	for range 4 {
		scheduler.Once(0.016)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, int64(8), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "TickSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(4), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		assert.Equal(t, s.TotalDuration/4, s.AvgDuration)
	}
}
