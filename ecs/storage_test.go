package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/drop/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Label{Value: "drop"})

	pos := storage.GetComponent(id, reflect.TypeFor[Position]())
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos.(*Position))

	label := ecs.ReadComponent[Label](storage, id)
	require.NotNil(t, label)
	assert.Equal(t, "drop", label.Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Velocity]()))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestSpawnWithoutComponentsPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { storage.Spawn() })
}

func TestSpawnUnregisteredComponentPanics(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	assert.Panics(t, func() { storage.Spawn(Position{}) })
}

func TestComponentTypeOrderIndependence(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
	assert.Len(t, storage.Archetypes(), 1)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Velocity{})
	assert.True(t, storage.Alive(id))

	storage.Delete(id)
	assert.False(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
	assert.Equal(t, 0, storage.EntityCount())

	// deleting twice is harmless
	storage.Delete(id)
	assert.Equal(t, 0, storage.EntityCount())
}

func TestDeleteUnknownArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.NotPanics(t, func() { storage.Delete(ecs.NewEntityId(99, 3)) })
	assert.False(t, storage.Alive(ecs.NewEntityId(99, 3)))
	assert.False(t, storage.HasComponent(ecs.NewEntityId(99, 3), reflect.TypeFor[Position]()))
}

func TestSlotsAreStableAcrossDeletes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, 0, 10)
	for i := range 10 {
		ids = append(ids, storage.Spawn(Position{X: float64(i)}))
	}

	held := ecs.ReadComponent[Position](storage, ids[7])
	for i := 0; i < 10; i += 2 {
		storage.Delete(ids[i])
	}

	assert.Equal(t, float64(7), held.X)
	for i := 1; i < 10; i += 2 {
		pos := ecs.ReadComponent[Position](storage, ids[i])
		require.NotNil(t, pos)
		assert.Equal(t, float64(i), pos.X)
	}

	reused := storage.Spawn(Position{X: 100})
	assert.Equal(t, ids[8].Index(), reused.Index())
}

func TestPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 42})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := range 1000 {
		storage.Spawn(Position{X: float64(i)})
	}

	pos.Y = 9
	assert.Equal(t, float64(9), ecs.ReadComponent[Position](storage, first).Y)
	assert.Equal(t, float64(42), pos.X)
}

func TestComponentMutation(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Weight(5), Tag("stone"))
	*ecs.ReadComponent[Weight](storage, id) += 10

	assert.Equal(t, Weight(15), *ecs.ReadComponent[Weight](storage, id))
	assert.Equal(t, Tag("stone"), *ecs.ReadComponent[Tag](storage, id))
}

func TestHasComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{}, Falling{})
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Falling]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestGetArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Nil(t, storage.GetArchetype(Position{}, Velocity{}))

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})

	archetype := storage.GetArchetype(Velocity{}, Position{})
	require.NotNil(t, archetype)
	assert.Equal(t, 2, archetype.Len())
	assert.Same(t, archetype, storage.GetArchetypeByTypes([]reflect.Type{reflect.TypeFor[Velocity](), reflect.TypeFor[Position]()}))
}

func TestArchetypeIterOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var spawned []ecs.EntityId
	for i := range 5 {
		spawned = append(spawned, storage.Spawn(Position{X: float64(i)}))
	}

	var seen []ecs.EntityId
	for id := range storage.GetArchetype(Position{}).Iter() {
		seen = append(seen, id)
	}
	assert.Equal(t, spawned, seen)
}

func TestSliceComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Basket{Items: []string{"a"}})
	basket := ecs.ReadComponent[Basket](storage, id)
	basket.Items = append(basket.Items, "b")

	assert.Equal(t, []string{"a", "b"}, ecs.ReadComponent[Basket](storage, id).Items)
}

func TestInvalidComponentKindsPanic(t *testing.T) {
	registry := newTestRegistry()
	ecs.RegisterComponent[map[string]int](registry)
	storage := ecs.NewStorage(registry)

	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var counter *Counter
	assert.False(t, ecs.ReadSingleton(storage, &counter))
	assert.Nil(t, counter)

	storage.AddSingleton(Counter{Ticks: 3})
	require.True(t, ecs.ReadSingleton(storage, &counter))
	assert.Equal(t, 3, counter.Ticks)

	counter.Ticks++
	var again *Counter
	ecs.ReadSingleton(storage, &again)
	assert.Same(t, counter, again)
	assert.Equal(t, 4, again.Ticks)

	// replacing keeps the same address
	storage.AddSingleton(&Counter{Ticks: 10})
	assert.Equal(t, 10, counter.Ticks)
}
