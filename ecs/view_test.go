package ecs_test

import (
	"testing"

	"github.com/plus3/drop/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mover struct {
	*Position
	*Velocity
}

type moverWithWeight struct {
	*Position
	Weight *Weight `ecs:"optional"`
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)

	id := storage.Spawn(Position{X: 1}, Velocity{Y: -200})
	still := storage.Spawn(Position{X: 2})

	m := view.Get(id)
	require.NotNil(t, m)
	assert.Equal(t, float64(1), m.Position.X)
	assert.Equal(t, float64(-200), m.Velocity.Y)

	assert.Nil(t, view.Get(still))
	assert.Nil(t, view.Get(ecs.NewEntityId(1234, 0)))
}

func TestViewFillWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)

	id := storage.Spawn(Position{}, Velocity{X: 5})

	var m mover
	require.True(t, view.Fill(id, &m))
	m.Position.X += m.Velocity.X

	assert.Equal(t, float64(5), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewIterAcrossArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)

	storage.Spawn(Position{X: 1}, Velocity{})
	storage.Spawn(Position{X: 2}, Velocity{}, Tag("stone"))
	storage.Spawn(Position{X: 3})
	storage.Spawn(Position{X: 4}, Velocity{}, Falling{})

	var xs []float64
	for _, m := range view.Iter() {
		xs = append(xs, m.Position.X)
	}
	assert.Equal(t, []float64{1, 2, 4}, xs)
}

func TestViewIterSkipsDeleted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)

	a := storage.Spawn(Position{X: 1}, Velocity{})
	storage.Spawn(Position{X: 2}, Velocity{})
	storage.Delete(a)

	count := 0
	for id, m := range view.Iter() {
		assert.NotEqual(t, a, id)
		assert.Equal(t, float64(2), m.Position.X)
		count++
	}
	assert.Equal(t, 1, count)
}

func TestViewIterEarlyBreak(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)
	for range 10 {
		storage.Spawn(Position{}, Velocity{})
	}

	count := 0
	for range view.Values() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[moverWithWeight](storage)

	light := storage.Spawn(Position{X: 1})
	heavy := storage.Spawn(Position{X: 2}, Weight(600))
	storage.Spawn(Velocity{})

	weights := map[ecs.EntityId]*Weight{}
	for id, m := range view.Iter() {
		weights[id] = m.Weight
	}

	require.Len(t, weights, 2)
	assert.Nil(t, weights[light])
	require.NotNil(t, weights[heavy])
	assert.Equal(t, Weight(600), *weights[heavy])
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	type badTag struct {
		Pos *Position `ecs:"maybe"`
	}
	type notPointer struct {
		Pos Position
	}

	assert.Panics(t, func() { ecs.NewView[badTag](storage) })
	assert.Panics(t, func() { ecs.NewView[notPointer](storage) })
	assert.Panics(t, func() { ecs.NewView[int](storage) })
}
