package ecs_test

import (
	"testing"

	"github.com/plus3/drop/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[mover](storage)

	assert.Panics(t, func() {
		for range query.Iter() {
		}
	})

	storage.Spawn(Position{X: 1}, Velocity{X: 1})
	storage.Spawn(Position{X: 2}, Velocity{X: 1})
	query.Execute()
	assert.Equal(t, 2, query.Len())

	for _, m := range query.Iter() {
		m.Position.X += m.Velocity.X
	}

	var xs []float64
	for m := range query.Values() {
		xs = append(xs, m.Position.X)
	}
	assert.Equal(t, []float64{2, 3}, xs)
}

func TestQueryPicksUpNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[mover](storage)

	storage.Spawn(Position{}, Velocity{})
	query.Execute()
	assert.Equal(t, 1, query.Len())

	storage.Spawn(Position{}, Velocity{}, Falling{})
	storage.Spawn(Position{}, Velocity{})
	query.Execute()
	assert.Equal(t, 3, query.Len())
}
