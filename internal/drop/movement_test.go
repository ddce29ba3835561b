package drop_test

import (
	"testing"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/internal/drop"
	"github.com/stretchr/testify/assert"
)

func TestIntegrateHalfStepsMatchFullStep(t *testing.T) {
	v := drop.Velocity{X: 120, Y: -200}

	full := drop.Position{X: 10, Y: 300}
	drop.Integrate(&full, &v, 0.1, -370, 370)

	half := drop.Position{X: 10, Y: 300}
	drop.Integrate(&half, &v, 0.05, -370, 370)
	drop.Integrate(&half, &v, 0.05, -370, 370)

	assert.InDelta(t, full.X, half.X, 1e-9)
	assert.InDelta(t, full.Y, half.Y, 1e-9)
	assert.InDelta(t, 280.0, full.Y, 1e-9)
}

func TestBucketStaysInBounds(t *testing.T) {
	h := newHarness(t)

	h.bucketVel().X = 10000
	for range 10 {
		h.world.Step(0.1)
		assert.LessOrEqual(t, h.bucketPos().X, 370.0)
	}
	assert.Equal(t, 370.0, h.bucketPos().X)

	h.bucketVel().X = -10000
	for range 10 {
		h.world.Step(0.1)
		assert.GreaterOrEqual(t, h.bucketPos().X, -370.0)
	}
	assert.Equal(t, -370.0, h.bucketPos().X)
}

func TestFallingObjectsMoveDown(t *testing.T) {
	h := newHarness(t)
	id := h.spawn(drop.Raindrop, 200, 300)

	h.world.Step(0.5)

	pos := ecs.ReadComponent[drop.Position](h.storage(), id)
	assert.InDelta(t, 200.0, pos.Y, 1e-9)
	assert.Equal(t, 200.0, pos.X)
}
