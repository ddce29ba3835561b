package drop_test

import (
	"testing"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/internal/drop"
	"github.com/stretchr/testify/assert"
)

func TestActionStateEdges(t *testing.T) {
	var state drop.ActionState

	state.Set(drop.ActionLeft, true)
	assert.True(t, state.JustPressed(drop.ActionLeft))
	assert.True(t, state.Pressed(drop.ActionLeft))

	state.Set(drop.ActionLeft, true)
	assert.False(t, state.JustPressed(drop.ActionLeft))
	assert.True(t, state.Pressed(drop.ActionLeft))

	state.Set(drop.ActionLeft, false)
	assert.True(t, state.JustReleased(drop.ActionLeft))
	assert.False(t, state.Pressed(drop.ActionLeft))

	state.Set(drop.ActionLeft, false)
	assert.False(t, state.JustReleased(drop.ActionLeft))
	assert.False(t, state.Pressed(drop.ActionRight))
}

func TestApplyInput(t *testing.T) {
	var (
		state drop.ActionState
		v     drop.Velocity
	)

	step := func(left, right bool) float64 {
		state.Set(drop.ActionLeft, left)
		state.Set(drop.ActionRight, right)
		drop.ApplyInput(&state, &v, 300)
		return v.X
	}

	assert.Equal(t, -300.0, step(true, false))
	assert.Equal(t, -300.0, step(true, false))
	assert.Equal(t, 0.0, step(true, true))
	assert.Equal(t, 300.0, step(false, true))
	assert.Equal(t, 0.0, step(false, false))
}

type scriptedInput struct {
	Buckets ecs.Query[struct {
		*drop.Bucket
		*drop.ActionState
	}]
	frames [][2]bool
	frame  int
}

func (s *scriptedInput) Execute(*ecs.UpdateFrame) {
	var held [2]bool
	if s.frame < len(s.frames) {
		held = s.frames[s.frame]
	}
	s.frame++
	for b := range s.Buckets.Values() {
		b.ActionState.Set(drop.ActionLeft, held[0])
		b.ActionState.Set(drop.ActionRight, held[1])
	}
}

func TestBucketControlInFrameOrder(t *testing.T) {
	input := &scriptedInput{frames: [][2]bool{
		{true, false},
		{true, false},
		{false, false},
	}}
	h := newHarness(t, func(o *drop.Options) { o.Input = input })

	h.world.Step(0.1)
	// velocity is applied after movement, so the first frame does not move yet
	assert.Equal(t, -300.0, h.bucketVel().X)
	assert.Equal(t, 0.0, h.bucketPos().X)

	h.world.Step(0.1)
	assert.InDelta(t, -30.0, h.bucketPos().X, 1e-9)

	h.world.Step(0.1)
	assert.Equal(t, 0.0, h.bucketVel().X)
	assert.InDelta(t, -60.0, h.bucketPos().X, 1e-9)
}
