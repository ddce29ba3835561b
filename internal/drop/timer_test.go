package drop_test

import (
	"testing"
	"time"

	"github.com/plus3/drop/internal/drop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnceTimerLatches(t *testing.T) {
	timer := drop.NewTimer(200*time.Millisecond, drop.Once)

	timer.Tick(150 * time.Millisecond)
	assert.False(t, timer.Finished())
	assert.False(t, timer.JustFinished())

	timer.Tick(100 * time.Millisecond)
	assert.True(t, timer.Finished())
	assert.True(t, timer.JustFinished())
	assert.Equal(t, 200*time.Millisecond, timer.Elapsed())

	timer.Tick(100 * time.Millisecond)
	assert.True(t, timer.Finished())
	assert.False(t, timer.JustFinished())
}

func TestRepeatingTimerWraps(t *testing.T) {
	timer := drop.NewTimer(900*time.Millisecond, drop.Repeating)

	timer.Tick(600 * time.Millisecond)
	assert.False(t, timer.JustFinished())

	timer.Tick(600 * time.Millisecond)
	assert.True(t, timer.JustFinished())
	assert.True(t, timer.Finished())
	assert.Equal(t, 300*time.Millisecond, timer.Elapsed())

	timer.Tick(100 * time.Millisecond)
	assert.False(t, timer.JustFinished())
	assert.False(t, timer.Finished())

	timer.Tick(2 * time.Second)
	assert.Equal(t, uint32(2), timer.TimesFinishedThisTick())
}

func TestPausedTimerIgnoresTicks(t *testing.T) {
	timer := drop.NewTimer(200*time.Millisecond, drop.Once)
	timer.Pause()
	assert.True(t, timer.Paused())

	timer.Tick(time.Second)
	assert.False(t, timer.Finished())
	assert.Zero(t, timer.Elapsed())

	timer.Unpause()
	timer.Tick(250 * time.Millisecond)
	assert.True(t, timer.Finished())

	timer.Pause()
	timer.Reset()
	assert.True(t, timer.Paused())
	assert.False(t, timer.Finished())
	assert.Zero(t, timer.Elapsed())
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, drop.Seconds(0.1))
	assert.Equal(t, time.Duration(0), drop.Seconds(0))
	assert.Equal(t, 16666667*time.Nanosecond, drop.Seconds(1.0/60))
}

func TestFrameStepsReachDuration(t *testing.T) {
	cases := []struct {
		duration time.Duration
		frames   int
	}{
		{200 * time.Millisecond, 12},
		{900 * time.Millisecond, 54},
		{time.Second, 60},
	}
	for _, tc := range cases {
		timer := drop.NewTimer(tc.duration, drop.Once)
		for frame := 1; frame < tc.frames; frame++ {
			require.False(t, timer.Tick(drop.Seconds(1.0/60)).Finished(), "%v finished early at frame %d", tc.duration, frame)
		}
		assert.True(t, timer.Tick(drop.Seconds(1.0/60)).Finished(), "%v should finish at frame %d", tc.duration, tc.frames)
	}
}
