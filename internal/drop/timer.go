package drop

import (
	"math"
	"time"
)

// TimerMode selects whether a Timer stops or wraps when it reaches its duration.
type TimerMode uint8

const (
	Once TimerMode = iota
	Repeating
)

// Timer accumulates frame time towards a duration.
//
// A Once timer latches Finished when elapsed reaches the duration and ignores further ticks
// until Reset. A Repeating timer wraps elapsed and reports how many periods completed in the
// last tick. A paused timer ignores ticks entirely.
type Timer struct {
	Duration time.Duration
	Mode     TimerMode

	elapsed       time.Duration
	paused        bool
	finished      bool
	finishedTicks uint32
}

// NewTimer creates a running timer.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{Duration: d, Mode: mode}
}

// Tick advances the timer by dt.
func (t *Timer) Tick(dt time.Duration) *Timer {
	if t.paused {
		t.finishedTicks = 0
		if t.Mode == Repeating {
			t.finished = false
		}
		return t
	}

	if t.Mode == Once && t.finished {
		t.finishedTicks = 0
		return t
	}

	t.elapsed += dt
	t.finished = t.elapsed >= t.Duration
	if !t.finished {
		t.finishedTicks = 0
		return t
	}

	if t.Mode == Repeating {
		if t.Duration > 0 {
			t.finishedTicks = uint32(t.elapsed / t.Duration)
			t.elapsed %= t.Duration
		} else {
			t.finishedTicks = 1
			t.elapsed = 0
		}
	} else {
		t.finishedTicks = 1
		t.elapsed = t.Duration
	}
	return t
}

// Finished reports whether the timer has reached its duration. For repeating timers it is
// only true on the tick that wrapped.
func (t *Timer) Finished() bool {
	return t.finished
}

// JustFinished reports whether the last tick completed at least one period.
func (t *Timer) JustFinished() bool {
	return t.finishedTicks > 0
}

// TimesFinishedThisTick returns how many periods the last tick completed.
func (t *Timer) TimesFinishedThisTick() uint32 {
	return t.finishedTicks
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Timer) Pause() {
	t.paused = true
}

func (t *Timer) Unpause() {
	t.paused = false
}

func (t *Timer) Paused() bool {
	return t.paused
}

// Reset rewinds the timer without changing its paused state.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.finishedTicks = 0
}

// Seconds converts a frame delta in seconds to a duration, rounded to the nearest
// nanosecond so that N steps of 1/N s add up to at least one second.
func Seconds(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}
