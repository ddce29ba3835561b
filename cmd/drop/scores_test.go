package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/drop/internal/storage"
)

func TestRenderSessions(t *testing.T) {
	out := renderSessions([]storage.Session{
		{Score: 42, Frames: 3600, Duration: 61500 * time.Millisecond, Seed: 7, CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)},
		{Score: 9, Frames: 600, Duration: 10 * time.Second, Seed: 8, CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)},
	})

	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "1m2s")
	assert.Contains(t, out, "2026-03-01 12:00")
	assert.Less(t, strings.Index(out, "42"), strings.Index(out, "3600"))
	assert.Less(t, strings.Index(out, "2026-03-01"), strings.Index(out, "2026-03-02"))
}

func TestSeedFlag(t *testing.T) {
	flagSeed = 99
	t.Cleanup(func() { flagSeed = 0 })
	assert.Equal(t, uint64(99), seed())

	flagSeed = 0
	assert.NotZero(t, seed())
}
