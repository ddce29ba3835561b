package drop_test

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/internal/drop"
	"github.com/stretchr/testify/require"
)

type recordingAudio struct {
	played []string
	opts   []drop.PlayOptions
}

func (a *recordingAudio) Play(name string, opts drop.PlayOptions) {
	a.played = append(a.played, name)
	a.opts = append(a.opts, opts)
}

type harness struct {
	world *drop.World
	audio *recordingAudio
	logs  *bytes.Buffer
}

func newHarness(t *testing.T, mutate ...func(*drop.Options)) *harness {
	t.Helper()

	h := &harness{audio: &recordingAudio{}, logs: &bytes.Buffer{}}
	opts := drop.Options{
		Rules:  drop.DefaultRules(),
		Sounds: drop.DefaultSoundBank(),
		Rand:   rand.New(rand.NewPCG(1, 2)),
		Audio:  h.audio,
		Logger: log.New(h.logs),
	}
	for _, m := range mutate {
		m(&opts)
	}

	world, err := drop.NewWorld(opts)
	require.NoError(t, err)
	h.world = world
	return h
}

func (h *harness) storage() *ecs.Storage {
	return h.world.Storage()
}

func (h *harness) bucketPos() *drop.Position {
	return ecs.ReadComponent[drop.Position](h.storage(), h.world.BucketID())
}

func (h *harness) bucketVel() *drop.Velocity {
	return ecs.ReadComponent[drop.Velocity](h.storage(), h.world.BucketID())
}

func (h *harness) spawn(kind drop.Kind, x, y float64) ecs.EntityId {
	components := drop.FallingObject(h.world.Rules(), kind, x)
	id := h.storage().Spawn(components...)
	ecs.ReadComponent[drop.Position](h.storage(), id).Y = y
	return id
}

// clearPools removes every water pool.
func (h *harness) clearPools() {
	var ids []ecs.EntityId
	for id := range ecs.NewView[drop.WaterPool](h.storage()).Iter() {
		ids = append(ids, id)
	}
	for _, id := range ids {
		h.storage().Delete(id)
	}
}

func (h *harness) addPool(x float64, level int) ecs.EntityId {
	rules := h.world.Rules()
	pool := drop.NewWaterPool(rules)
	pool.Position.X = x
	pool.WaterLevel.Current = level
	pool.Sprite.CustomSize.H = float64(2 * level)
	return h.storage().Spawn(pool.WaterLevel, pool.Position, pool.Sprite)
}

func (h *harness) pools() map[float64]drop.WaterPool {
	pools := map[float64]drop.WaterPool{}
	for pool := range ecs.NewView[drop.WaterPool](h.storage()).Values() {
		pools[pool.Position.X] = pool
	}
	return pools
}
