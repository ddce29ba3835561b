package drop

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/plus3/drop/ecs"
)

// Options configures a World. Zero values fall back to defaults, except Rand which is
// required so runs stay reproducible.
type Options struct {
	Rules  Rules
	Sounds SoundBank
	Rand   *rand.Rand
	Audio  Audio
	Logger *log.Logger

	// Input, when set, runs first every frame and is expected to refresh the bucket's
	// ActionState.
	Input ecs.System
	// Overlays run after the gameplay systems, in order.
	Overlays []ecs.System
	// Register adds extra component types before storage is created.
	Register func(*ecs.ComponentRegistry)
}

// World is one game session: storage, scheduler and the gameplay systems in frame order.
type World struct {
	rules     Rules
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	bucket    ecs.EntityId
}

// NewWorld builds the storage, spawns the bucket and the initial pool, starts the music and
// registers the systems.
func NewWorld(opts Options) (*World, error) {
	if opts.Rand == nil {
		return nil, errors.New("drop: a random source is required")
	}
	if opts.Rules == (Rules{}) {
		opts.Rules = DefaultRules()
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("drop: %w", err)
	}
	if len(opts.Sounds.All()) == 0 {
		opts.Sounds = DefaultSoundBank()
	}
	if opts.Audio == nil {
		opts.Audio = NopAudio{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	if opts.Register != nil {
		opts.Register(registry)
	}
	storage := ecs.NewStorage(registry)

	w := &World{
		rules:   opts.Rules,
		storage: storage,
	}
	w.bucket = Setup(storage, opts.Rules, opts.Sounds)

	if opts.Sounds.Music != "" {
		opts.Audio.Play(opts.Sounds.Music, PlayOptions{Volume: opts.Rules.MusicLevel, Loop: true})
	}

	scheduler := ecs.NewScheduler(storage)
	if opts.Input != nil {
		scheduler.Register(opts.Input)
	}
	scheduler.Register(&SpawnSystem{Rules: opts.Rules, Rand: opts.Rand})
	scheduler.Register(&MovementSystem{Rules: opts.Rules})
	scheduler.Register(&InteractionSystem{
		Rules:  opts.Rules,
		Rand:   opts.Rand,
		Audio:  opts.Audio,
		Logger: opts.Logger.WithPrefix("interaction"),
	})
	scheduler.Register(&BucketControlSystem{Rules: opts.Rules})
	for _, system := range opts.Overlays {
		scheduler.Register(system)
	}
	w.scheduler = scheduler

	return w, nil
}

// Setup adds the session singletons, the initial water pool and the bucket, and returns
// the bucket's id.
func Setup(storage *ecs.Storage, rules Rules, sounds SoundBank) ecs.EntityId {
	storage.AddSingleton(Score{})
	storage.AddSingleton(DropTimer{Timer: NewTimer(rules.DropInterval, Repeating)})
	storage.AddSingleton(sounds)

	pool := NewWaterPool(rules)
	storage.Spawn(pool.WaterLevel, pool.Position, pool.Sprite)

	return storage.Spawn(
		Bucket{},
		Position{Y: rules.BucketY, Z: rules.BucketZ},
		Velocity{},
		ActionState{},
		Sprite{Texture: TextureBucket},
	)
}

// Step runs one frame of dt seconds.
func (w *World) Step(dt float64) {
	w.scheduler.Once(dt)
}

func (w *World) Rules() Rules {
	return w.rules
}

func (w *World) Storage() *ecs.Storage {
	return w.storage
}

func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}

// BucketID returns the bucket entity.
func (w *World) BucketID() ecs.EntityId {
	return w.bucket
}

// Score returns the current session score.
func (w *World) Score() int64 {
	var score *Score
	if !ecs.ReadSingleton(w.storage, &score) {
		return 0
	}
	return score.Value
}

// Snapshot summarises the session for overlays and reports.
type Snapshot struct {
	Frame      uint64
	Score      int64
	BucketX    float64
	BucketVX   float64
	Pools      []int
	Falling    map[Kind]int
	Entities   int
	Archetypes int
}

// Snapshot collects the current state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:   w.scheduler.Frames(),
		Score:   w.Score(),
		Falling: make(map[Kind]int, 3),
	}

	if pos := ecs.ReadComponent[Position](w.storage, w.bucket); pos != nil {
		snap.BucketX = pos.X
	}
	if vel := ecs.ReadComponent[Velocity](w.storage, w.bucket); vel != nil {
		snap.BucketVX = vel.X
	}

	for pool := range ecs.NewView[WaterPool](w.storage).Values() {
		snap.Pools = append(snap.Pools, pool.WaterLevel.Current)
	}
	for obj := range ecs.NewView[fallingObject](w.storage).Values() {
		snap.Falling[obj.Droplet.Kind]++
	}

	stats := w.storage.CollectStats()
	snap.Entities = stats.TotalEntityCount
	snap.Archetypes = stats.ArchetypeCount
	return snap
}
