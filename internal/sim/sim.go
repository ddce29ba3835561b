// Package sim runs the game without a window, with an autopilot at the controls.
package sim

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/internal/drop"
)

// Options configures a run. Exactly one of Frames and Duration must be set: Frames steps
// as fast as possible with a fixed step, Duration runs in real time at TPS.
type Options struct {
	Rules    drop.Rules
	Sounds   drop.SoundBank
	Seed     uint64
	Frames   int
	Duration time.Duration
	TPS      int
	Logger   *log.Logger
}

// cueCounter is a silent drop.Audio that counts requests per cue.
type cueCounter struct {
	cues   map[string]drop.Cue
	counts map[drop.Cue]int
}

func newCueCounter(bank drop.SoundBank) *cueCounter {
	c := &cueCounter{cues: make(map[string]drop.Cue), counts: make(map[drop.Cue]int)}
	for _, cue := range []drop.Cue{drop.CueDrop, drop.CueSplash, drop.CueTink} {
		for _, name := range bank.Variants(cue) {
			c.cues[name] = cue
		}
	}
	return c
}

func (c *cueCounter) Play(name string, opts drop.PlayOptions) {
	if cue, ok := c.cues[name]; ok {
		c.counts[cue]++
	}
}

// recorder runs last each frame and samples frame time and the invariants.
type recorder struct {
	Buckets ecs.Query[struct {
		*drop.Bucket
		*drop.Position
	}]
	Pools ecs.Query[drop.WaterPool]

	report *Report
	last   time.Time
}

func (r *recorder) Execute(frame *ecs.UpdateFrame) {
	now := time.Now()
	if !r.last.IsZero() {
		r.report.FrameTime.Samples = append(r.report.FrameTime.Samples, now.Sub(r.last))
	}
	r.last = now

	for bucket := range r.Buckets.Values() {
		r.report.BucketMinX = min(r.report.BucketMinX, bucket.Position.X)
		r.report.BucketMaxX = max(r.report.BucketMaxX, bucket.Position.X)
	}
	for pool := range r.Pools.Values() {
		r.report.PeakWater = max(r.report.PeakWater, pool.WaterLevel.Current)
	}
}

// Run plays one session and reports on it. A cancelled ctx ends a Duration run early
// without error.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if (opts.Frames > 0) == (opts.Duration > 0) {
		return nil, errors.New("sim: set exactly one of frames and duration")
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rules == (drop.Rules{}) {
		opts.Rules = drop.DefaultRules()
	}
	if len(opts.Sounds.All()) == 0 {
		opts.Sounds = drop.DefaultSoundBank()
	}

	report := &Report{
		Seed:       opts.Seed,
		Frames:     opts.Frames,
		Duration:   opts.Duration,
		TPS:        opts.TPS,
		BucketMinX: opts.Rules.MaxX,
		BucketMaxX: opts.Rules.MinX,
	}
	counter := newCueCounter(opts.Sounds)
	rec := &recorder{report: report}

	world, err := drop.NewWorld(drop.Options{
		Rules:    opts.Rules,
		Sounds:   opts.Sounds,
		Rand:     rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		Audio:    counter,
		Logger:   opts.Logger,
		Input:    &AutopilotSystem{Deadzone: opts.Rules.CatchRadius / 4},
		Overlays: []ecs.System{rec},
	})
	if err != nil {
		return nil, err
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	opts.Logger.Info("simulation started", "seed", opts.Seed, "frames", opts.Frames, "duration", opts.Duration)
	start := time.Now()

	if opts.Frames > 0 {
		dt := 1 / float64(opts.TPS)
	Loop:
		for range opts.Frames {
			select {
			case <-ctx.Done():
				break Loop
			default:
				world.Step(dt)
			}
		}
	} else {
		runCtx, cancel := context.WithTimeout(ctx, opts.Duration)
		defer cancel()
		world.Scheduler().Run(runCtx, time.Second/time.Duration(opts.TPS))
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.FrameTime.Finalize()
	report.Snapshot = world.Snapshot()
	report.Systems = world.Scheduler().GetStats().Systems
	report.Caught = counter.counts[drop.CueDrop]
	report.StoneHits = counter.counts[drop.CueTink]
	report.StoneSplashes = counter.counts[drop.CueSplash]

	opts.Logger.Info("simulation finished", "score", report.Snapshot.Score, "frames", report.Snapshot.Frame)
	return report, nil
}
