package drop

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/plus3/drop/ecs"
)

type fallingObject struct {
	*Droplet
	*Position
	Knockback *Knockback `ecs:"optional"`
}

type bucketBody struct {
	*Bucket
	*Position
	*Velocity
}

// WaterPool views a pool entity.
type WaterPool struct {
	*WaterLevel
	*Position
	*Sprite
}

// InteractionSystem resolves falling objects against the bottom edge, the water pools and
// the bucket.
type InteractionSystem struct {
	Objects ecs.Query[fallingObject]
	Buckets ecs.Query[bucketBody]
	Pools   ecs.Query[WaterPool]
	Score   ecs.Singleton[Score]
	Sounds  ecs.Singleton[SoundBank]

	Rules  Rules
	Rand   *rand.Rand
	Audio  Audio
	Logger *log.Logger

	// pending is a pool queued for spawning earlier in the same frame. Its components are
	// copied into storage on flush, so later objects in the frame can still land in it.
	pending *WaterPool
}

func (s *InteractionSystem) Execute(frame *ecs.UpdateFrame) {
	s.pending = nil

	var bucket *bucketBody
	for b := range s.Buckets.Values() {
		bucket = &b
		break
	}
	if bucket == nil && s.Objects.Len() > 0 {
		s.Logger.Warn("no bucket to resolve falling objects against")
	}

	dt := Seconds(frame.DeltaTime)
	for id, obj := range s.Objects.Iter() {
		if kb := obj.Knockback; kb != nil {
			if kb.Timer.Tick(dt).Finished() {
				kb.Timer.Pause()
				kb.Timer.Reset()
				if bucket != nil {
					bucket.Velocity.X -= kb.Force
				}
			}
		}

		if obj.Position.Y < s.Rules.ExitY {
			s.exit(frame, obj, bucket)
			frame.Commands.Delete(id)
			continue
		}

		if bucket != nil && Distance(obj.Position, bucket.Position) < s.Rules.CatchRadius {
			s.contact(frame, id, obj, bucket)
		}
	}
}

func (s *InteractionSystem) exit(frame *ecs.UpdateFrame, obj fallingObject, bucket *bucketBody) {
	switch obj.Droplet.Kind {
	case Raindrop:
		pool := s.nearestPool(obj.Position.X)
		if pool == nil {
			s.Logger.Warn("no water for the raindrop to land in, spawning a pool", "x", obj.Position.X)
			pool = s.spawnPool(frame)
		}
		s.Rules.AddWater(pool.WaterLevel)
		s.resize(pool)

	case Sponge:
		pool := s.nearestPool(obj.Position.X)
		if pool == nil {
			s.Logger.Warn("no water for the sponge to land in, spawning a pool", "x", obj.Position.X)
			s.spawnPool(frame)
			return
		}
		s.Rules.RemoveWater(pool.WaterLevel)
		s.resize(pool)

	case Stone:
		s.play(CueSplash)
		if kb := obj.Knockback; kb != nil && !kb.Timer.Paused() && bucket != nil {
			bucket.Velocity.X -= kb.Force
		}
	}
}

func (s *InteractionSystem) contact(frame *ecs.UpdateFrame, id ecs.EntityId, obj fallingObject, bucket *bucketBody) {
	switch obj.Droplet.Kind {
	case Raindrop:
		s.addScore(1)
		frame.Commands.Delete(id)
		s.play(CueDrop)

	case Sponge:
		s.addScore(-1)
		frame.Commands.Delete(id)

	case Stone:
		kb := obj.Knockback
		if kb == nil || !kb.Timer.Paused() {
			return
		}
		kb.Timer.Unpause()
		if obj.Position.X > bucket.Position.X {
			kb.Force = -s.Rules.KnockbackForce
		} else {
			kb.Force = s.Rules.KnockbackForce
		}
		bucket.Velocity.X += kb.Force
		s.play(CueTink)
	}
}

// nearestPool returns the pool closest to x along the horizontal axis. Ties go to the pool
// met first.
func (s *InteractionSystem) nearestPool(x float64) *WaterPool {
	target := &Position{X: x}
	var (
		best    *WaterPool
		bestGap float64
	)
	for pool := range s.Pools.Values() {
		gap := horizontalGap(pool.Position, target)
		if best == nil || gap < bestGap {
			p := pool
			best, bestGap = &p, gap
		}
	}
	if s.pending != nil && (best == nil || horizontalGap(s.pending.Position, target) < bestGap) {
		best = s.pending
	}
	return best
}

func (s *InteractionSystem) spawnPool(frame *ecs.UpdateFrame) *WaterPool {
	if s.pending != nil {
		return s.pending
	}
	pool := NewWaterPool(s.Rules)
	s.pending = &pool
	frame.Commands.Spawn(pool.WaterLevel, pool.Position, pool.Sprite)
	return s.pending
}

func (s *InteractionSystem) resize(pool *WaterPool) {
	height := PoolHeight(pool.WaterLevel)
	if pool.Sprite.CustomSize == nil {
		s.Logger.Warn("no size for the water, creating one", "level", pool.WaterLevel.Current)
		pool.Sprite.CustomSize = &Size{W: s.Rules.PoolWidth, H: height}
		return
	}
	pool.Sprite.CustomSize.H = height
}

func (s *InteractionSystem) addScore(delta int64) {
	if score := s.Score.Get(); score != nil {
		score.Value += delta
	}
}

func (s *InteractionSystem) play(cue Cue) {
	playRandom(s.Audio, s.Sounds.Get(), cue, s.Rand, s.Logger)
}

// NewWaterPool returns the components of an empty pool spanning the play area.
func NewWaterPool(rules Rules) WaterPool {
	return WaterPool{
		WaterLevel: &WaterLevel{Max: rules.PoolMax},
		Position:   &Position{Y: rules.PoolY, Z: rules.PoolZ},
		Sprite:     &Sprite{Color: WaterColor, CustomSize: &Size{W: rules.PoolWidth}},
	}
}
