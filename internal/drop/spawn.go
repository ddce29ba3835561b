package drop

import (
	"math/rand/v2"

	"github.com/plus3/drop/ecs"
)

// SpawnSystem drops a new object from the top of the play area every time the drop timer
// wraps.
type SpawnSystem struct {
	Timer ecs.Singleton[DropTimer]

	Rules Rules
	Rand  *rand.Rand
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	if timer == nil {
		return
	}
	if !timer.Timer.Tick(Seconds(frame.DeltaTime)).JustFinished() {
		return
	}

	kind := s.Rules.KindForRoll(s.Rand.Float64())
	x := s.Rules.SpawnX(s.Rand.Float64())
	frame.Commands.Spawn(FallingObject(s.Rules, kind, x)...)
}

// FallingObject returns the components of a freshly spawned object of the given kind at
// column x.
func FallingObject(rules Rules, kind Kind, x float64) []any {
	components := []any{
		Droplet{Kind: kind},
		Position{X: x, Y: rules.SpawnY, Z: rules.FallingZ},
		Velocity{Y: -rules.FallSpeed},
		Sprite{Texture: kind.texture()},
	}
	if kind == Stone {
		timer := NewTimer(rules.KnockbackCooldown, Once)
		timer.Pause()
		components = append(components, Knockback{Timer: timer})
	}
	return components
}

func (k Kind) texture() string {
	switch k {
	case Stone:
		return TextureStone
	case Sponge:
		return TextureSponge
	}
	return TextureRaindrop
}
