package drop

import (
	"errors"
	"time"
)

// Rules holds every tunable gameplay constant.
type Rules struct {
	DropInterval time.Duration
	// SpongeThreshold and StoneThreshold split the unit interval: a roll at or above
	// SpongeThreshold spawns a sponge, at or above StoneThreshold a stone, else a raindrop.
	SpongeThreshold float64
	StoneThreshold  float64
	SpawnY          float64
	SpawnSpan       float64
	FallSpeed       float64

	MinX  float64
	MaxX  float64
	ExitY float64

	CatchRadius       float64
	KnockbackForce    float64
	KnockbackCooldown time.Duration
	MoveImpulse       float64

	BucketY    float64
	PoolY      float64
	PoolWidth  float64
	PoolMax    int
	WaterStep  int
	PoolZ      float64
	FallingZ   float64
	BucketZ    float64
	MusicLevel float64
}

// DefaultRules returns the stock game constants.
func DefaultRules() Rules {
	return Rules{
		DropInterval:    900 * time.Millisecond,
		SpongeThreshold: 0.95,
		StoneThreshold:  0.75,
		SpawnY:          300,
		SpawnSpan:       736,
		FallSpeed:       200,

		MinX:  -370,
		MaxX:  370,
		ExitY: -272,

		CatchRadius:       64,
		KnockbackForce:    600,
		KnockbackCooldown: 200 * time.Millisecond,
		MoveImpulse:       300,

		BucketY:    -188,
		PoolY:      -239.9,
		PoolWidth:  800,
		PoolMax:    70,
		WaterStep:  10,
		PoolZ:      3,
		FallingZ:   1,
		BucketZ:    0,
		MusicLevel: 0.2,
	}
}

// Validate reports the first inconsistent constant.
func (r Rules) Validate() error {
	switch {
	case r.DropInterval <= 0:
		return errors.New("drop interval must be positive")
	case r.StoneThreshold < 0 || r.SpongeThreshold > 1 || r.StoneThreshold > r.SpongeThreshold:
		return errors.New("spawn thresholds must satisfy 0 <= stone <= sponge <= 1")
	case r.MinX >= r.MaxX:
		return errors.New("horizontal bounds are empty")
	case r.CatchRadius <= 0:
		return errors.New("catch radius must be positive")
	case r.PoolMax <= 0 || r.WaterStep <= 0:
		return errors.New("pool max and water step must be positive")
	case r.KnockbackCooldown <= 0:
		return errors.New("knockback cooldown must be positive")
	}
	return nil
}

// KindForRoll maps a uniform roll in [0,1) to a falling object kind.
func (r Rules) KindForRoll(roll float64) Kind {
	switch {
	case roll >= r.SpongeThreshold:
		return Sponge
	case roll >= r.StoneThreshold:
		return Stone
	default:
		return Raindrop
	}
}

// SpawnX maps a uniform roll in [0,1) to a spawn column centred on the origin.
func (r Rules) SpawnX(roll float64) float64 {
	return roll*r.SpawnSpan - r.SpawnSpan/2
}

// AddWater raises the level by the water step, clamped at Max. It reports whether any water
// spilled over the rim.
func (r Rules) AddWater(w *WaterLevel) (overflowing bool) {
	w.Current += r.WaterStep
	if w.Current > w.Max {
		w.Current = w.Max
		return true
	}
	return false
}

// RemoveWater lowers the level by the water step, clamped to [0, Max].
func (r Rules) RemoveWater(w *WaterLevel) {
	w.Current = min(max(w.Current-r.WaterStep, 0), w.Max)
}

// PoolHeight is the drawn height of a pool. The rectangle is centred on the pool position,
// so half of it lies below the bottom edge.
func PoolHeight(w *WaterLevel) float64 {
	return float64(2 * w.Current)
}
