// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/plus3/drop/internal/drop"
)

// Config is the complete game configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Spawner  SpawnerConfig  `yaml:"spawner"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Water    WaterConfig    `yaml:"water"`
	Controls ControlsConfig `yaml:"controls"`
	Audio    AudioConfig    `yaml:"audio"`
	Assets   AssetsConfig   `yaml:"assets"`
	Storage  StorageConfig  `yaml:"storage"`
	Debug    DebugConfig    `yaml:"debug"`
}

// WindowConfig defines the game window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

// SpawnerConfig defines how and where falling objects appear.
type SpawnerConfig struct {
	Interval        time.Duration `yaml:"interval"`
	SpongeThreshold float64       `yaml:"sponge_threshold"`
	StoneThreshold  float64       `yaml:"stone_threshold"`
	SpawnY          float64       `yaml:"spawn_y"`
	SpawnSpan       float64       `yaml:"spawn_span"`
	FallSpeed       float64       `yaml:"fall_speed"`
}

// PhysicsConfig defines movement bounds and bucket interactions.
type PhysicsConfig struct {
	MinX              float64       `yaml:"min_x"`
	MaxX              float64       `yaml:"max_x"`
	ExitY             float64       `yaml:"exit_y"`
	BucketY           float64       `yaml:"bucket_y"`
	CatchRadius       float64       `yaml:"catch_radius"`
	MoveImpulse       float64       `yaml:"move_impulse"`
	KnockbackForce    float64       `yaml:"knockback_force"`
	KnockbackCooldown time.Duration `yaml:"knockback_cooldown"`
}

// WaterConfig defines the water pool.
type WaterConfig struct {
	Y     float64 `yaml:"y"`
	Width float64 `yaml:"width"`
	Max   int     `yaml:"max"`
	Step  int     `yaml:"step"`
}

// ControlsConfig binds logical actions to key and gamepad button names.
type ControlsConfig struct {
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
}

// AudioConfig names the sound assets and their default levels.
type AudioConfig struct {
	Music       string   `yaml:"music"`
	MusicVolume float64  `yaml:"music_volume"`
	SampleRate  int      `yaml:"sample_rate"`
	Drop        []string `yaml:"drop"`
	Splash      []string `yaml:"splash"`
	Tink        []string `yaml:"tink"`
}

// AssetsConfig locates image and sound files.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// StorageConfig locates the score database. An empty path uses ~/.drop/scores.db.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// DebugConfig controls the developer overlay.
type DebugConfig struct {
	Overlay bool `yaml:"overlay"`
}

// Default returns the hardcoded configuration, used when no YAML source can be parsed.
func Default() Config {
	rules := drop.DefaultRules()
	sounds := drop.DefaultSoundBank()

	return Config{
		Window: WindowConfig{Title: "Drop", Width: 800, Height: 480, TPS: 60},
		Spawner: SpawnerConfig{
			Interval:        rules.DropInterval,
			SpongeThreshold: rules.SpongeThreshold,
			StoneThreshold:  rules.StoneThreshold,
			SpawnY:          rules.SpawnY,
			SpawnSpan:       rules.SpawnSpan,
			FallSpeed:       rules.FallSpeed,
		},
		Physics: PhysicsConfig{
			MinX:              rules.MinX,
			MaxX:              rules.MaxX,
			ExitY:             rules.ExitY,
			BucketY:           rules.BucketY,
			CatchRadius:       rules.CatchRadius,
			MoveImpulse:       rules.MoveImpulse,
			KnockbackForce:    rules.KnockbackForce,
			KnockbackCooldown: rules.KnockbackCooldown,
		},
		Water: WaterConfig{Y: rules.PoolY, Width: rules.PoolWidth, Max: rules.PoolMax, Step: rules.WaterStep},
		Controls: ControlsConfig{
			Left:  []string{"ArrowLeft", "A", "pad:left"},
			Right: []string{"ArrowRight", "D", "pad:right"},
		},
		Audio: AudioConfig{
			Music:       sounds.Music,
			MusicVolume: rules.MusicLevel,
			SampleRate:  44100,
			Drop:        sounds.Drop,
			Splash:      sounds.Splash,
			Tink:        sounds.Tink,
		},
		Assets: AssetsConfig{Dir: "assets"},
	}
}

// Validate rejects configurations the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.Window.TPS))
	}
	if c.Spawner.SpongeThreshold < 0 || c.Spawner.SpongeThreshold > 1 ||
		c.Spawner.StoneThreshold < 0 || c.Spawner.StoneThreshold > 1 {
		errs = append(errs, errors.New("spawn thresholds must be within [0, 1]"))
	}
	if c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		errs = append(errs, fmt.Errorf("music volume must be within [0, 1], got %v", c.Audio.MusicVolume))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate must be positive, got %d", c.Audio.SampleRate))
	}
	if len(c.Controls.Left) == 0 || len(c.Controls.Right) == 0 {
		errs = append(errs, errors.New("both left and right need at least one binding"))
	}
	if err := c.Rules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Rules converts the gameplay sections to drop.Rules.
func (c Config) Rules() drop.Rules {
	rules := drop.DefaultRules()
	rules.DropInterval = c.Spawner.Interval
	rules.SpongeThreshold = c.Spawner.SpongeThreshold
	rules.StoneThreshold = c.Spawner.StoneThreshold
	rules.SpawnY = c.Spawner.SpawnY
	rules.SpawnSpan = c.Spawner.SpawnSpan
	rules.FallSpeed = c.Spawner.FallSpeed

	rules.MinX = c.Physics.MinX
	rules.MaxX = c.Physics.MaxX
	rules.ExitY = c.Physics.ExitY
	rules.BucketY = c.Physics.BucketY
	rules.CatchRadius = c.Physics.CatchRadius
	rules.MoveImpulse = c.Physics.MoveImpulse
	rules.KnockbackForce = c.Physics.KnockbackForce
	rules.KnockbackCooldown = c.Physics.KnockbackCooldown

	rules.PoolY = c.Water.Y
	rules.PoolWidth = c.Water.Width
	rules.PoolMax = c.Water.Max
	rules.WaterStep = c.Water.Step
	rules.MusicLevel = c.Audio.MusicVolume
	return rules
}

// SoundBank returns the configured sound asset names.
func (c Config) SoundBank() drop.SoundBank {
	return drop.SoundBank{
		Drop:   c.Audio.Drop,
		Splash: c.Audio.Splash,
		Tink:   c.Audio.Tink,
		Music:  c.Audio.Music,
	}
}
