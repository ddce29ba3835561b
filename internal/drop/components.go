package drop

import (
	"image/color"

	"github.com/plus3/drop/ecs"
)

// Position is the centre of an entity in world units. The origin is the centre of the play
// area and y grows upwards.
type Position struct {
	X, Y float64
	// Z orders sprites when drawing; higher is drawn later.
	Z float64
}

// Velocity is in world units per second.
type Velocity struct {
	X, Y float64
}

// Kind distinguishes the three falling objects.
type Kind uint8

const (
	Raindrop Kind = iota
	Stone
	Sponge
)

func (k Kind) String() string {
	switch k {
	case Raindrop:
		return "raindrop"
	case Stone:
		return "stone"
	case Sponge:
		return "sponge"
	}
	return "unknown"
}

// Droplet marks a falling object.
type Droplet struct {
	Kind Kind
}

// Knockback is carried by stones only. Timer is a paused one-shot cooldown until the stone
// touches the bucket; Force is the impulse that was applied to the bucket on contact and is
// taken back when the cooldown elapses or the stone leaves the play area.
type Knockback struct {
	Timer Timer
	Force float64
}

// Bucket marks the player entity.
type Bucket struct{}

// WaterLevel is a pool filled by raindrops and drained by sponges.
type WaterLevel struct {
	Current int
	Max     int
}

// Size is a width and height in world units.
type Size struct {
	W, H float64
}

// Sprite describes how an entity is drawn. Texture names an image from the asset set; an
// empty Texture draws a rectangle filled with Color. CustomSize overrides the image size.
type Sprite struct {
	Texture    string
	Color      color.RGBA
	CustomSize *Size
}

// Score is the session score singleton.
type Score struct {
	Value int64
}

// DropTimer is the spawner's repeating timer singleton.
type DropTimer struct {
	Timer Timer
}

// Texture names used for sprites.
const (
	TextureBucket   = "bucket"
	TextureRaindrop = "droplet"
	TextureStone    = "stone"
	TextureSponge   = "sponge"
)

// WaterColor is the fill colour of a water pool.
var WaterColor = color.RGBA{R: 0, G: 0, B: 128, A: 252}

// RegisterComponents registers every gameplay component type.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Droplet](registry)
	ecs.RegisterComponent[Knockback](registry)
	ecs.RegisterComponent[Bucket](registry)
	ecs.RegisterComponent[WaterLevel](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[ActionState](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[DropTimer](registry)
	ecs.RegisterComponent[SoundBank](registry)
}
