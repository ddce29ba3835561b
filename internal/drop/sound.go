package drop

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// PlayOptions tunes one playback request.
type PlayOptions struct {
	Volume float64
	Loop   bool
}

// Audio plays named sound assets. Implementations must not block the frame.
type Audio interface {
	Play(name string, opts PlayOptions)
}

// NopAudio discards every request.
type NopAudio struct{}

func (NopAudio) Play(string, PlayOptions) {}

// Cue groups sound variants played for one event.
type Cue string

const (
	CueDrop   Cue = "drop"
	CueSplash Cue = "splash"
	CueTink   Cue = "tink"
)

// SoundBank is a singleton listing the asset names of every cue's variants.
type SoundBank struct {
	Drop   []string
	Splash []string
	Tink   []string
	Music  string
}

// DefaultSoundBank returns the stock sound asset names.
func DefaultSoundBank() SoundBank {
	return SoundBank{
		Drop:   []string{"sfx/drop1.wav", "sfx/drop2.wav", "sfx/drop3.mp3"},
		Splash: []string{"sfx/splash1.mp3", "sfx/splash2.mp3", "sfx/splash3.mp3"},
		Tink:   []string{"sfx/tink1.mp3", "sfx/tink2.mp3", "sfx/tink3.mp3"},
		Music:  "ChocolateRain.mp3",
	}
}

// Variants returns the asset names registered for a cue.
func (b *SoundBank) Variants(cue Cue) []string {
	switch cue {
	case CueDrop:
		return b.Drop
	case CueSplash:
		return b.Splash
	case CueTink:
		return b.Tink
	}
	return nil
}

// All returns every asset name in the bank, music last.
func (b *SoundBank) All() []string {
	names := make([]string, 0, len(b.Drop)+len(b.Splash)+len(b.Tink)+1)
	names = append(names, b.Drop...)
	names = append(names, b.Splash...)
	names = append(names, b.Tink...)
	if b.Music != "" {
		names = append(names, b.Music)
	}
	return names
}

// playRandom plays one uniformly chosen variant of cue. An empty variant list is logged
// and skipped.
func playRandom(audio Audio, bank *SoundBank, cue Cue, rng *rand.Rand, logger *log.Logger) {
	var variants []string
	if bank != nil {
		variants = bank.Variants(cue)
	}
	if len(variants) == 0 {
		logger.Warn("could not choose a sound effect", "cue", cue)
		return
	}
	audio.Play(variants[rng.IntN(len(variants))], PlayOptions{Volume: 1})
}
