package audio

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/plus3/drop/internal/drop"
)

// Synthesised cue lengths.
const (
	dropLength   = 120 * time.Millisecond
	splashLength = 260 * time.Millisecond
	tinkLength   = 180 * time.Millisecond
)

// decay fades a stream linearly to silence over total samples, after a short attack.
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func newDecay(s beep.Streamer, length, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, attack: rate.N(attack), total: rate.N(length)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if d.position >= d.total {
			return i, false
		}
		gain := float64(d.total-d.position) / float64(d.total)
		if d.position < d.attack {
			gain *= float64(d.position) / float64(d.attack)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// noise is white noise from a seeded source so synthesised cues are reproducible.
func noise(rng *rand.Rand) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
}

// chirp is a sine sweeping linearly from one frequency to another over length.
func chirp(from, to float64, length time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(length)
	phase := 0.0
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			if position >= total {
				return i, false
			}
			freq := from + (to-from)*float64(position)/float64(total)
			v := math.Sin(2 * math.Pi * phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += freq / float64(rate)
			phase -= math.Floor(phase)
			position++
		}
		return len(samples), true
	})
}

func tone(freq float64, length time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// Frequencies above Nyquist are rejected; fall back to silence of the same length.
		return beep.Silence(rate.N(length))
	}
	return beep.Take(rate.N(length), sine)
}

func withVolume(s beep.Streamer, level float64) beep.Streamer {
	if level <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(level)}
}

// Synthesize returns a short generated stand-in for a cue. It is used when the recorded
// asset for the cue cannot be loaded.
func Synthesize(cue drop.Cue, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case drop.CueDrop:
		return withVolume(newDecay(chirp(900, 380, dropLength, rate), dropLength, 4*time.Millisecond, rate), 0.6)
	case drop.CueSplash:
		rng := rand.New(rand.NewPCG(uint64(rate), 0x5eed))
		body := beep.Take(rate.N(splashLength), noise(rng))
		return withVolume(newDecay(body, splashLength, 10*time.Millisecond, rate), 0.35)
	case drop.CueTink:
		mixed := beep.Mix(
			withVolume(tone(2093, tinkLength, rate), 0.6),
			withVolume(tone(3136, tinkLength, rate), 0.25),
		)
		return newDecay(mixed, tinkLength, 2*time.Millisecond, rate)
	}
	return beep.Silence(0)
}

// RenderPCM drains s into interleaved 16-bit little-endian stereo PCM, the format ebiten
// audio players consume.
func RenderPCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = min(max(v, -1), 1)
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}
