// Package audio plays the game's sound cues and music on ebiten's audio context.
package audio

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/plus3/drop/internal/drop"
)

// Decode reads an encoded .wav, .mp3 or .ogg clip and returns 16-bit stereo PCM
// resampled to sampleRate. The format is picked from name's extension.
func Decode(name string, r io.Reader, sampleRate int) ([]byte, error) {
	var stream io.Reader
	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("audio: unsupported format %q", path.Ext(name))
	}
	if err != nil {
		return nil, fmt.Errorf("audio: failed to decode %s: %w", name, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("audio: failed to read %s: %w", name, err)
	}
	return pcm, nil
}

// Library decodes sound assets on first use and caches their PCM. Cue variants that
// fail to load are replaced by a synthesised clip.
type Library struct {
	fsys   fs.FS
	rate   int
	bank   drop.SoundBank
	clips  map[string][]byte
	logger *log.Logger
}

func NewLibrary(fsys fs.FS, sampleRate int, bank drop.SoundBank, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Library{
		fsys:   fsys,
		rate:   sampleRate,
		bank:   bank,
		clips:  make(map[string][]byte),
		logger: logger,
	}
}

func (l *Library) SampleRate() int {
	return l.rate
}

// Preload decodes every asset in the sound bank.
func (l *Library) Preload() {
	for _, name := range l.bank.All() {
		l.Clip(name)
	}
}

// Clip returns the PCM for name, or nil when the asset is unusable and has no synthesised
// stand-in (music).
func (l *Library) Clip(name string) []byte {
	if pcm, ok := l.clips[name]; ok {
		return pcm
	}

	pcm, err := l.load(name)
	if err != nil {
		cue, ok := l.cueOf(name)
		if !ok {
			l.logger.Warn("could not load sound", "name", name, "error", err)
			l.clips[name] = nil
			return nil
		}
		l.logger.Warn("could not load sound, using a synthesised cue", "name", name, "cue", cue, "error", err)
		pcm = RenderPCM(Synthesize(cue, beep.SampleRate(l.rate)))
	}
	l.clips[name] = pcm
	return pcm
}

func (l *Library) load(name string) ([]byte, error) {
	if l.fsys == nil {
		return nil, fmt.Errorf("audio: no asset directory")
	}
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("audio: failed to open %s: %w", name, err)
	}
	defer f.Close()
	return Decode(name, f, l.rate)
}

func (l *Library) cueOf(name string) (drop.Cue, bool) {
	for _, cue := range []drop.Cue{drop.CueDrop, drop.CueSplash, drop.CueTink} {
		for _, variant := range l.bank.Variants(cue) {
			if variant == name {
				return cue, true
			}
		}
	}
	return "", false
}
