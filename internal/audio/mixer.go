package audio

import (
	"bytes"
	"io"

	"github.com/charmbracelet/log"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/plus3/drop/internal/drop"
	"github.com/plus3/drop/internal/settings"
)

// Levels supplies the user's current volume and enable flags.
type Levels interface {
	Get() settings.Settings
}

// Mixer implements drop.Audio on ebiten's audio context. One-shot cues get a fresh
// player per request so they can overlap; a looped request replaces the current music.
type Mixer struct {
	context *ebitenaudio.Context
	library *Library
	levels  Levels
	logger  *log.Logger

	music      *ebitenaudio.Player
	musicLevel float64
}

var _ drop.Audio = (*Mixer)(nil)

// NewMixer reuses the process audio context when one exists, since ebiten allows only
// one.
func NewMixer(library *Library, levels Levels, logger *log.Logger) *Mixer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	context := ebitenaudio.CurrentContext()
	if context == nil {
		context = ebitenaudio.NewContext(library.SampleRate())
	}
	return &Mixer{
		context: context,
		library: library,
		levels:  levels,
		logger:  logger,
	}
}

func (m *Mixer) Play(name string, opts drop.PlayOptions) {
	if opts.Loop {
		m.playMusic(name, opts.Volume)
		return
	}

	current := m.levels.Get()
	if !current.SoundEnabled {
		return
	}
	pcm := m.library.Clip(name)
	if pcm == nil {
		return
	}
	player := m.context.NewPlayerFromBytes(pcm)
	player.SetVolume(opts.Volume * current.SoundVolume)
	player.Play()
}

func (m *Mixer) playMusic(name string, level float64) {
	pcm := m.library.Clip(name)
	if pcm == nil {
		return
	}
	if m.music != nil {
		if err := m.music.Close(); err != nil {
			m.logger.Warn("failed to close music player", "error", err)
		}
	}

	loop := ebitenaudio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := m.context.NewPlayer(loop)
	if err != nil {
		m.logger.Warn("failed to create music player", "name", name, "error", err)
		m.music = nil
		return
	}
	m.music = player
	m.musicLevel = level
	m.Refresh()
}

// Refresh applies the current settings to the music player. Call it after the settings
// change.
func (m *Mixer) Refresh() {
	if m.music == nil {
		return
	}
	current := m.levels.Get()
	m.music.SetVolume(m.musicLevel * current.MusicVolume)
	switch {
	case current.MusicEnabled && !m.music.IsPlaying():
		m.music.Play()
	case !current.MusicEnabled && m.music.IsPlaying():
		m.music.Pause()
	}
}

func (m *Mixer) Close() error {
	if m.music == nil {
		return nil
	}
	err := m.music.Close()
	m.music = nil
	return err
}
