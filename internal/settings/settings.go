// Package settings persists user preferences across sessions through gdata.
package settings

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the user-adjustable preferences.
type Settings struct {
	MusicVolume  float64 `yaml:"musicVolume"`
	SoundVolume  float64 `yaml:"soundVolume"`
	MusicEnabled bool    `yaml:"musicEnabled"`
	SoundEnabled bool    `yaml:"soundEnabled"`
	DebugOverlay bool    `yaml:"debugOverlay"`
}

// Defaults returns the settings of a fresh install.
func Defaults() Settings {
	return Settings{
		MusicVolume:  1,
		SoundVolume:  1,
		MusicEnabled: true,
		SoundEnabled: true,
	}
}

// Muted reports whether both music and sound effects are off.
func (s Settings) Muted() bool {
	return !s.MusicEnabled && !s.SoundEnabled
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// Manager loads and saves Settings. A nil gdata manager runs in degraded in-memory mode:
// changes apply for the session but are not persisted.
type Manager struct {
	data     *gdata.Manager
	settings Settings
	logger   *log.Logger
}

// Open opens the per-user data store for appName. If it cannot be opened the manager
// starts in degraded mode and the error is logged.
func Open(appName string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("settings storage unavailable, changes will not persist", "error", err)
		data = nil
	}
	return NewManager(data, logger)
}

// NewManager wraps an opened gdata manager and loads the stored settings, falling back to
// defaults.
func NewManager(data *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{
		data:     data,
		settings: Defaults(),
		logger:   logger,
	}
	if err := m.Load(); err != nil {
		logger.Warn("failed to load settings, using defaults", "error", err)
	}
	return m
}

// Persistent reports whether Save writes anywhere.
func (m *Manager) Persistent() bool {
	return m.data != nil
}

// Load replaces the current settings with the stored ones.
func (m *Manager) Load() error {
	if m.data == nil || !m.data.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = Defaults()
		return nil
	}

	raw, err := m.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = Defaults()
		return fmt.Errorf("settings: failed to load: %w", err)
	}

	loaded := Defaults()
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		m.settings = Defaults()
		return fmt.Errorf("settings: failed to unmarshal: %w", err)
	}

	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	m.settings = loaded
	return nil
}

// Save writes the current settings.
func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}

	raw, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: failed to marshal: %w", err)
	}
	if err := m.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("settings: failed to save: %w", err)
	}
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	return m.settings
}

func (m *Manager) SetMusicVolume(volume float64) {
	m.settings.MusicVolume = clampVolume(volume)
}

func (m *Manager) SetSoundVolume(volume float64) {
	m.settings.SoundVolume = clampVolume(volume)
}

// SetDebugOverlay records whether the next launch opens the debug overlay and persists it.
func (m *Manager) SetDebugOverlay(enabled bool) {
	m.settings.DebugOverlay = enabled
	if err := m.Save(); err != nil {
		m.logger.Warn("could not persist debug overlay toggle", "error", err)
	}
}

// ToggleMute switches music and sound effects together and persists the result. It
// returns the new muted state.
func (m *Manager) ToggleMute() bool {
	muted := !m.settings.Muted()
	m.settings.MusicEnabled = !muted
	m.settings.SoundEnabled = !muted
	if err := m.Save(); err != nil {
		m.logger.Warn("could not persist mute toggle", "error", err)
	}
	return muted
}

func clampVolume(volume float64) float64 {
	return min(max(volume, 0), 1)
}
