package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/drop/internal/drop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(defaultYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultRulesRoundTrip(t *testing.T) {
	assert.Equal(t, drop.DefaultRules(), Default().Rules())
	assert.Equal(t, drop.DefaultSoundBank(), Default().SoundBank())
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", "spawner:\n  interval: 1500ms\nwater:\n  max: 100\n")

	cfg, err := load(path, "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Spawner.Interval)
	assert.Equal(t, 100, cfg.Water.Max)
	// untouched sections keep their defaults
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 200*time.Millisecond, cfg.Physics.KnockbackCooldown)
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := load(filepath.Join(dir, "missing.yaml"), "", "", nil)
	assert.ErrorContains(t, err, "failed to read")

	bad := writeFile(t, dir, "bad.yaml", "window: [not, a, map")
	_, err = load(bad, "", "", nil)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadSearchOrder(t *testing.T) {
	dir := t.TempDir()
	user := writeFile(t, dir, "user.yaml", "window:\n  title: user\n")
	local := writeFile(t, dir, "local.yaml", "window:\n  title: local\n")
	broken := writeFile(t, dir, "broken.yaml", "window: [")

	cfg, err := load("", user, local, nil)
	require.NoError(t, err)
	assert.Equal(t, "user", cfg.Window.Title)

	cfg, err = load("", filepath.Join(dir, "nope.yaml"), local, nil)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Window.Title)

	cfg, err = load("", broken, filepath.Join(dir, "nope.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Drop", cfg.Window.Title)
}

func TestLoadWarnsAboutBrokenFallback(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.yaml", "window: [")
	local := writeFile(t, dir, "local.yaml", "window:\n  title: local\n")

	var logs bytes.Buffer
	cfg, err := load("", broken, local, log.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Window.Title)
	assert.Contains(t, logs.String(), "could not parse config")
	assert.Contains(t, logs.String(), broken)

	logs.Reset()
	_, err = load("", filepath.Join(dir, "nope.yaml"), local, log.New(&logs))
	require.NoError(t, err)
	assert.Empty(t, logs.String(), "a missing file is not worth a warning")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Audio.MusicVolume = 2
	cfg.Controls.Left = nil

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "window size")
	assert.ErrorContains(t, err, "music volume")
	assert.ErrorContains(t, err, "binding")

	cfg = Default()
	cfg.Water.Max = 0
	assert.Error(t, cfg.Validate())
}
