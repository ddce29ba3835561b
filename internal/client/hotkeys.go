package client

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/ecs/debugui"
)

const (
	overlayKey = ebiten.KeyF3
	muteKey    = ebiten.KeyM
)

// Preferences is the settings surface the hotkeys drive.
type Preferences interface {
	ToggleMute() bool
	SetDebugOverlay(enabled bool)
}

// HotkeySystem handles the F3 overlay toggle and the M mute toggle. The overlay choice is
// remembered, so a game started without the overlay brings it up on the next launch.
type HotkeySystem struct {
	Overlay ecs.Singleton[debugui.Overlay]

	Settings Preferences
	// Changed runs after the mute state flipped, so audio can pick up the new settings.
	Changed func()
	Logger  *log.Logger
	// JustPressed defaults to inpututil.IsKeyJustPressed.
	JustPressed func(ebiten.Key) bool
}

func (s *HotkeySystem) Execute(frame *ecs.UpdateFrame) {
	justPressed := s.JustPressed
	if justPressed == nil {
		justPressed = inpututil.IsKeyJustPressed
	}

	if justPressed(overlayKey) {
		if overlay := s.Overlay.Get(); overlay != nil {
			overlay.Visible = !overlay.Visible
			if s.Settings != nil {
				s.Settings.SetDebugOverlay(overlay.Visible)
			}
			if s.Logger != nil {
				s.Logger.Info("debug overlay toggled", "visible", overlay.Visible)
			}
		}
	}

	if justPressed(muteKey) && s.Settings != nil {
		muted := s.Settings.ToggleMute()
		if s.Logger != nil {
			s.Logger.Info("audio toggled", "muted", muted)
		}
		if s.Changed != nil {
			s.Changed()
		}
	}
}
