package client

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/ecs/debugui"
	"github.com/plus3/drop/internal/config"
	"github.com/plus3/drop/internal/drop"
)

const padPrefix = "pad:"

var padButtons = map[string]ebiten.StandardGamepadButton{
	"left":        ebiten.StandardGamepadButtonLeftLeft,
	"right":       ebiten.StandardGamepadButtonLeftRight,
	"up":          ebiten.StandardGamepadButtonLeftTop,
	"down":        ebiten.StandardGamepadButtonLeftBottom,
	"leftbumper":  ebiten.StandardGamepadButtonFrontTopLeft,
	"rightbumper": ebiten.StandardGamepadButtonFrontTopRight,
}

// Binding lists the keys and standard-layout gamepad buttons that trigger one action.
type Binding struct {
	Keys    []ebiten.Key
	Buttons []ebiten.StandardGamepadButton
}

// Bindings maps every action to its binding.
type Bindings [len(drop.Actions)]Binding

// ParseBindings reads key names ("ArrowLeft", "A") and gamepad names ("pad:left").
func ParseBindings(controls config.ControlsConfig) (Bindings, error) {
	var bindings Bindings
	for _, action := range drop.Actions {
		names := controls.Left
		if action == drop.ActionRight {
			names = controls.Right
		}
		for _, name := range names {
			if err := bindings[action].add(name); err != nil {
				return Bindings{}, fmt.Errorf("client: %s binding: %w", action, err)
			}
		}
	}
	return bindings, nil
}

func (b *Binding) add(name string) error {
	if pad, ok := strings.CutPrefix(name, padPrefix); ok {
		button, ok := padButtons[strings.ToLower(pad)]
		if !ok {
			return fmt.Errorf("unknown gamepad button %q", name)
		}
		b.Buttons = append(b.Buttons, button)
		return nil
	}

	var key ebiten.Key
	if err := key.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("unknown key %q: %w", name, err)
	}
	b.Keys = append(b.Keys, key)
	return nil
}

// Device reports raw button state.
type Device interface {
	KeyPressed(key ebiten.Key) bool
	ButtonPressed(button ebiten.StandardGamepadButton) bool
}

// EbitenDevice reads the keyboard and every connected standard-layout gamepad.
type EbitenDevice struct {
	gamepads []ebiten.GamepadID
}

func (d *EbitenDevice) KeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

func (d *EbitenDevice) ButtonPressed(button ebiten.StandardGamepadButton) bool {
	d.gamepads = ebiten.AppendGamepadIDs(d.gamepads[:0])
	for _, id := range d.gamepads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) && ebiten.IsStandardGamepadButtonPressed(id, button) {
			return true
		}
	}
	return false
}

// InputSystem refreshes the bucket's ActionState from a device. Keyboard input is ignored
// while the debug overlay has keyboard focus.
type InputSystem struct {
	Buckets ecs.Query[struct {
		*drop.Bucket
		*drop.ActionState
	}]
	Imgui ecs.Singleton[debugui.ImguiInputState]

	Bindings Bindings
	Device   Device
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	keyboard := true
	if state := s.Imgui.Get(); state != nil && state.WantCaptureKeyboard {
		keyboard = false
	}

	for bucket := range s.Buckets.Values() {
		for _, action := range drop.Actions {
			bucket.ActionState.Set(action, s.held(s.Bindings[action], keyboard))
		}
	}
}

func (s *InputSystem) held(binding Binding, keyboard bool) bool {
	if keyboard {
		for _, key := range binding.Keys {
			if s.Device.KeyPressed(key) {
				return true
			}
		}
	}
	for _, button := range binding.Buttons {
		if s.Device.ButtonPressed(button) {
			return true
		}
	}
	return false
}
