package drop

// Action is a logical input the bucket responds to.
type Action uint8

const (
	ActionLeft Action = iota
	ActionRight
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	}
	return "unknown"
}

// Actions lists every logical action in application order.
var Actions = [...]Action{ActionLeft, ActionRight}

type buttonState struct {
	pressed      bool
	justPressed  bool
	justReleased bool
}

// ActionState holds the per-frame press state of every action. Whatever reads raw devices
// calls Set once per action per frame; the edges then describe the change from the previous
// frame.
type ActionState struct {
	buttons [actionCount]buttonState
}

// Set records whether the action is held this frame.
func (s *ActionState) Set(action Action, held bool) {
	b := &s.buttons[action]
	b.justPressed = held && !b.pressed
	b.justReleased = !held && b.pressed
	b.pressed = held
}

func (s *ActionState) Pressed(action Action) bool {
	return s.buttons[action].pressed
}

func (s *ActionState) JustPressed(action Action) bool {
	return s.buttons[action].justPressed
}

func (s *ActionState) JustReleased(action Action) bool {
	return s.buttons[action].justReleased
}
