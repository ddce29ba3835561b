package drop

import "github.com/plus3/drop/ecs"

type controlledBucket struct {
	*Bucket
	*Velocity
	*ActionState
}

// BucketControlSystem turns Left and Right press and release edges into horizontal
// velocity impulses. Holding a direction keeps its impulse applied until release.
type BucketControlSystem struct {
	Buckets ecs.Query[controlledBucket]

	Rules Rules
}

func (s *BucketControlSystem) Execute(frame *ecs.UpdateFrame) {
	for b := range s.Buckets.Values() {
		ApplyInput(b.ActionState, b.Velocity, s.Rules.MoveImpulse)
	}
}

// ApplyInput applies one frame of action edges to v.
func ApplyInput(state *ActionState, v *Velocity, impulse float64) {
	if state.JustPressed(ActionLeft) {
		v.X -= impulse
	} else if state.JustReleased(ActionLeft) {
		v.X += impulse
	}

	if state.JustPressed(ActionRight) {
		v.X += impulse
	} else if state.JustReleased(ActionRight) {
		v.X -= impulse
	}
}
