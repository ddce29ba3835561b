package sim

import (
	"math"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/internal/drop"
)

type falling struct {
	*drop.Droplet
	*drop.Position
}

type pilotedBucket struct {
	*drop.Bucket
	*drop.Position
	*drop.ActionState
}

// AutopilotSystem steers the bucket under the lowest raindrop and away from sponges and
// stones. It takes the place of the keyboard, so it only ever sets the ActionState.
type AutopilotSystem struct {
	Objects ecs.Query[falling]
	Buckets ecs.Query[pilotedBucket]

	// Deadzone is how close, horizontally, the bucket has to be to stop moving.
	Deadzone float64
}

func (s *AutopilotSystem) Execute(frame *ecs.UpdateFrame) {
	for bucket := range s.Buckets.Values() {
		dir := s.steer(bucket.Position)
		bucket.ActionState.Set(drop.ActionLeft, dir < 0)
		bucket.ActionState.Set(drop.ActionRight, dir > 0)
	}
}

// steer returns -1, 0 or 1.
func (s *AutopilotSystem) steer(bucket *drop.Position) int {
	var target *drop.Position
	for obj := range s.Objects.Values() {
		if obj.Droplet.Kind != drop.Raindrop || obj.Position.Y < bucket.Y {
			continue
		}
		if target == nil || obj.Position.Y < target.Y {
			target = obj.Position
		}
	}

	if target == nil {
		return s.dodge(bucket)
	}
	gap := target.X - bucket.X
	if math.Abs(gap) <= s.Deadzone {
		return 0
	}
	if gap < 0 {
		return -1
	}
	return 1
}

// dodge moves away from the nearest hazard directly overhead.
func (s *AutopilotSystem) dodge(bucket *drop.Position) int {
	for obj := range s.Objects.Values() {
		if obj.Droplet.Kind == drop.Raindrop || obj.Position.Y < bucket.Y {
			continue
		}
		gap := obj.Position.X - bucket.X
		if math.Abs(gap) > s.Deadzone*4 {
			continue
		}
		if gap > 0 {
			return -1
		}
		return 1
	}
	return 0
}
