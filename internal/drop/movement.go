package drop

import "github.com/plus3/drop/ecs"

type mover struct {
	*Position
	*Velocity
}

// MovementSystem integrates velocity into position and keeps movers inside the horizontal
// bounds.
type MovementSystem struct {
	Movers ecs.Query[mover]

	Rules Rules
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Movers.Values() {
		Integrate(m.Position, m.Velocity, frame.DeltaTime, s.Rules.MinX, s.Rules.MaxX)
	}
}

// Integrate advances p by v over dt seconds and clamps x to [minX, maxX].
func Integrate(p *Position, v *Velocity, dt, minX, maxX float64) {
	p.Y += v.Y * dt
	p.X = Clamp(p.X+v.X*dt, minX, maxX)
}
