package ecs

// System is one stage of a frame. Exported Query and Singleton fields are wired to the
// scheduler's storage on Register; any other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
