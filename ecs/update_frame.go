package ecs

// UpdateFrame is handed to every system during one scheduler pass.
type UpdateFrame struct {
	// Index counts scheduler passes, starting at 1.
	Index     uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(index uint64, dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Index:     index,
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
