package ecs

// UpdateFrame carries per-frame context into systems: the elapsed time
// since the previous frame, the command buffer for deferred structural
// changes, and the storage for read access.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
