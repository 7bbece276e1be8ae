package ecs

// System is one step of a frame. Query and Singleton fields of a system
// struct are initialised by the Scheduler; any other fields persist
// between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Condition gates a system. It is evaluated every frame before the system
// would run; the system is skipped when it returns false.
type Condition func(storage *Storage) bool

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}

// UpdateFrame is shared by every system run during one Scheduler.Once.
type UpdateFrame struct {
	// DeltaTime is the frame time in seconds.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  &Commands{},
		Storage:   storage,
	}
}
