package emulator

// Status represents the status of the emulator's
// CPU. It can be one of the following:
//
//   - Running
//   - Paused
//   - Halted
//   - Errored
type Status int

const (
	// Running represents the status of the
	// CPU when it is running.
	Running Status = iota
	// Paused represents the status of the CPU when
	// execution has been suspended by the host.
	Paused
	// Halted represents the status of the
	// CPU when it has been closed.
	Halted
	// Errored represents the status of the
	// CPU when it has encountered a fatal
	// runtime error.
	Errored
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Halted:
		return "Halted"
	case Errored:
		return "Errored"
	default:
		return "Unknown"
	}
}
