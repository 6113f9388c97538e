package session

// State represents the lifecycle state of a workout session.
type State uint8

const (
	// StateIdle means no session is in progress.
	StateIdle State = 0

	// StateActive means a session is running and accumulating time.
	StateActive State = 1

	// StatePaused means a session is frozen; elapsed time and metrics do
	// not advance.
	StatePaused State = 2

	// StateEnded means the session was finalized into a WorkoutRecord.
	StateEnded State = 3
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateActive:
		return "ACTIVE"
	case StatePaused:
		return "PAUSED"
	case StateEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}
