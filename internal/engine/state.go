package engine

// State represents the engine playback state.
type State int

const (
	StateNone State = iota
	StateReady
	StateLoading
	StateBuffering
	StatePlaying
	StatePaused
	StateStopped
	StateEnded
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateReady:
		return "Ready"
	case StateLoading:
		return "Loading"
	case StateBuffering:
		return "Buffering"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateStopped:
		return "Stopped"
	case StateEnded:
		return "Ended"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded and playing or about to play.
func (s State) IsActive() bool {
	return s == StatePlaying || s == StateBuffering || s == StateLoading
}

// Resumable returns true for states in which a queue is loaded but no output
// is running, so a play command starts it. StateNone is not resumable: the
// engine has not reported anything yet.
func (s State) Resumable() bool {
	switch s {
	case StatePaused, StateStopped, StateReady, StateEnded:
		return true
	default:
		return false
	}
}
