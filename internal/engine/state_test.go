package engine

import "testing"

func TestState_Classification(t *testing.T) {
	tests := []struct {
		state     State
		name      string
		active    bool
		resumable bool
	}{
		{StateNone, "None", false, false},
		{StateReady, "Ready", false, true},
		{StateLoading, "Loading", true, false},
		{StateBuffering, "Buffering", true, false},
		{StatePlaying, "Playing", true, false},
		{StatePaused, "Paused", false, true},
		{StateStopped, "Stopped", false, true},
		{StateEnded, "Ended", false, true},
		{StateError, "Error", false, false},
		{State(42), "Unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.state.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
			if got := tt.state.Resumable(); got != tt.resumable {
				t.Errorf("Resumable() = %v, want %v", got, tt.resumable)
			}
		})
	}
}
