package engine

import "time"

// Event is emitted by the engine on its ordered event stream.
type Event interface {
	isEvent()
}

// ActiveTrackChanged is emitted when a different queue item becomes active,
// including after SetQueue and automatic advance at end of track.
type ActiveTrackChanged struct {
	Index     int // -1 when the queue became empty
	LastIndex int // -1 when nothing was active before
}

// ProgressUpdated is emitted periodically while playing and after a seek.
// Index and TrackID identify the queue item the position belongs to, so a
// consumer can drop progress that arrives after the active track changed.
type ProgressUpdated struct {
	Index    int
	TrackID  int64
	Position time.Duration
	Buffered time.Duration
	Duration time.Duration
}

// PlaybackStateChanged is emitted when the playback state changes.
type PlaybackStateChanged struct {
	State State
}

func (ActiveTrackChanged) isEvent()   {}
func (ProgressUpdated) isEvent()      {}
func (PlaybackStateChanged) isEvent() {}
