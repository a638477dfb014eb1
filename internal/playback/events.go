package playback

import (
	"github.com/llehouerou/wavesmobile/internal/engine"
	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/playlist"
)

// StateChange is emitted when the mirrored engine state changes.
type StateChange struct {
	Previous engine.State
	Current  engine.State
}

// TrackChange is emitted when the active track of the mirror changes.
//
// Emitted by:
//   - LoadQueue/RestoreSavedQueue: the new queue's first track
//   - Run: every ActiveTrackChanged event from the engine
//
// NOT emitted by:
//   - Move/reorder: the active track stays the same, only QueueChange fires
//   - SetRating: see RatingChange
//
// Subscribers reset per-track views (progress, rating widget) on it.
type TrackChange struct {
	Previous      *playlist.Track
	Current       *playlist.Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or order change.
type QueueChange struct {
	Tracks []playlist.Track
	Index  int
}

// ProgressChange is emitted on every progress update and after a seek.
type ProgressChange struct {
	Progress Progress
}

// RatingChange is emitted after a rating was applied locally.
type RatingChange struct {
	TrackID int64
	Rating  float64
}

// PlayRegistered is emitted once per activation when the play threshold is crossed.
type PlayRegistered struct {
	TrackID   int64
	PlayCount int
}

// ErrorEvent is emitted when handling an engine event fails.
type ErrorEvent struct {
	Operation errmsg.Op
	TrackID   int64 // 0 if not track related
	Err       error
}
