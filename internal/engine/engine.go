// Package engine defines the contract of the external playback engine: the
// component that owns decoding, output, buffering and the authoritative queue.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

var (
	// ErrIndexOutOfRange is returned when a queue index does not exist.
	ErrIndexOutOfRange = errors.New("queue index out of range")
	// ErrEmptyQueue is returned when a command needs a loaded queue.
	ErrEmptyQueue = errors.New("queue is empty")
	// ErrClosed is returned once the engine has been shut down.
	ErrClosed = errors.New("engine closed")
)

// MetadataPatch lists the per-track fields that can be updated in place.
// Nil fields are left untouched.
type MetadataPatch struct {
	Rating    *float64
	PlayCount *int
}

// Engine defines the playback engine contract for dependency injection and testing.
type Engine interface {
	// Queue mutation
	SetQueue(ctx context.Context, tracks []playlist.Track) error
	Move(ctx context.Context, from, to int) error
	UpdateMetadataForTrack(ctx context.Context, index int, patch MetadataPatch) error

	// Playback control
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Stop(ctx context.Context) error
	SeekTo(ctx context.Context, position time.Duration) error
	Skip(ctx context.Context, index int) error
	SkipToNext(ctx context.Context) error
	SkipToPrevious(ctx context.Context) error

	// Queries
	Queue(ctx context.Context) ([]playlist.Track, error)
	ActiveTrackIndex(ctx context.Context) (int, error)
	ActiveTrack(ctx context.Context) (*playlist.Track, error)
	PlaybackState(ctx context.Context) (State, error)

	// Events returns the ordered event stream. It is closed when the engine shuts down.
	Events() <-chan Event
}
