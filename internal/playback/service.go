// Package playback keeps the client-side mirror of the playback engine: the
// queue, the active track, progress and per-activation play registration.
package playback

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/wavesmobile/internal/engine"
	"github.com/llehouerou/wavesmobile/internal/palette"
	"github.com/llehouerou/wavesmobile/internal/playlist"
)

var (
	// ErrNoSavedSession is returned by RestoreSavedQueue when nothing was persisted.
	ErrNoSavedSession = errors.New("no saved session")
	// ErrInvalidIndex is returned when a queue index is out of range. No engine
	// command is sent.
	ErrInvalidIndex = errors.New("invalid queue index")
	// ErrInvalidRating is returned for ratings outside 0-5 or not in half steps.
	ErrInvalidRating = errors.New("invalid rating")
	// ErrTrackNotQueued is returned when a track id is not part of the queue.
	ErrTrackNotQueued = errors.New("track not in queue")
	// ErrStaleReorder is returned when the queue changed during a drag.
	ErrStaleReorder = errors.New("queue changed during reorder")
)

// DefaultPlayThreshold is the position after which an activation counts as a play.
const DefaultPlayThreshold = 10 * time.Second

// Service defines the playback store contract. It is the only sanctioned way
// for presentation code to mutate playback state.
type Service interface {
	// Queue replacement
	LoadQueue(ctx context.Context, current playlist.Track, upcoming []playlist.Track) error
	RestoreSavedQueue(ctx context.Context) error

	// Playback control, passed through to the engine
	TogglePlayPause(ctx context.Context) error
	SeekTo(ctx context.Context, position time.Duration) error
	SkipToIndex(ctx context.Context, index int) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error

	// Engagement
	SetRating(ctx context.Context, trackID int64, rating float64) error

	// Queue reordering
	Move(ctx context.Context, from, to int) error
	BeginReorder(kind playlist.WindowKind, pos int) (*Reorder, error)
	ReorderUpNext(ctx context.Context, from, to int) error
	ReorderBackTo(ctx context.Context, from, to int) error

	// Queries
	UpNext() playlist.Window
	BackTo() playlist.Window
	Snapshot() Snapshot

	// Run consumes engine events until ctx is done or the engine closes its stream.
	Run(ctx context.Context) error

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// Progress mirrors the engine's last reported progress.
type Progress struct {
	Position time.Duration
	Buffered time.Duration
	Duration time.Duration
}

// Fraction returns Position/Duration in [0, 1], or 0 when the duration is unknown.
func (p Progress) Fraction() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return min(max(float64(p.Position)/float64(p.Duration), 0), 1)
}

// Snapshot is a point-in-time copy of the mirror. It shares no memory with the store.
type Snapshot struct {
	Current    *playlist.Track
	Index      int
	Queue      []playlist.Track
	UpNext     playlist.Window
	BackTo     playlist.Window
	Progress   Progress
	State      engine.State
	Registered bool
	Palette    palette.Palette
	Accent     palette.Color // zero when the palette is empty
}

// Option configures a Service.
type Option func(*serviceImpl)

// WithMediaURL sets the base URL relative track paths are resolved against.
func WithMediaURL(base string) Option {
	return func(s *serviceImpl) {
		s.mediaURL = base
	}
}

// WithWindowSize sets the size of the Up Next and Back To windows.
func WithWindowSize(n int) Option {
	return func(s *serviceImpl) {
		if n > 0 {
			s.windowSize = n
		}
	}
}

// WithPlayThreshold sets the position after which a play is registered.
func WithPlayThreshold(d time.Duration) Option {
	return func(s *serviceImpl) {
		if d > 0 {
			s.threshold = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *serviceImpl) {
		s.log = log
	}
}

// WithSyncTimeout bounds each best-effort remote call.
func WithSyncTimeout(d time.Duration) Option {
	return func(s *serviceImpl) {
		s.syncTimeout = d
	}
}

// WithClock overrides time.Now for activation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) {
		if now != nil {
			s.now = now
		}
	}
}
