package remote

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/playlist"
)

// DefaultTimeout bounds a single best-effort call.
const DefaultTimeout = 15 * time.Second

// Syncer persists engagement changes somewhere outside the device.
type Syncer interface {
	PersistRating(ctx context.Context, t playlist.Track, rating float64) error
	PersistPlayCount(ctx context.Context, t playlist.Track) error
}

// Nop is a Syncer that does nothing.
type Nop struct{}

func (Nop) PersistRating(context.Context, playlist.Track, float64) error { return nil }

func (Nop) PersistPlayCount(context.Context, playlist.Track) error { return nil }

// Fanout forwards every call to each syncer in order and joins their errors.
type Fanout []Syncer

func (f Fanout) PersistRating(ctx context.Context, t playlist.Track, rating float64) error {
	var errs []error
	for _, s := range f {
		errs = append(errs, s.PersistRating(ctx, t, rating))
	}
	return errors.Join(errs...)
}

func (f Fanout) PersistPlayCount(ctx context.Context, t playlist.Track) error {
	var errs []error
	for _, s := range f {
		errs = append(errs, s.PersistPlayCount(ctx, t))
	}
	return errors.Join(errs...)
}

// BestEffort dispatches Syncer calls in the background. Calls are never
// retried; failures are logged and otherwise dropped.
type BestEffort struct {
	syncer  Syncer
	log     zerolog.Logger
	timeout time.Duration

	mu     sync.Mutex // guards closed and wg.Go against Close
	closed bool
	wg     sync.WaitGroup
}

// NewBestEffort wraps s. A non-positive timeout selects DefaultTimeout.
func NewBestEffort(s Syncer, log zerolog.Logger, timeout time.Duration) *BestEffort {
	if s == nil {
		s = Nop{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BestEffort{syncer: s, log: log, timeout: timeout}
}

// Rating persists a rating without waiting for the result.
func (b *BestEffort) Rating(ctx context.Context, t playlist.Track, rating float64) {
	b.dispatch(ctx, errmsg.OpRatingSync, t, func(ctx context.Context) error {
		return b.syncer.PersistRating(ctx, t, rating)
	})
}

// PlayCount persists a play-count increment without waiting for the result.
func (b *BestEffort) PlayCount(ctx context.Context, t playlist.Track) {
	b.dispatch(ctx, errmsg.OpPlayCountSync, t, func(ctx context.Context) error {
		return b.syncer.PersistPlayCount(ctx, t)
	})
}

// Flush waits for in-flight calls to finish.
func (b *BestEffort) Flush() {
	b.wg.Wait()
}

// Close refuses further calls and waits for in-flight ones.
func (b *BestEffort) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.wg.Wait()
}

func (b *BestEffort) dispatch(ctx context.Context, op errmsg.Op, t playlist.Track, fn func(context.Context) error) {
	// Detached: the caller moving on must not cancel the call.
	ctx = context.WithoutCancel(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		b.log.Debug().Str("op", string(op)).Int64("track_id", t.ID).Msg("remote sync dropped after close")
		return
	}
	b.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			b.log.Warn().Err(err).Str("op", string(op)).Int64("track_id", t.ID).Msg("remote sync failed")
			return
		}
		b.log.Debug().Str("op", string(op)).Int64("track_id", t.ID).Msg("remote sync done")
	})
}
