// internal/playback/service_impl.go
package playback

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/wavesmobile/internal/engine"
	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/palette"
	"github.com/llehouerou/wavesmobile/internal/playlist"
	"github.com/llehouerou/wavesmobile/internal/remote"
	"github.com/llehouerou/wavesmobile/internal/state"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	eng  engine.Engine
	kv   state.Interface
	sync *remote.BestEffort
	log  zerolog.Logger
	now  func() time.Time

	mediaURL    string
	windowSize  int
	threshold   time.Duration
	syncTimeout time.Duration

	// mirror
	queue      *playlist.PlayingQueue
	version    uint64 // bumped on every queue change
	progress   Progress
	state      engine.State
	registered bool

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// New creates a playback store mirroring eng. The queue snapshot is persisted
// in kv; rating and play-count changes are forwarded to syncer (nil disables).
func New(eng engine.Engine, kv state.Interface, syncer remote.Syncer, opts ...Option) Service {
	s := &serviceImpl{
		eng:        eng,
		kv:         kv,
		log:        zerolog.Nop(),
		now:        time.Now,
		windowSize: playlist.DefaultWindowSize,
		threshold:  DefaultPlayThreshold,
		queue:      playlist.NewQueue(),
		state:      engine.StateNone,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "playback").Logger()
	s.sync = remote.NewBestEffort(syncer, s.log, s.syncTimeout)
	return s
}

// LoadQueue resolves media locators, replaces the mirror, persists
// [current, upcoming...] and starts playback of current.
func (s *serviceImpl) LoadQueue(ctx context.Context, current playlist.Track, upcoming []playlist.Track) error {
	tracks := make([]playlist.Track, 0, 1+len(upcoming))
	tracks = append(tracks, current)
	tracks = append(tracks, upcoming...)
	for i := range tracks {
		resolveTrack(&tracks[i], s.mediaURL)
		if _, err := palette.Parse(tracks[i].Palette); err != nil {
			s.log.Debug().Err(err).Int64("track_id", tracks[i].ID).Msg("palette ignored")
		}
	}

	tc, qc := s.replaceMirror(tracks)
	s.persist(tracks)
	s.notifyReplace(tc, qc)

	if err := s.eng.SetQueue(ctx, tracks); err != nil {
		return fmt.Errorf("set engine queue: %w", err)
	}
	if err := s.eng.Play(ctx); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// RestoreSavedQueue re-issues the persisted snapshot to the engine without
// starting playback. A missing or unreadable snapshot yields ErrNoSavedSession
// and leaves the engine untouched.
func (s *serviceImpl) RestoreSavedQueue(ctx context.Context) error {
	tracks, err := state.LoadQueue(s.kv)
	if err != nil {
		s.log.Warn().Err(err).Str("op", string(errmsg.OpQueueRestore)).Msg("saved queue unreadable")
		return ErrNoSavedSession
	}
	if len(tracks) == 0 {
		return ErrNoSavedSession
	}

	tc, qc := s.replaceMirror(tracks)
	s.notifyReplace(tc, qc)

	if err := s.eng.SetQueue(ctx, tracks); err != nil {
		return fmt.Errorf("set engine queue: %w", err)
	}
	return nil
}

func (s *serviceImpl) replaceMirror(tracks []playlist.Track) (TrackChange, QueueChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tc := TrackChange{Previous: s.currentLocked(), PreviousIndex: s.queue.CurrentIndex()}
	s.queue.Replace(0, tracks...)
	s.version++
	s.registered = false
	s.progress = Progress{}
	tc.Current = s.currentLocked()
	tc.Index = s.queue.CurrentIndex()
	if tc.Current != nil {
		s.progress.Duration = tc.Current.Duration
	}
	return tc, QueueChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()}
}

// persist replaces the stored snapshot. Failures are logged only.
func (s *serviceImpl) persist(tracks []playlist.Track) {
	if err := state.SaveQueue(s.kv, tracks); err != nil {
		s.log.Warn().Err(err).Str("op", string(errmsg.OpQueueSave)).Msg("queue not persisted")
	}
}

// TogglePlayPause plays when the engine is paused, stopped, ready or ended,
// and pauses otherwise, buffering and loading included.
func (s *serviceImpl) TogglePlayPause(ctx context.Context) error {
	st, err := s.eng.PlaybackState(ctx)
	if err != nil {
		return fmt.Errorf("read playback state: %w", err)
	}
	if st.Resumable() {
		return s.eng.Play(ctx)
	}
	return s.eng.Pause(ctx)
}

func (s *serviceImpl) SeekTo(ctx context.Context, position time.Duration) error {
	if err := s.eng.SeekTo(ctx, position); err != nil {
		return err
	}

	s.mu.Lock()
	s.progress.Position = max(position, 0)
	if s.progress.Duration > 0 {
		s.progress.Position = min(s.progress.Position, s.progress.Duration)
	}
	p := s.progress
	s.mu.Unlock()

	s.broadcast(func(sub *Subscription) { sub.sendProgress(ProgressChange{Progress: p}) })
	return nil
}

// SkipToIndex is passed through; the engine rejects out-of-range indices.
func (s *serviceImpl) SkipToIndex(ctx context.Context, index int) error {
	return s.eng.Skip(ctx, index)
}

func (s *serviceImpl) Next(ctx context.Context) error {
	return s.eng.SkipToNext(ctx)
}

func (s *serviceImpl) Previous(ctx context.Context) error {
	return s.eng.SkipToPrevious(ctx)
}

// SetRating updates the engine metadata, the mirror and the saved queue, then
// persists the rating remotely in the background. It is never rolled back.
func (s *serviceImpl) SetRating(ctx context.Context, trackID int64, rating float64) error {
	if !validRating(rating) {
		return fmt.Errorf("%w: %v", ErrInvalidRating, rating)
	}

	s.mu.RLock()
	index := s.queue.IndexOf(trackID)
	s.mu.RUnlock()
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrTrackNotQueued, trackID)
	}

	if err := s.eng.UpdateMetadataForTrack(ctx, index, engine.MetadataPatch{Rating: &rating}); err != nil {
		return fmt.Errorf("update engine metadata: %w", err)
	}

	// Look the track up again: the queue may have moved while the engine answered.
	s.mu.Lock()
	t := s.queue.Track(s.queue.IndexOf(trackID))
	if t == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrTrackNotQueued, trackID)
	}
	t.Rating = rating
	track := *t
	saved := fromActive(s.queue.Tracks(), s.queue.CurrentIndex())
	s.mu.Unlock()

	s.persist(saved)
	s.sync.Rating(ctx, track, rating)
	s.broadcast(func(sub *Subscription) { sub.sendRating(RatingChange{TrackID: trackID, Rating: rating}) })
	return nil
}

func validRating(r float64) bool {
	if math.IsNaN(r) || r < 0 || r > 5 {
		return false
	}
	return r*2 == math.Trunc(r*2)
}

// Move moves the track at absolute index from to absolute index to. Invalid
// indices fail closed: no engine command is sent.
func (s *serviceImpl) Move(ctx context.Context, from, to int) error {
	return s.move(ctx, from, to, nil)
}

// move applies from -> to in the engine, then in the mirror. When pinned is
// set the queue must still be at that version or nothing is sent. If the
// mirror was refreshed while the engine answered, the refresh already holds
// the move and the mirror is re-read from the engine instead.
func (s *serviceImpl) move(ctx context.Context, from, to int, pinned *uint64) error {
	s.mu.RLock()
	n := s.queue.Len()
	version := s.version
	s.mu.RUnlock()
	if pinned != nil && *pinned != version {
		return fmt.Errorf("%w: move %d to %d", ErrStaleReorder, from, to)
	}
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d to %d in queue of %d", ErrInvalidIndex, from, to, n)
	}
	if from == to {
		return nil
	}

	if err := s.eng.Move(ctx, from, to); err != nil {
		return fmt.Errorf("move in engine: %w", err)
	}

	s.mu.Lock()
	if s.version != version {
		s.mu.Unlock()
		return s.resync(ctx)
	}
	if !s.queue.Move(from, to) {
		s.mu.Unlock()
		return fmt.Errorf("%w: move %d to %d", ErrInvalidIndex, from, to)
	}
	s.version++
	qc := QueueChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()}
	s.mu.Unlock()

	s.persist(fromActive(qc.Tracks, qc.Index))
	s.broadcast(func(sub *Subscription) { sub.sendQueue(qc) })
	return nil
}

// resync replaces the mirrored queue with the engine's. The active track is
// unchanged, so progress and play registration are kept.
func (s *serviceImpl) resync(ctx context.Context) error {
	tracks, err := s.eng.Queue(ctx)
	if err != nil {
		return fmt.Errorf("read queue: %w", err)
	}
	index, err := s.eng.ActiveTrackIndex(ctx)
	if err != nil {
		return fmt.Errorf("read active index: %w", err)
	}

	s.mu.Lock()
	prev := s.currentLocked()
	s.queue.Replace(index, tracks...)
	if cur := s.queue.Current(); cur != nil && prev != nil && cur.ID == prev.ID {
		cur.LastPlayed = prev.LastPlayed
	}
	s.version++
	qc := QueueChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()}
	s.mu.Unlock()

	s.log.Debug().Int("index", qc.Index).Msg("queue re-read after concurrent change")
	s.persist(fromActive(qc.Tracks, qc.Index))
	s.broadcast(func(sub *Subscription) { sub.sendQueue(qc) })
	return nil
}

// fromActive returns the part of the queue a restore starts from.
func fromActive(tracks []playlist.Track, active int) []playlist.Track {
	if active <= 0 {
		return tracks
	}
	return tracks[active:]
}

func (s *serviceImpl) UpNext() playlist.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.UpNext(s.windowSize)
}

func (s *serviceImpl) BackTo() playlist.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.BackTo(s.windowSize)
}

func (s *serviceImpl) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Current:    s.currentLocked(),
		Index:      s.queue.CurrentIndex(),
		Queue:      s.queue.Tracks(),
		UpNext:     s.queue.UpNext(s.windowSize),
		BackTo:     s.queue.BackTo(s.windowSize),
		Progress:   s.progress,
		State:      s.state,
		Registered: s.registered,
		Palette:    palette.Palette{},
	}
	if snap.Current != nil {
		snap.Palette = snap.Current.Colors()
		snap.Accent, _ = snap.Palette.Accent()
	}
	return snap
}

// currentLocked returns a copy of the active track. Must hold lock.
func (s *serviceImpl) currentLocked() *playlist.Track {
	t := s.queue.Current()
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// Subscribe returns a new subscription for receiving events.
func (s *serviceImpl) Subscribe() *Subscription {
	sub := newSubscription()
	s.subsMu.Lock()
	if s.closed {
		sub.close()
	} else {
		s.subs = append(s.subs, sub)
	}
	s.subsMu.Unlock()
	return sub
}

func (s *serviceImpl) broadcast(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

func (s *serviceImpl) notifyReplace(tc TrackChange, qc QueueChange) {
	s.broadcast(func(sub *Subscription) {
		sub.sendQueue(qc)
		sub.sendTrack(tc)
	})
}

// Close stops remote sync after in-flight calls finish, then signals
// subscribers. The engine is not owned by the store and stays open.
func (s *serviceImpl) Close() error {
	s.subsMu.Lock()
	if s.closed {
		s.subsMu.Unlock()
		return nil
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.subsMu.Unlock()

	s.sync.Close()
	for _, sub := range subs {
		sub.close()
	}
	return nil
}
