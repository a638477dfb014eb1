package playback

import (
	"context"
	"fmt"

	"github.com/llehouerou/wavesmobile/internal/engine"
	"github.com/llehouerou/wavesmobile/internal/errmsg"
	"github.com/llehouerou/wavesmobile/internal/playlist"
)

// Run is the single consumer of the engine event stream. Events are applied
// one at a time in arrival order. It returns nil when the stream closes and
// ctx.Err() when ctx is done.
func (s *serviceImpl) Run(ctx context.Context) error {
	events := s.eng.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.handle(ctx, ev)
		}
	}
}

func (s *serviceImpl) handle(ctx context.Context, ev engine.Event) {
	switch e := ev.(type) {
	case engine.ActiveTrackChanged:
		s.handleActiveTrackChanged(ctx, e)
	case engine.ProgressUpdated:
		s.handleProgress(ctx, e)
	case engine.PlaybackStateChanged:
		s.handleState(e)
	}
}

// handleActiveTrackChanged re-reads the queue from the engine. A new
// activation resets progress and re-arms play registration.
func (s *serviceImpl) handleActiveTrackChanged(ctx context.Context, e engine.ActiveTrackChanged) {
	tracks, err := s.eng.Queue(ctx)
	if err != nil {
		s.reportError(errmsg.OpQueueRefresh, 0, fmt.Errorf("read queue: %w", err))
		return
	}
	index, err := s.eng.ActiveTrackIndex(ctx)
	if err != nil {
		s.reportError(errmsg.OpQueueRefresh, 0, fmt.Errorf("read active index: %w", err))
		return
	}

	s.mu.Lock()
	tc := TrackChange{Previous: s.currentLocked(), PreviousIndex: e.LastIndex}
	s.queue.Replace(index, tracks...)
	s.version++
	s.registered = false
	s.progress = Progress{}
	if cur := s.queue.Current(); cur != nil {
		cur.LastPlayed = s.now()
		s.progress.Duration = cur.Duration
	}
	tc.Current = s.currentLocked()
	tc.Index = s.queue.CurrentIndex()
	qc := QueueChange{Tracks: s.queue.Tracks(), Index: tc.Index}
	s.mu.Unlock()

	s.log.Debug().Int("index", tc.Index).Int("last_index", e.LastIndex).Msg("active track changed")
	s.notifyReplace(tc, qc)
}

// handleProgress mirrors progress and registers the play once per activation.
// Progress for a track other than the mirrored active one is stale and dropped.
func (s *serviceImpl) handleProgress(ctx context.Context, e engine.ProgressUpdated) {
	s.mu.Lock()
	index := s.queue.CurrentIndex()
	cur := s.queue.Current()
	if cur == nil || index != e.Index || cur.ID != e.TrackID {
		s.mu.Unlock()
		s.log.Debug().Int("index", e.Index).Int64("track_id", e.TrackID).Msg("stale progress dropped")
		return
	}
	s.progress = Progress{Position: e.Position, Buffered: e.Buffered, Duration: e.Duration}
	p := s.progress

	register := !s.registered && e.Position >= s.threshold
	var track playlist.Track
	if register {
		s.registered = true
		cur.PlayCount++
		track = *cur
	}
	s.mu.Unlock()

	s.broadcast(func(sub *Subscription) { sub.sendProgress(ProgressChange{Progress: p}) })
	if !register {
		return
	}

	count := track.PlayCount
	if err := s.eng.UpdateMetadataForTrack(ctx, index, engine.MetadataPatch{PlayCount: &count}); err != nil {
		s.log.Debug().Err(err).Int64("track_id", track.ID).Msg("play count not mirrored to engine")
	}
	s.sync.PlayCount(ctx, track)
	s.broadcast(func(sub *Subscription) {
		sub.sendPlay(PlayRegistered{TrackID: track.ID, PlayCount: count})
	})
}

func (s *serviceImpl) handleState(e engine.PlaybackStateChanged) {
	s.mu.Lock()
	sc := StateChange{Previous: s.state, Current: e.State}
	s.state = e.State
	s.mu.Unlock()

	if sc.Previous == sc.Current {
		return
	}
	s.broadcast(func(sub *Subscription) { sub.sendState(sc) })
}

func (s *serviceImpl) reportError(op errmsg.Op, trackID int64, err error) {
	s.log.Warn().Err(err).Str("op", string(op)).Msg("engine event not applied")
	s.broadcast(func(sub *Subscription) {
		sub.sendError(ErrorEvent{Operation: op, TrackID: trackID, Err: err})
	})
}
