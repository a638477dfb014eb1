package playback

import (
	"context"
	"fmt"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

// Reorder is a drag in progress over one of the queue windows. The absolute
// index of the dragged track is captured when the drag starts, so dropping it
// never depends on looking the track up again.
type Reorder struct {
	s       *serviceImpl
	window  playlist.Window
	from    int // absolute
	trackID int64
	version uint64
}

// BeginReorder starts dragging the track at position pos of the Up Next
// (playlist.Forward) or Back To (playlist.Backward) window.
func (s *serviceImpl) BeginReorder(kind playlist.WindowKind, pos int) (*Reorder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := s.queue.UpNext(s.windowSize)
	if kind == playlist.Backward {
		w = s.queue.BackTo(s.windowSize)
	}
	from, ok := w.Absolute(pos)
	if !ok {
		return nil, fmt.Errorf("%w: window position %d of %d", ErrInvalidIndex, pos, w.Len())
	}
	return &Reorder{
		s:       s,
		window:  w,
		from:    from,
		trackID: w.Tracks[pos].ID,
		version: s.version,
	}, nil
}

// From returns the absolute queue index captured at drag start.
func (r *Reorder) From() int {
	return r.from
}

// Drop moves the dragged track to window position to with a single engine
// move. It fails closed with ErrStaleReorder if the queue changed since the
// drag started.
func (r *Reorder) Drop(ctx context.Context, to int) error {
	dest, ok := r.window.Absolute(to)
	if !ok {
		return fmt.Errorf("%w: window position %d of %d", ErrInvalidIndex, to, r.window.Len())
	}

	if err := r.s.move(ctx, r.from, dest, &r.version); err != nil {
		return fmt.Errorf("drop track %d: %w", r.trackID, err)
	}
	return nil
}

// ReorderUpNext moves the Up Next item at window position from to position to.
func (s *serviceImpl) ReorderUpNext(ctx context.Context, from, to int) error {
	r, err := s.BeginReorder(playlist.Forward, from)
	if err != nil {
		return err
	}
	return r.Drop(ctx, to)
}

// ReorderBackTo moves the Back To item at window position from to position to.
func (s *serviceImpl) ReorderBackTo(ctx context.Context, from, to int) error {
	r, err := s.BeginReorder(playlist.Backward, from)
	if err != nil {
		return err
	}
	return r.Drop(ctx, to)
}
