package playlist

// WindowKind tells in which direction a window walks away from the active track.
type WindowKind int

const (
	// Forward windows list upcoming tracks in play order.
	Forward WindowKind = iota
	// Backward windows list already played tracks, most recent first.
	Backward
)

// DefaultWindowSize is the number of tracks shown ahead of and behind the
// active track.
const DefaultWindowSize = 10

// Window is a bounded, directional slice of the queue around the active track.
type Window struct {
	Kind   WindowKind
	Active int // active index of the queue the window was taken from
	Tracks []Track
}

// UpNext returns tracks[active+1 : active+1+n] in forward order.
func UpNext(tracks []Track, active, n int) Window {
	w := Window{Kind: Forward, Active: active}
	if n <= 0 || active < 0 || active >= len(tracks) {
		return w
	}
	start := active + 1
	end := min(start+n, len(tracks))
	w.Tracks = make([]Track, end-start)
	copy(w.Tracks, tracks[start:end])
	return w
}

// BackTo returns tracks[max(0, active-n) : active] reversed.
func BackTo(tracks []Track, active, n int) Window {
	w := Window{Kind: Backward, Active: active}
	if n <= 0 || active <= 0 || active >= len(tracks) {
		return w
	}
	start := max(0, active-n)
	w.Tracks = make([]Track, 0, active-start)
	for i := active - 1; i >= start; i-- {
		w.Tracks = append(w.Tracks, tracks[i])
	}
	return w
}

// Len returns the number of tracks in the window.
func (w Window) Len() int {
	return len(w.Tracks)
}

// Absolute maps a position inside the window to its index in the full queue.
// Returns false if pos is outside the window.
func (w Window) Absolute(pos int) (int, bool) {
	if pos < 0 || pos >= len(w.Tracks) {
		return -1, false
	}
	if w.Kind == Backward {
		return w.Active - 1 - pos, true
	}
	return w.Active + 1 + pos, true
}
