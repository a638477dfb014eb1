package playlist

// PlayingQueue wraps a Playlist with the active track position.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing is active
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the active track, or nil if none.
func (q *PlayingQueue) Current() *Track {
	if q.currentIndex < 0 || q.currentIndex >= q.playlist.Len() {
		return nil
	}
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the active track (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// HasNext returns true if there's a track after the active one.
func (q *PlayingQueue) HasNext() bool {
	return q.currentIndex < q.playlist.Len()-1
}

// HasPrevious returns true if there's a track before the active one.
func (q *PlayingQueue) HasPrevious() bool {
	return q.currentIndex > 0
}

// JumpTo sets the active index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *PlayingQueue) JumpTo(index int) *Track {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Replace clears the queue, adds tracks and activates index.
// An out-of-range index is clamped; an empty track list leaves the queue empty.
func (q *PlayingQueue) Replace(index int, tracks ...Track) *Track {
	q.playlist.Clear()
	q.currentIndex = -1
	if len(tracks) == 0 {
		return nil
	}
	q.playlist.Add(tracks...)
	q.currentIndex = min(max(index, 0), len(tracks)-1)
	return q.Current()
}

// Move moves a track and keeps the active index on the same track.
func (q *PlayingQueue) Move(from, to int) bool {
	if !q.playlist.Move(from, to) {
		return false
	}
	switch {
	case q.currentIndex == from:
		q.currentIndex = to
	case from < q.currentIndex && to >= q.currentIndex:
		q.currentIndex--
	case from > q.currentIndex && to <= q.currentIndex:
		q.currentIndex++
	}
	return true
}

// Track returns the track at index, or nil if out of bounds.
// The returned pointer aliases the queue storage.
func (q *PlayingQueue) Track(index int) *Track {
	return q.playlist.Track(index)
}

// IndexOf returns the index of the track with the given id, or -1.
func (q *PlayingQueue) IndexOf(id int64) int {
	return q.playlist.IndexOf(id)
}

// Clear removes all tracks and resets the active index.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Tracks returns all tracks in the queue.
func (q *PlayingQueue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}

// UpNext returns the forward window of at most n tracks after the active one.
func (q *PlayingQueue) UpNext(n int) Window {
	return UpNext(q.playlist.tracks, q.currentIndex, n)
}

// BackTo returns the backward window of at most n tracks before the active one.
func (q *PlayingQueue) BackTo(n int) Window {
	return BackTo(q.playlist.tracks, q.currentIndex, n)
}
