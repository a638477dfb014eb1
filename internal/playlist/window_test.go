package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []Track {
	tracks := make([]Track, n)
	for i := range tracks {
		tracks[i] = Track{ID: int64(i)}
	}
	return tracks
}

func ids(tracks []Track) []int64 {
	out := make([]int64, len(tracks))
	for i, t := range tracks {
		out[i] = t.ID
	}
	return out
}

func TestUpNext_ShortQueue(t *testing.T) {
	w := UpNext(numbered(8), 5, DefaultWindowSize)

	assert.Equal(t, Forward, w.Kind)
	assert.Equal(t, []int64{6, 7}, ids(w.Tracks))
}

func TestUpNext_LongQueue(t *testing.T) {
	w := UpNext(numbered(20), 5, DefaultWindowSize)

	assert.Equal(t, []int64{6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, ids(w.Tracks))
}

func TestUpNext_ActiveIsLast(t *testing.T) {
	w := UpNext(numbered(3), 2, DefaultWindowSize)
	assert.Equal(t, 0, w.Len())
}

func TestUpNext_NoActive(t *testing.T) {
	w := UpNext(numbered(3), -1, DefaultWindowSize)
	assert.Equal(t, 0, w.Len())
}

func TestBackTo_Reversed(t *testing.T) {
	w := BackTo(numbered(8), 3, DefaultWindowSize)

	assert.Equal(t, Backward, w.Kind)
	assert.Equal(t, []int64{2, 1, 0}, ids(w.Tracks))
}

func TestBackTo_Bounded(t *testing.T) {
	w := BackTo(numbered(30), 15, DefaultWindowSize)

	assert.Equal(t, []int64{14, 13, 12, 11, 10, 9, 8, 7, 6, 5}, ids(w.Tracks))
}

func TestBackTo_FirstTrackActive(t *testing.T) {
	w := BackTo(numbered(5), 0, DefaultWindowSize)
	assert.Equal(t, 0, w.Len())
}

func TestWindow_DoesNotAliasQueue(t *testing.T) {
	tracks := numbered(4)
	w := UpNext(tracks, 0, DefaultWindowSize)

	w.Tracks[0].Title = "changed"

	assert.Empty(t, tracks[1].Title)
}

func TestWindow_Absolute(t *testing.T) {
	tracks := numbered(20)

	up := UpNext(tracks, 5, DefaultWindowSize)
	idx, ok := up.Absolute(0)
	require.True(t, ok)
	assert.Equal(t, 6, idx)
	idx, ok = up.Absolute(9)
	require.True(t, ok)
	assert.Equal(t, 15, idx)
	_, ok = up.Absolute(10)
	assert.False(t, ok)

	back := BackTo(tracks, 5, DefaultWindowSize)
	idx, ok = back.Absolute(0)
	require.True(t, ok)
	assert.Equal(t, 4, idx)
	idx, ok = back.Absolute(4)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	_, ok = back.Absolute(5)
	assert.False(t, ok)
	_, ok = back.Absolute(-1)
	assert.False(t, ok)
}

func TestWindow_AbsoluteMatchesTrack(t *testing.T) {
	tracks := numbered(12)
	for _, w := range []Window{UpNext(tracks, 4, 3), BackTo(tracks, 4, 3)} {
		for pos, tr := range w.Tracks {
			idx, ok := w.Absolute(pos)
			require.True(t, ok)
			assert.Equal(t, tr.ID, tracks[idx].ID)
		}
	}
}
