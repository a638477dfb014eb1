package lastfm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

type fakeScrobbler struct {
	authed    bool
	scrobbles []ScrobbleTrack
	loved     []string
	unloved   []string
	err       error
}

func (f *fakeScrobbler) IsAuthenticated() bool { return f.authed }

func (f *fakeScrobbler) Scrobble(t ScrobbleTrack) error {
	f.scrobbles = append(f.scrobbles, t)
	return f.err
}

func (f *fakeScrobbler) Love(_, title string) error {
	f.loved = append(f.loved, title)
	return f.err
}

func (f *fakeScrobbler) Unlove(_, title string) error {
	f.unloved = append(f.unloved, title)
	return f.err
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSyncer(f *fakeScrobbler) *Syncer {
	return &Syncer{client: f, now: func() time.Time { return fixedNow }}
}

func TestSyncer_PlayCountScrobbles(t *testing.T) {
	f := &fakeScrobbler{authed: true}
	s := newTestSyncer(f)
	started := fixedNow.Add(-time.Minute)

	err := s.PersistPlayCount(context.Background(), playlist.Track{
		Artist: "Miles Davis", Title: "So What", Album: "Kind of Blue",
		Duration: 9 * time.Minute, LastPlayed: started,
	})
	require.NoError(t, err)

	require.Len(t, f.scrobbles, 1)
	assert.Equal(t, ScrobbleTrack{
		Artist: "Miles Davis", Track: "So What", Album: "Kind of Blue",
		Duration: 9 * time.Minute, Timestamp: started,
	}, f.scrobbles[0])
}

func TestSyncer_PlayCountWithoutActivationTime(t *testing.T) {
	f := &fakeScrobbler{authed: true}
	s := newTestSyncer(f)

	require.NoError(t, s.PersistPlayCount(context.Background(), playlist.Track{Title: "x"}))

	require.Len(t, f.scrobbles, 1)
	assert.Equal(t, fixedNow, f.scrobbles[0].Timestamp)
}

func TestSyncer_RatingLovesAndUnloves(t *testing.T) {
	f := &fakeScrobbler{authed: true}
	s := newTestSyncer(f)

	require.NoError(t, s.PersistRating(context.Background(), playlist.Track{Title: "top"}, 5))
	require.NoError(t, s.PersistRating(context.Background(), playlist.Track{Title: "meh"}, 3.5))

	assert.Equal(t, []string{"top"}, f.loved)
	assert.Equal(t, []string{"meh"}, f.unloved)
}

func TestSyncer_NotAuthenticatedIsSilent(t *testing.T) {
	f := &fakeScrobbler{}
	s := newTestSyncer(f)

	require.NoError(t, s.PersistPlayCount(context.Background(), playlist.Track{}))
	require.NoError(t, s.PersistRating(context.Background(), playlist.Track{}, 5))

	assert.Empty(t, f.scrobbles)
	assert.Empty(t, f.loved)
}

func TestSyncer_PropagatesErrors(t *testing.T) {
	boom := errors.New("rate limited")
	s := newTestSyncer(&fakeScrobbler{authed: true, err: boom})

	assert.ErrorIs(t, s.PersistPlayCount(context.Background(), playlist.Track{}), boom)
}

func TestScrobbleParams(t *testing.T) {
	p := scrobbleParams(ScrobbleTrack{
		Artist: "A", Track: "T", Album: "Al", AlbumArtist: "A",
		Duration: 90 * time.Second, Timestamp: fixedNow,
	})

	assert.Equal(t, "A", p["artist"])
	assert.Equal(t, fixedNow.Unix(), p["timestamp"])
	assert.Equal(t, 90, p["duration"])
	assert.Equal(t, "Al", p["album"])
	_, hasAlbumArtist := p["albumArtist"]
	assert.False(t, hasAlbumArtist, "albumArtist equal to artist is omitted")
}

func TestClient_NotAuthenticated(t *testing.T) {
	c := New("key", "secret")

	assert.False(t, c.IsAuthenticated())
	assert.ErrorIs(t, c.Scrobble(ScrobbleTrack{}), ErrNotAuthenticated)
	assert.ErrorIs(t, c.Love("a", "b"), ErrNotAuthenticated)
	assert.ErrorIs(t, c.Unlove("a", "b"), ErrNotAuthenticated)

	c.SetSessionKey("sk")
	assert.True(t, c.IsAuthenticated())
	assert.Equal(t, "sk", c.SessionKey())
}

func TestClient_GetAuthURL(t *testing.T) {
	c := New("key123", "secret")

	assert.Equal(t, "https://www.last.fm/api/auth/?api_key=key123&token=tok", c.GetAuthURL("tok", ""))
	assert.Equal(t, "https://www.last.fm/api/auth/?api_key=key123&token=tok&cb=http://localhost:9847/callback",
		c.GetAuthURL("tok", "http://localhost:9847/callback"))
}
