package lastfm

import (
	"context"
	"time"

	"github.com/llehouerou/wavesmobile/internal/playlist"
	"github.com/llehouerou/wavesmobile/internal/remote"
)

// LoveThreshold is the rating from which a track is loved on Last.fm.
const LoveThreshold = 5.0

// scrobbler is the part of Client the syncer needs.
type scrobbler interface {
	IsAuthenticated() bool
	Scrobble(track ScrobbleTrack) error
	Love(artist, title string) error
	Unlove(artist, title string) error
}

// Syncer mirrors plays as scrobbles and top ratings as loves.
type Syncer struct {
	client scrobbler
	now    func() time.Time
}

// NewSyncer wraps an authenticated client.
func NewSyncer(c *Client) *Syncer {
	return &Syncer{client: c, now: time.Now}
}

// Verify Syncer implements remote.Syncer at compile time.
var _ remote.Syncer = (*Syncer)(nil)

// PersistPlayCount scrobbles the track. The lastfm-go API has no context
// support; ctx is ignored.
func (s *Syncer) PersistPlayCount(_ context.Context, t playlist.Track) error {
	if !s.client.IsAuthenticated() {
		return nil
	}
	return s.client.Scrobble(FromTrack(t, s.now()))
}

// PersistRating loves tracks rated at or above LoveThreshold and unloves the rest.
func (s *Syncer) PersistRating(_ context.Context, t playlist.Track, rating float64) error {
	if !s.client.IsAuthenticated() {
		return nil
	}
	if rating >= LoveThreshold {
		return s.client.Love(t.Artist, t.Title)
	}
	return s.client.Unlove(t.Artist, t.Title)
}
