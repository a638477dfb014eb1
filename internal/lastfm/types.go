package lastfm

import (
	"time"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist      string
	Track       string
	Album       string
	AlbumArtist string
	Duration    time.Duration
	Timestamp   time.Time // When playback started
}

// FromTrack builds scrobble metadata; startedAt is used when the track
// carries no activation time.
func FromTrack(t playlist.Track, startedAt time.Time) ScrobbleTrack {
	ts := t.LastPlayed
	if ts.IsZero() {
		ts = startedAt
	}
	return ScrobbleTrack{
		Artist:      t.Artist,
		Track:       t.Title,
		Album:       t.Album,
		AlbumArtist: t.AlbumArtist,
		Duration:    t.Duration,
		Timestamp:   ts,
	}
}
