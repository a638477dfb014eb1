package playlist

import (
	"time"

	"github.com/llehouerou/wavesmobile/internal/palette"
)

// Track represents a single playable item of the library.
// It is also the element of the persisted queue snapshot.
type Track struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`          // media path relative to the media server
	URL  string `json:"url,omitempty"` // resolved playable locator

	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	Album       string        `json:"album"`
	AlbumArtist string        `json:"album_artist,omitempty"`
	Year        int           `json:"year,omitempty"`
	Encoder     string        `json:"encoder,omitempty"`
	Format      string        `json:"format,omitempty"`
	SampleRate  int           `json:"sample_rate,omitempty"`
	Bitrate     int           `json:"bitrate,omitempty"`
	Duration    time.Duration `json:"duration,omitempty"`

	ArtworkPath  string `json:"artwork_path,omitempty"`
	ArtworkURL   string `json:"artwork_url,omitempty"`
	WaveformPath string `json:"waveform_path,omitempty"`
	WaveformURL  string `json:"waveform_url,omitempty"`
	Palette      string `json:"palette,omitempty"` // serialized, see package palette

	Rating     float64   `json:"rating"`
	PlayCount  int       `json:"play_count"`
	LastPlayed time.Time `json:"last_played,omitzero"`
}

// Colors parses the serialized palette. Malformed palettes yield an empty one.
func (t *Track) Colors() palette.Palette {
	return palette.ParseOrDefault(t.Palette)
}

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []Track
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		tracks: make([]Track, 0),
	}
}

// Add appends tracks to the playlist.
func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)
	return true
}

// Clear removes all tracks from the playlist.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IndexOf returns the first index holding the track with the given id, or -1.
func (p *Playlist) IndexOf(id int64) int {
	for i := range p.tracks {
		if p.tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// Move moves the track at fromIndex to toIndex.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(p.tracks) {
		return false
	}
	if toIndex < 0 || toIndex >= len(p.tracks) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}

	track := p.tracks[fromIndex]
	// Remove from old position
	p.tracks = append(p.tracks[:fromIndex], p.tracks[fromIndex+1:]...)
	// Insert at new position
	p.tracks = append(p.tracks[:toIndex], append([]Track{track}, p.tracks[toIndex:]...)...)
	return true
}
