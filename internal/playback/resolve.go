package playback

import (
	"net/url"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

// resolveTrack fills the playable, artwork and waveform URLs of t from its
// relative paths. Locators that are already absolute URLs are kept.
func resolveTrack(t *playlist.Track, base string) {
	t.URL = resolveLocator(base, t.URL, t.Path)
	t.ArtworkURL = resolveLocator(base, t.ArtworkURL, t.ArtworkPath)
	t.WaveformURL = resolveLocator(base, t.WaveformURL, t.WaveformPath)
}

func resolveLocator(base, current, path string) string {
	if isAbsoluteURL(current) {
		return current
	}
	if path == "" {
		return current
	}
	if isAbsoluteURL(path) || base == "" {
		return path
	}
	u, err := url.JoinPath(base, path)
	if err != nil {
		return path
	}
	return u
}

func isAbsoluteURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
