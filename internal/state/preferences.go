package state

import "strconv"

// Preference keys.
const (
	KeyLibraryPath   = "library_path"
	KeyLibraryScreen = "library_screen"
	KeyStreamingMode = "streaming_mode"
)

// LibraryScreen identifies the library browser screen last shown.
type LibraryScreen string

const (
	ScreenArtists   LibraryScreen = "artists"
	ScreenAlbums    LibraryScreen = "albums"
	ScreenFolders   LibraryScreen = "folders"
	ScreenPlaylists LibraryScreen = "playlists"
	ScreenHistory   LibraryScreen = "history"
)

// LibraryPath returns the last browsed library path ("" if never set).
func LibraryPath(kv Interface) (string, error) {
	v, _, err := kv.Get(KeyLibraryPath)
	return v, err
}

// SetLibraryPath stores the last browsed library path.
func SetLibraryPath(kv Interface, path string) error {
	return kv.Set(KeyLibraryPath, path)
}

// SelectedLibraryScreen returns the last library screen, defaulting to artists.
func SelectedLibraryScreen(kv Interface) (LibraryScreen, error) {
	v, _, err := kv.Get(KeyLibraryScreen)
	if err != nil {
		return "", err
	}
	switch s := LibraryScreen(v); s {
	case ScreenArtists, ScreenAlbums, ScreenFolders, ScreenPlaylists, ScreenHistory:
		return s, nil
	default:
		return ScreenArtists, nil
	}
}

// SetSelectedLibraryScreen stores the library screen.
func SetSelectedLibraryScreen(kv Interface, screen LibraryScreen) error {
	return kv.Set(KeyLibraryScreen, string(screen))
}

// StreamingMode reports whether media is streamed rather than downloaded.
// Unset or unparsable values read as false.
func StreamingMode(kv Interface) (bool, error) {
	v, ok, err := kv.Get(KeyStreamingMode)
	if err != nil || !ok {
		return false, err
	}
	on, perr := strconv.ParseBool(v)
	if perr != nil {
		return false, nil //nolint:nilerr // garbage reads as off
	}
	return on, nil
}

// SetStreamingMode stores the streaming-mode flag.
func SetStreamingMode(kv Interface, on bool) error {
	return kv.Set(KeyStreamingMode, strconv.FormatBool(on))
}
