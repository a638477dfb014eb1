// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Queue operations
	OpQueueSave    Op = "save queue"
	OpQueueRestore Op = "restore saved queue"
	OpQueueMove    Op = "move queue item"
	OpQueueRefresh Op = "refresh queue"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackToggle Op = "toggle playback"

	// Remote sync
	OpRatingSync    Op = "sync rating"
	OpPlayCountSync Op = "sync play count"

	// Library / playlists
	OpLibraryLoad      Op = "load library tracks"
	OpPlaylistList     Op = "list playlists"
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistAddTrack Op = "add track to playlist"

	// Last.fm
	OpLastfmLink Op = "link Last.fm account"

	// Initialization
	OpInitialize Op = "initialize"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
