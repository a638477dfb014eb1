package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/llehouerou/wavesmobile/internal/playlist"
)

// KeyQueue holds the persisted queue snapshot: a JSON array of tracks whose
// first element is the track that was active when it was written.
const KeyQueue = "queue"

// ErrCorruptSnapshot is returned when the stored queue cannot be decoded.
var ErrCorruptSnapshot = errors.New("corrupt queue snapshot")

// SaveQueue replaces the persisted queue snapshot.
func SaveQueue(kv Interface, tracks []playlist.Track) error {
	if tracks == nil {
		tracks = []playlist.Track{}
	}
	data, err := json.Marshal(tracks)
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}
	return kv.Set(KeyQueue, string(data))
}

// LoadQueue returns the persisted queue snapshot, or nil if there is none.
func LoadQueue(kv Interface) ([]playlist.Track, error) {
	raw, ok, err := kv.Get(KeyQueue)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var tracks []playlist.Track
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return tracks, nil
}

// ClearQueue removes the persisted queue snapshot.
func ClearQueue(kv Interface) error {
	return kv.Remove(KeyQueue)
}
