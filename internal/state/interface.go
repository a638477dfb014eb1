// internal/state/interface.go
package state

// Interface defines the durable key/value store contract for dependency
// injection and testing.
type Interface interface {
	// Get returns the value stored under key; ok is false if the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
