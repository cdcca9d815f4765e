// Package store persists daibit application state in a local key-value storage.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// Storage is a synchronous string key-value store, modelled on browser
// local storage.
type Storage interface {
	// GetItem returns the value for key and whether it exists.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error

	// Close releases resources held by the storage.
	Close() error
}

// Storage backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrStorageClosed is returned when operations are attempted on a closed storage.
	ErrStorageClosed = errors.New("storage is closed")
	// ErrUnknownBackend is returned by Open for an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Open creates the storage backend named by backend at path.
// The memory backend ignores path.
func Open(backend, path string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStorage(path)
	case BackendSQLite:
		return NewSQLiteStorage(path)
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
