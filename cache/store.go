package cache

import (
	"github.com/goccy/go-json"
)

// Store is a durable fingerprint to JSON value mapping.
type Store interface {
	// Get returns the value stored under key. A missing key is not an error.
	Get(key string) (json.RawMessage, bool, error)
	// Put stores value under key, replacing any previous value.
	Put(key string, value json.RawMessage) error
	// Len returns the number of stored entries.
	Len() (int, error)
	Close() error
}
