// Package kv provides the string key-value namespace clientclock persists into.
// Values are opaque strings; callers own their encoding.
package kv

import "errors"

// ErrCorrupt is returned when the backing file is not a JSON object of strings.
var ErrCorrupt = errors.New("store file is corrupt")

// Store is a flat string-to-string namespace. Each call is a whole-value
// replace; there are no transactions.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete is a no-op for missing keys.
	Delete(key string) error
	// Keys returns all keys in sorted order.
	Keys() ([]string, error)
}

// Backuper is implemented by stores that can snapshot themselves before a
// destructive change.
type Backuper interface {
	Backup() error
}
