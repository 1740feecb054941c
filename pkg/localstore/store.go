// Package localstore is a string-keyed JSON blob store. The browser client
// this server replaces kept every collection as one JSON value per
// localStorage key; the same layout is kept here behind an explicit Store
// that gets injected instead of reached for globally. Writes are
// last-writer-wins, matching the original's two-tabs-open behavior.
package localstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for keys that were never written.
var ErrKeyNotFound = errors.New("localstore: key not found")

type Store interface {
	// Get returns the raw blob stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
