// Package kv provides the key-value persistence used by the repositories: a
// durable mapping from string keys to JSON values with prefix enumeration.
package kv

import "context"

// Store is a flat key-value namespace.
//
// Each call is atomic on its own key; a sequence of calls is not. Backend
// failures are returned as *errors.StorageError.
type Store interface {
	// Get returns the value stored at key. A missing key reports found=false
	// and no error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set upserts value at key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
	// ScanPrefix returns every value whose key starts with prefix, in no
	// particular order. No match yields an empty slice.
	ScanPrefix(ctx context.Context, prefix string) ([][]byte, error)
}
