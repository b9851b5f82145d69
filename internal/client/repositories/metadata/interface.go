// Package metadata persists small named values for the client: the sealed
// session record lives here. Values are opaque byte blobs.
package metadata

import "context"

type Repository interface {
	// Get returns the value for key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores one value, replacing any previous one.
	Set(ctx context.Context, key string, value []byte) error

	// SetMany stores several values in a single transaction, so a reader
	// never observes a partially written group.
	SetMany(ctx context.Context, values map[string][]byte) error

	// DeleteMany removes several keys in a single transaction.
	DeleteMany(ctx context.Context, keys ...string) error

	// Clear removes every value.
	Clear(ctx context.Context) error
}
