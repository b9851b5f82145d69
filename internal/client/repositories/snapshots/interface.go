// Package snapshots stores the last successfully fetched raw JSON of each
// remote collection, so list views can degrade to stale data when the
// backend is unreachable.
package snapshots

import (
	"context"
	"time"
)

type Repository interface {
	// Save upserts the snapshot for the named collection.
	Save(ctx context.Context, name string, data []byte) error

	// Load returns the snapshot and the time it was taken.
	// Returns common.ErrorNotFound when no snapshot exists.
	Load(ctx context.Context, name string) ([]byte, time.Time, error)

	// Delete removes the snapshot for the named collection.
	Delete(ctx context.Context, name string) error
}
