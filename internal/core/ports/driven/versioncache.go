package driven

import (
	"context"
	"time"
)

// VersionCache stores the results of latest-version lookups so repeated
// checks do not burn API quota.
type VersionCache interface {
	// Get returns the cached version for key if it was stored within maxAge.
	// The boolean reports whether a fresh entry was found.
	Get(ctx context.Context, key string, maxAge time.Duration) (string, bool, error)

	// Put stores or replaces the cached version for key.
	Put(ctx context.Context, key, version string) error

	// Purge removes all cached entries.
	Purge(ctx context.Context) error
}
