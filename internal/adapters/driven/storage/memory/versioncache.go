package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cajal/microns-kit/internal/core/ports/driven"
)

// Ensure VersionCache implements the interface.
var _ driven.VersionCache = (*VersionCache)(nil)

type cacheEntry struct {
	version   string
	fetchedAt time.Time
}

// VersionCache is an in-memory implementation of driven.VersionCache for
// testing.
type VersionCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry

	// Now can be overridden in tests to control entry aging.
	Now func() time.Time
}

// NewVersionCache creates a new in-memory version cache.
func NewVersionCache() *VersionCache {
	return &VersionCache{
		entries: make(map[string]cacheEntry),
		Now:     time.Now,
	}
}

// Get returns the cached version for key if stored within maxAge.
func (c *VersionCache) Get(_ context.Context, key string, maxAge time.Duration) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.Now().Sub(entry.fetchedAt) > maxAge {
		return "", false, nil
	}
	return entry.version, true, nil
}

// Put stores the cached version for key.
func (c *VersionCache) Put(_ context.Context, key, version string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{version: version, fetchedAt: c.Now()}
	return nil
}

// Purge removes all cached entries.
func (c *VersionCache) Purge(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	return nil
}
