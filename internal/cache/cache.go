// Package cache provides the explicit read-through cache for reference
// data (bus schedules, buildings). The legacy client kept this data in
// ambient browser storage invalidated on sign-out; here it is an object
// with exactly two operations: GetOrFetch and InvalidateAll.
package cache

import (
	"context"
	"sync"
	"time"
)

// FetchFunc loads the value on a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

type Cache interface {
	// GetOrFetch returns the cached value for key, calling fetch and
	// storing the result when the key is absent or expired. Fetch
	// failures are returned without poisoning the cache.
	GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) ([]byte, error)

	// InvalidateAll drops every cached entry. Wired to sign-out, the
	// single invalidation trigger the application has.
	InvalidateAll(ctx context.Context) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is the in-process implementation, used in tests and when
// no Redis address is configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return value, nil
}

func (c *MemoryCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
