package cache

import (
	"sync"
	"time"
)

type viewEntry struct {
	payload   []byte
	expiresAt time.Time
}

// ViewCache stores rendered view payloads in-memory, keyed by logical path.
// Invalidate marks a path stale so the next read misses and re-renders.
type ViewCache struct {
	mu    sync.RWMutex
	items map[string]viewEntry
}

// NewViewCache constructs an empty ViewCache.
func NewViewCache() *ViewCache {
	return &ViewCache{items: make(map[string]viewEntry)}
}

// Get returns the cached payload for path if it exists and has not expired.
func (c *ViewCache) Get(path string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.items[path]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.Invalidate(path)
		return nil, false
	}
	return entry.payload, true
}

// Set stores a rendered payload for path. A ttl of zero or less means the
// entry only leaves the cache through Invalidate.
func (c *ViewCache) Set(path string, payload []byte, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[path] = viewEntry{payload: payload, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Invalidate drops the cached payload for path.
func (c *ViewCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.items, path)
	c.mu.Unlock()
}
