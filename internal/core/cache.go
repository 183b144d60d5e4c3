package core

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces a canonical table for a cache miss.
type LoadFunc func(ctx context.Context) (*CanonicalTable, error)

// TableCache memoizes canonical tables by source key.
//
// Entries live until Clear is called; a file changed on disk is not picked up
// before that. Concurrent misses for the same key share a single load.
// Failed loads are not cached.
type TableCache struct {
	mu      sync.RWMutex
	entries map[string]*CanonicalTable
	group   singleflight.Group
}

// NewTableCache creates an empty cache.
func NewTableCache() *TableCache {
	return &TableCache{entries: make(map[string]*CanonicalTable)}
}

// GetOrLoad returns the cached table for key, calling load on a miss.
func (c *TableCache) GetOrLoad(ctx context.Context, key string, load LoadFunc) (*CanonicalTable, error) {
	c.mu.RLock()
	t, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have finished loading while we waited on the lock.
		c.mu.RLock()
		t, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return t, nil
		}

		t, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = t
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CanonicalTable), nil
}

// Clear drops every cached table.
func (c *TableCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*CanonicalTable)
	c.mu.Unlock()
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
