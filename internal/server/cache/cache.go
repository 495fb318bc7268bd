// Package cache holds rendered list responses between library changes.
// Entries expire after a TTL and are flushed whenever the library changes.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL cache with a flush generation.
//
// A reader takes Generation before computing a value and stores it with
// Fill. A Clear in between bumps the generation, so a value computed from
// pre-write state is never stored after the flush.
type Cache struct {
	mu         sync.Mutex
	generation uint64
	items      *gocache.Cache
}

// New creates a cache whose entries live for ttl.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{items: gocache.New(ttl, cleanupInterval)}
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	return c.items.Get(key)
}

// Generation returns the current flush generation.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Fill stores value under key if no Clear happened since generation was
// read. It reports whether the value was stored.
func (c *Cache) Fill(key string, value any, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.items.Set(key, value, gocache.DefaultExpiration)
	return true
}

// Clear drops every entry and starts a new generation.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.generation++
	c.items.Flush()
	c.mu.Unlock()
}

// ItemCount returns the number of entries, including expired ones not yet
// cleaned up.
func (c *Cache) ItemCount() int {
	return c.items.ItemCount()
}
