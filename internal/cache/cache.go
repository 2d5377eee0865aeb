// Package cache provides a process-wide TTL cache for rarely-changing
// lookups such as the occupation code-to-name table.
package cache

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Cache is a concurrent-safe mapping from key to (value, expiry). Eviction
// is lazy: expired entries are removed on the next Get, never by a
// background sweep.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	hits    atomic.Int64
	misses  atomic.Int64
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Stats contains cache hit/miss counters.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Key derives a deterministic cache key from an operation name and its
// argument values. Identical calls share a slot; different arguments never
// collide short of pathological argument strings.
func Key(op string, args ...string) string {
	if len(args) == 0 {
		return op
	}
	return op + "\x1f" + strings.Join(args, "\x1f")
}

// Get returns the live value for key. An expired entry is evicted and
// reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if !time.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key for ttl, overwriting any existing entry.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()
	return Stats{Entries: n, Hits: c.hits.Load(), Misses: c.misses.Load()}
}
