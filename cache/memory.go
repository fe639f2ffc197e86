package cache

import "sync"

// Stats counts cache lookups.
type Stats struct {
	Hits   int
	Misses int
	Size   int
}

// InMemoryCache is a thread-safe map of translations keyed by
// catalogtl.CacheKey. Entries live as long as the cache value.
type InMemoryCache struct {
	cache  map[string]string
	hits   int
	misses int
	mu     sync.RWMutex
}

// NewInMemoryCache creates an empty cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		cache: make(map[string]string),
	}
}

// Get retrieves a value from the cache.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.cache[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return value, ok
}

// Set stores a value in the cache.
func (c *InMemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = value
	return nil
}

// Len returns the number of entries in the cache.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Stats returns lookup counters and the current size.
func (c *InMemoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Hits: c.hits, Misses: c.misses, Size: len(c.cache)}
}

// Clear removes all entries and resets the counters.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]string)
	c.hits, c.misses = 0, 0
}

// Verify InMemoryCache implements TranslationCache
var _ TranslationCache = (*InMemoryCache)(nil)
