package cache

import (
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Item wraps a cached value together with its expiry.
type Item struct {
	Data      any
	ExpiresAt time.Time
}

// Cache is a size bounded in-process LRU with per entry TTL. Every key
// carries a version that Delete bumps, so a value built from reads that
// raced with an invalidation can be dropped by SetIfVersion.
type Cache struct {
	lru *lru.Cache[string, Item]
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	versions map[string]uint64
}

func New(size int, ttl time.Duration) (*Cache, error) {
	if size <= 0 {
		size = 256
	}
	l, err := lru.New[string, Item](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l, ttl: ttl, now: time.Now, versions: map[string]uint64{}}, nil
}

// Set stores data under key using the default TTL.
func (c *Cache) Set(key string, data any) {
	c.lru.Add(key, Item{Data: data, ExpiresAt: c.now().Add(c.ttl)})
}

// Get returns the cached value, or false when missing or expired.
func (c *Cache) Get(key string) (any, bool) {
	item, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if c.now().After(item.ExpiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return item.Data, true
}

// Version returns the current version of key. Capture it before reading
// the data a cached value is built from.
func (c *Cache) Version(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key]
}

// SetIfVersion stores data only if key has not been invalidated since
// version was captured. It reports whether the value was stored.
func (c *Cache) SetIfVersion(key string, data any, version uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[key] != version {
		return false
	}
	c.Set(key, data)
	return true
}

// Delete removes key and bumps its version.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[key]++
	c.lru.Remove(key)
}

// DeletePrefix removes every key starting with prefix.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	matched := map[string]struct{}{}
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			matched[key] = struct{}{}
			c.lru.Remove(key)
		}
	}
	// keys invalidated while absent still carry a version
	for key := range c.versions {
		if strings.HasPrefix(key, prefix) {
			matched[key] = struct{}{}
		}
	}
	for key := range matched {
		c.versions[key]++
	}
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
