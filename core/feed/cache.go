package feed

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a caller-owned TTL cache around a feed Client.
//
// There is deliberately no package-level cache state: whoever needs caching
// constructs a Cache with an explicit TTL and owns its lifetime. A TTL of
// zero disables caching entirely and every call hits the feed.
type Cache struct {
	client Client
	ttl    time.Duration

	mu      sync.RWMutex
	records []Record
	fetched time.Time

	sf singleflight.Group
}

// NewCache wraps client with a TTL cache.
func NewCache(client Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Records returns the current feed snapshot, fetching through the underlying
// client when the cached one is missing or expired. Concurrent callers share
// a single in-flight fetch.
func (c *Cache) Records(ctx context.Context) ([]Record, error) {
	if c.ttl <= 0 {
		return c.client.FetchAll(ctx)
	}

	c.mu.RLock()
	records, fetched := c.records, c.fetched
	c.mu.RUnlock()

	if records != nil && time.Since(fetched) <= c.ttl {
		return records, nil
	}

	result, err, _ := c.sf.Do("feed", func() (any, error) {
		// Double-check after winning the singleflight slot.
		c.mu.RLock()
		records, fetched := c.records, c.fetched
		c.mu.RUnlock()
		if records != nil && time.Since(fetched) <= c.ttl {
			return records, nil
		}

		fresh, err := c.client.FetchAll(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.records = fresh
		c.fetched = time.Now()
		c.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Record), nil
}

// Invalidate drops the cached snapshot, forcing the next Records call to fetch.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.records = nil
	c.fetched = time.Time{}
	c.mu.Unlock()
}
