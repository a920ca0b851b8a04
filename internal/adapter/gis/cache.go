package gis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
	"github.com/couchcryptid/climate-ops-service/internal/observability"
)

// CachedSource wraps a FeatureSource with an in-memory TTL-bounded LRU
// cache. Hazard layers change on upstream publish cycles measured in hours,
// so a short TTL removes almost all duplicate WFS traffic between the four
// analysis modes without risking stale zones.
type CachedSource struct {
	inner   domain.FeatureSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a feature source. Entries
// expire after ttl using the shared service clock.
func NewCachedSource(inner domain.FeatureSource, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries, ttl),
		metrics: metrics,
	}
}

// QueryLayer serves from cache when a fresh entry exists, otherwise delegates
// to the wrapped source. Errors and empty collections are never cached, so a
// recovering upstream is retried on the next analysis.
func (c *CachedSource) QueryLayer(ctx context.Context, layer string, maxFeatures int) (domain.FeatureCollection, error) {
	key := fmt.Sprintf("%s|%d", layer, maxFeatures)
	if fc, ok := c.cache.get(key); ok {
		c.metrics.SourceCache.WithLabelValues("hit").Inc()
		return fc, nil
	}
	c.metrics.SourceCache.WithLabelValues("miss").Inc()

	fc, err := c.inner.QueryLayer(ctx, layer, maxFeatures)
	if err != nil {
		return fc, err
	}
	if len(fc.Features) > 0 {
		c.cache.put(key, fc)
	}
	return fc, nil
}

// lruCache is a thread-safe LRU cache of feature collections with per-entry
// expiry.
type lruCache struct {
	maxEntries int
	ttl        time.Duration
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key       string
	value     domain.FeatureCollection
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int, ttl time.Duration) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.FeatureCollection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.FeatureCollection{}, false
	}
	if domain.Clock().Now().After(e.expiresAt) {
		delete(c.entries, e.key)
		c.remove(e)
		return domain.FeatureCollection{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.FeatureCollection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := domain.Clock().Now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
