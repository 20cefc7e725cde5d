package collector

import (
	"sync"
	"time"

	"MarketScope/internal/model"
)

type cacheKey struct {
	market model.Market
	symbol string
	period model.Period
}

func (k cacheKey) String() string {
	return string(k.market) + "|" + k.symbol + "|" + string(k.period)
}

type cacheEntry struct {
	series  *model.Series
	expires time.Time
}

// Cache is a TTL memo of loaded series. Entries expire ttl after they are
// stored; expired entries are purged lazily on access.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[cacheKey]cacheEntry
}

// NewCache creates a cache. A nil clock uses time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

func (c *Cache) get(k cacheKey) (*model.Series, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, k)
		return nil, false
	}
	return e.series, true
}

func (c *Cache) put(k cacheKey, s *model.Series) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
		}
	}
	c.entries[k] = cacheEntry{series: s, expires: now.Add(c.ttl)}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
