package quote

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type cacheEntry struct {
	price     decimal.Decimal
	expiresAt time.Time
}

// Cached wraps a Source with an in-memory TTL cache. Safe for concurrent
// use. Errors are not cached; every miss retries the underlying source.
type Cached struct {
	source Source
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCached creates a caching decorator around a price source.
func NewCached(source Source, ttl time.Duration) *Cached {
	return &Cached{
		source:  source,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cached) Price(symbol string) (decimal.Decimal, error) {
	c.mu.RLock()
	entry, ok := c.entries[symbol]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.price, nil
	}

	price, err := c.source.Price(symbol)
	if err != nil {
		return decimal.Zero, err
	}

	c.mu.Lock()
	c.entries[symbol] = cacheEntry{price: price, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return price, nil
}
