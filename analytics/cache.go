package analytics

import (
	"sync"
	"time"
)

// StatsCache memoizes the aggregated stats for one period with a TTL, so the
// dashboard endpoint does not hit SQLite on every poll.
type StatsCache struct {
	mu      sync.RWMutex
	stats   *Stats
	fetched time.Time
	ttl     time.Duration
	store   *Store
	days    int
}

// NewStatsCache creates a StatsCache covering the trailing days window.
func NewStatsCache(s *Store, days int, ttl time.Duration) *StatsCache {
	return &StatsCache{store: s, days: days, ttl: ttl}
}

func (c *StatsCache) valid() bool {
	return c.stats != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh aggregation.
func (c *StatsCache) Invalidate() {
	c.mu.Lock()
	c.stats = nil
	c.mu.Unlock()
}

// Get returns the cached stats, refreshing from the store when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *StatsCache) Get() (*Stats, error) {
	c.mu.RLock()
	if c.valid() {
		stats := c.stats
		c.mu.RUnlock()
		return stats, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.stats, nil
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -c.days)
	stats, err := c.store.GetStats(from, to)
	if err != nil {
		return nil, err
	}
	c.stats = stats
	c.fetched = time.Now()
	return stats, nil
}
