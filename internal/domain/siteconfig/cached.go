package siteconfig

import (
	"context"
	"sync"
	"time"
)

// CachedReader serves the bankrupt flag from memory for at most one TTL
// before going back to storage. The gate contract tolerates staleness only
// within that window, so the TTL should stay small (seconds).
type CachedReader struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	value     bool
	valid     bool
	fetchedAt time.Time
}

func NewCachedReader(repo Repository, ttl time.Duration) *CachedReader {
	return &CachedReader{repo: repo, ttl: ttl, now: time.Now}
}

func (c *CachedReader) IsBankrupt(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.value, nil
	}
	cfg, err := c.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	c.value = cfg.IsBankrupt
	c.fetchedAt = c.now()
	c.valid = true
	return c.value, nil
}

// Invalidate drops the cached value. The admin write path calls it so its
// own process observes the new flag immediately instead of after the TTL.
func (c *CachedReader) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
