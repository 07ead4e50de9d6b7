package assets

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// StampCache memoizes another Stater's answers for a fixed TTL, so a page
// that references the same stylesheet many times stats it once.
// It is safe for concurrent use.
type StampCache struct {
	next Stater
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]stampEntry
	group   singleflight.Group
}

type stampEntry struct {
	modTime time.Time
	ok      bool
	expires time.Time
}

// NewStampCache wraps next. A ttl of zero or less disables caching: every
// lookup goes to next, though concurrent lookups of one path still share a
// single call.
func NewStampCache(next Stater, ttl time.Duration) *StampCache {
	if next == nil {
		next = OSStater{}
	}
	return &StampCache{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]stampEntry),
	}
}

// ModTime returns the cached answer for path, refreshing it from the
// wrapped Stater once it has expired. An answer fetched for a caller whose
// context is already done is returned but not cached.
func (c *StampCache) ModTime(ctx context.Context, path string) (time.Time, bool) {
	now := c.now()

	c.mu.RLock()
	e, hit := c.entries[path]
	c.mu.RUnlock()
	if hit && now.Before(e.expires) {
		return e.modTime, e.ok
	}

	// The lookup is shared by every caller waiting on path, so one caller
	// giving up must not cut it short.
	v, _, _ := c.group.Do(path, func() (any, error) {
		mod, ok := c.next.ModTime(context.WithoutCancel(ctx), path)
		e := stampEntry{modTime: mod, ok: ok, expires: c.now().Add(c.ttl)}
		if c.ttl > 0 && ctx.Err() == nil {
			c.mu.Lock()
			c.entries[path] = e
			c.mu.Unlock()
		}
		return e, nil
	})
	e = v.(stampEntry)
	return e.modTime, e.ok
}

// Invalidate drops the cached answer for path.
func (c *StampCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, path)
}

// Purge drops every cached answer.
func (c *StampCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]stampEntry)
}

// Len returns the number of cached paths, expired or not.
func (c *StampCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
