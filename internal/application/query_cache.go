package application

import (
	"sync"
	"time"

	"github.com/example/personal-calendar/internal/event"
)

// queryCache stores recently computed query results to avoid rescanning the
// store for identical read queries while the calendar remains unchanged.
// Every successful mutation invalidates it wholesale.
type queryCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]queryCacheEntry
}

type queryCacheEntry struct {
	events    []event.Event
	expiresAt time.Time
}

func newQueryCache(ttl time.Duration, maxEntries int, now func() time.Time) *queryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	if now == nil {
		now = time.Now
	}
	return &queryCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]queryCacheEntry),
	}
}

func (c *queryCache) Get(key string) ([]event.Event, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return cloneEvents(entry.events), true
}

func (c *queryCache) Store(key string, events []event.Event) {
	if c == nil {
		return
	}
	cloned := cloneEvents(events)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = queryCacheEntry{events: cloned, expiresAt: expiry}
}

func (c *queryCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]queryCacheEntry)
	c.mu.Unlock()
}

func (c *queryCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *queryCache) evictOneLocked() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, entry := range c.entries {
		if !found || entry.expiresAt.Before(oldest) {
			oldestKey = key
			oldest = entry.expiresAt
			found = true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

func cloneEvents(events []event.Event) []event.Event {
	if events == nil {
		return nil
	}
	out := make([]event.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Clone())
	}
	return out
}
