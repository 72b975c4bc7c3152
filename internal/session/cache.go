package session

import (
	"container/list"
	"sync"
	"time"
)

// Eviction reasons reported to the eviction callback.
const (
	EvictTTL      = "ttl"
	EvictCapacity = "capacity"
)

// Cache holds the most recent session per upload id, bounded by a TTL and a
// size cap with least-recently-used eviction. Entries are only ever removed
// by Cleanup; there is no per-session delete.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	order   *list.List // front = least recently used
	items   map[string]*list.Element
	now     func() time.Time
	onEvict func(reason string)
}

// CacheOption configures the cache.
type CacheOption func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEvictionCallback observes evictions by reason.
func WithEvictionCallback(fn func(reason string)) CacheOption {
	return func(c *Cache) { c.onEvict = fn }
}

// NewCache constructs a cache bounded by ttl and maxSessions.
func NewCache(ttl time.Duration, maxSessions int, opts ...CacheOption) *Cache {
	cache := &Cache{
		ttl:   ttl,
		max:   maxSessions,
		order: list.New(),
		items: make(map[string]*list.Element),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// UpsertAndTouch inserts or replaces the session by id and marks it most
// recently used.
func (c *Cache) UpsertAndTouch(sess *Session) {
	if sess == nil || sess.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[sess.ID]; ok {
		elem.Value = sess
		c.order.MoveToBack(elem)
		return
	}
	c.items[sess.ID] = c.order.PushBack(sess)
}

// Cleanup enforces the bounds in two phases: first expire entries older than
// the TTL starting from the least-recently-used end, then evict down to the
// size cap. Afterwards len <= max and no entry is older than ttl.
func (c *Cache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	for {
		front := c.order.Front()
		if front == nil {
			break
		}
		sess := front.Value.(*Session)
		if sess.LastSeen.After(cutoff) {
			break
		}
		c.evict(front, EvictTTL)
	}

	for c.order.Len() > c.max {
		c.evict(c.order.Front(), EvictCapacity)
	}
}

func (c *Cache) evict(elem *list.Element, reason string) {
	sess := c.order.Remove(elem).(*Session)
	delete(c.items, sess.ID)
	if c.onEvict != nil {
		c.onEvict(reason)
	}
}

// SetBounds adjusts ttl and cap at runtime; the new bounds take effect on the
// next Cleanup.
func (c *Cache) SetBounds(ttl time.Duration, maxSessions int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl > 0 {
		c.ttl = ttl
	}
	if maxSessions > 0 {
		c.max = maxSessions
	}
}

// Bounds returns the current ttl and size cap.
func (c *Cache) Bounds() (time.Duration, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl, c.max
}

// Len returns the current number of cached sessions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// List returns the cached sessions ordered least- to most-recently used.
func (c *Cache) List() []*Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	sessions := make([]*Session, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		sessions = append(sessions, elem.Value.(*Session))
	}
	return sessions
}

// Get returns the cached session for an id without touching its position.
func (c *Cache) Get(id string) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return elem.Value.(*Session), true
}
