package cache

import (
	"sort"
	"sync"
	"time"
)

// Defaults for the adaptive cache.
const (
	DefaultCapacity        = 1000
	DefaultTTL             = 5 * time.Minute
	DefaultJanitorInterval = time.Minute

	// evictFraction is the share of entries removed in one capacity
	// sweep. Evicting a batch instead of a single entry keeps Set from
	// scoring the whole cache on every insert at the capacity boundary.
	evictFraction = 0.2
)

// entry is one cached value with its access bookkeeping.
type entry struct {
	data       any
	createdAt  time.Time
	lastAccess time.Time
	accesses   int64
	expiresAt  time.Time
}

// Cache is an in-memory store whose eviction favors entries that are
// accessed often and recently. All methods are safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	capacity int
	ttl      time.Duration

	janitorInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity bounds the number of live entries.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithDefaultTTL sets the TTL applied when Set is called without one.
func WithDefaultTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithJanitorInterval sets how often the background sweep runs.
func WithJanitorInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.janitorInterval = d
		}
	}
}

// New creates a Cache and starts its janitor goroutine. Callers must
// Close the cache when done with it.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:         make(map[string]*entry),
		capacity:        DefaultCapacity,
		ttl:             DefaultTTL,
		janitorInterval: DefaultJanitorInterval,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.janitor()
	return c
}

// Get returns the live value for key. An expired entry is removed on
// the spot and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		Metrics().Misses.Inc()
		return nil, false
	}
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		Metrics().Expired.Inc()
		Metrics().Misses.Inc()
		Metrics().Entries.Set(float64(len(c.entries)))
		return nil, false
	}

	e.lastAccess = now
	e.accesses++
	Metrics().Hits.Inc()
	return e.data, true
}

// Set stores data under key. The optional ttl overrides the cache
// default for this entry only. Inserting into a full cache triggers a
// scored eviction pass first.
func (c *Cache) Set(key string, data any, ttl ...time.Duration) {
	d := c.ttl
	if len(ttl) > 0 && ttl[0] > 0 {
		d = ttl[0]
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked(now)
	}

	c.entries[key] = &entry{
		data:       data,
		createdAt:  now,
		lastAccess: now,
		accesses:   1,
		expiresAt:  now.Add(d),
	}
	Metrics().Entries.Set(float64(len(c.entries)))
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		Metrics().Entries.Set(float64(len(c.entries)))
	}
}

// Len reports the number of entries, including any not yet swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the janitor. The cache remains usable afterwards; only
// the background sweep stops.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// score ranks an entry's retention value. Frequently and recently used
// entries score high; old idle ones go negative and are evicted first.
func (e *entry) score(now time.Time) float64 {
	age := now.Sub(e.createdAt).Seconds()
	idle := now.Sub(e.lastAccess).Seconds()

	perMinute := float64(e.accesses)
	if age > 60 {
		perMinute = float64(e.accesses) / (age / 60)
	}
	return perMinute*100 - idle - age/10
}

// evictLocked removes expired entries, then the lowest-scoring fifth of
// what remains. Caller holds c.mu.
func (c *Cache) evictLocked(now time.Time) {
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			Metrics().Expired.Inc()
		}
	}
	if len(c.entries) < c.capacity {
		return
	}

	type scored struct {
		key   string
		score float64
	}
	ranked := make([]scored, 0, len(c.entries))
	for key, e := range c.entries {
		ranked = append(ranked, scored{key: key, score: e.score(now)})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })

	n := int(float64(len(ranked)) * evictFraction)
	if n < 1 {
		n = 1
	}
	for _, s := range ranked[:n] {
		delete(c.entries, s.key)
		Metrics().Evictions.Inc()
	}
}

// janitor sweeps expired entries until Close is called.
func (c *Cache) janitor() {
	ticker := time.NewTicker(c.janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.sweep(now)
		}
	}
}

// sweep removes every expired entry.
func (c *Cache) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			Metrics().Expired.Inc()
		}
	}
	Metrics().Entries.Set(float64(len(c.entries)))
}
