package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	c := New(opts...)
	t.Cleanup(c.Close)
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	c.Set("k", "v")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCache_MissingKey(t *testing.T) {
	c := newTestCache(t)
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCache_LazyExpiry(t *testing.T) {
	c := newTestCache(t)
	c.Set("k", "v", 100*time.Millisecond)

	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(150 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire after its TTL")
	assert.Equal(t, 0, c.Len(), "expired entry removed on read")
}

func TestCache_PerEntryTTLOverridesDefault(t *testing.T) {
	c := newTestCache(t, WithDefaultTTL(time.Hour))
	c.Set("short", "v", 100*time.Millisecond)
	c.Set("long", "v")

	time.Sleep(150 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("long")
	assert.True(t, ok)
}

func TestCache_Overwrite(t *testing.T) {
	c := newTestCache(t)
	c.Set("k", "first")
	c.Set("k", "second")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_CapacityBound(t *testing.T) {
	c := newTestCache(t, WithCapacity(10))
	for i := 0; i < 50; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	assert.LessOrEqual(t, c.Len(), 10)
}

func TestCache_EvictionPrefersColdEntries(t *testing.T) {
	c := newTestCache(t, WithCapacity(10))
	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	// Heat up k0 so its score dominates the untouched entries.
	for i := 0; i < 20; i++ {
		_, ok := c.Get("k0")
		require.True(t, ok)
	}

	c.Set("overflow", "v")

	_, ok := c.Get("k0")
	assert.True(t, ok, "hot entry should survive eviction")
	_, ok = c.Get("overflow")
	assert.True(t, ok)
}

func TestCache_Delete(t *testing.T) {
	c := newTestCache(t)
	c.Set("k", "v")
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_JanitorSweepsExpired(t *testing.T) {
	c := newTestCache(t, WithJanitorInterval(50*time.Millisecond))
	c.Set("k", "v", 50*time.Millisecond)

	assert.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 20*time.Millisecond, "janitor should remove the expired entry without a Get")
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := New()
	c.Close()
	c.Close()

	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok, "cache stays usable after Close")
}
