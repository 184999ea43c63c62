package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/runbits/internal/resource"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[string](100, nil)

	_, ok := c.Get("a")
	assert.False(t, ok)

	require.True(t, c.Set("a", "alpha", 10))
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)

	st := c.Stats()
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1, Bytes: 10}, st)
}

func TestLRU_PeekLeavesStatsAndRecency(t *testing.T) {
	c := NewLRU[int](20, nil)
	require.True(t, c.Set("a", 1, 10))
	require.True(t, c.Set("b", 2, 10))

	v, ok := c.Peek("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = c.Peek("missing")
	assert.False(t, ok)
	assert.Equal(t, Stats{Entries: 2, Bytes: 20}, c.Stats())

	// "a" is still least recent and goes first.
	require.True(t, c.Set("c", 3, 10))
	_, ok = c.Peek("a")
	assert.False(t, ok)
	_, ok = c.Peek("b")
	assert.True(t, ok)
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[int](30, nil)

	c.Set("a", 1, 10)
	c.Set("b", 2, 10)
	c.Set("c", 3, 10)
	_, _ = c.Get("a") // a becomes most recent

	c.Set("d", 4, 10) // evicts b
	_, ok := c.Get("b")
	assert.False(t, ok)
	for _, k := range []string{"a", "c", "d"} {
		_, ok := c.Get(k)
		assert.True(t, ok, k)
	}
	assert.Equal(t, int64(30), c.Size())
}

func TestLRU_EdgeCases(t *testing.T) {
	c := NewLRU[[]byte](50, nil)

	assert.False(t, c.Set("big", make([]byte, 60), 60), "item > capacity is not cached")
	_, ok := c.Get("big")
	assert.False(t, ok)

	c.Set("k", nil, 10)
	c.Set("k", nil, 20)
	assert.Equal(t, int64(20), c.Size())
	c.Set("k", nil, 5)
	assert.Equal(t, int64(5), c.Size())
	assert.Equal(t, 1, c.Stats().Entries)

	// Replacing with an oversized value drops the old one.
	assert.False(t, c.Set("k", nil, 51))
	assert.Zero(t, c.Size())
}

func TestLRU_ResourceController(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 10})
	c := NewLRU[int](50, rc)

	require.True(t, c.Set("a", 1, 8))
	assert.Equal(t, int64(8), rc.MemoryUsage())

	assert.False(t, c.Set("b", 2, 4), "global limit denies admission")
	assert.Equal(t, int64(8), rc.MemoryUsage())

	c.Remove("a")
	assert.Zero(t, rc.MemoryUsage())
	require.True(t, c.Set("b", 2, 4))

	c.Purge()
	assert.Zero(t, rc.MemoryUsage())
	assert.Zero(t, c.Stats().Entries)
}

func TestLRU_Invalidate(t *testing.T) {
	c := NewLRU[int](100, nil)
	c.Set("team/a", 1, 1)
	c.Set("team/b", 2, 1)
	c.Set("other", 3, 1)

	c.Invalidate(func(k string) bool { return len(k) > 5 && k[:5] == "team/" })
	assert.Equal(t, 1, c.Stats().Entries)
	_, ok := c.Get("other")
	assert.True(t, ok)
}

func TestSharded(t *testing.T) {
	assert.Equal(t, 1, NewSharded[int](1024, nil).Shards())
	assert.Equal(t, 4, NewSharded[int](4<<20, nil).Shards())
	assert.Equal(t, maxShards, NewSharded[int](1<<30, nil).Shards())

	s := NewSharded[int](64<<20, nil)
	for i := range 1000 {
		require.True(t, s.Set(fmt.Sprintf("bitset-%d", i), i, 1024))
	}

	nonEmpty := 0
	for _, sh := range s.shards {
		if sh.Stats().Entries > 0 {
			nonEmpty++
		}
	}
	assert.Greater(t, nonEmpty, maxShards/2, "poor shard distribution")

	v, ok := s.Get("bitset-7")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	s.Remove("bitset-7")
	_, ok = s.Get("bitset-7")
	assert.False(t, ok)

	st := s.Stats()
	assert.Equal(t, 999, st.Entries)
	assert.Equal(t, int64(999*1024), st.Bytes)
	assert.Equal(t, int64(1), st.Hits)
	assert.Equal(t, int64(1), st.Misses)

	s.Purge()
	assert.Zero(t, s.Stats().Entries)
}

func TestSharded_Concurrent(t *testing.T) {
	s := NewSharded[int](1<<20, nil)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := fmt.Sprintf("k%d", (g*200+i)%300)
				s.Set(key, i, 64)
				s.Get(key)
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Stats().Bytes, int64(1<<20))
}
