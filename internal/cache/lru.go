package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/runbits/internal/resource"
)

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
	Bytes   int64
}

// LRU is a byte-bounded least-recently-used cache.
type LRU[V any] struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	items     map[string]*list.Element
	evictList *list.List
	rc        *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[V any] struct {
	key   string
	value V
	size  int64
}

// NewLRU creates a cache holding at most capacity bytes.
// If rc is provided, it will be used to track memory usage.
func NewLRU[V any](capacity int64, rc *resource.Controller) *LRU[V] {
	return &LRU[V]{
		capacity:  capacity,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// Get returns the cached value for key.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(el)
		return el.Value.(*entry[V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Peek returns the cached value for key without touching recency or the
// hit and miss counters.
func (c *LRU[V]) Peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		return el.Value.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

// Set caches value under key, charging size bytes. It reports whether the
// value was admitted.
func (c *LRU[V]) Set(key string, value V, size int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
	if size > c.capacity {
		return false
	}

	// Evict locally first so released memory is visible to the controller.
	for c.size+size > c.capacity {
		el := c.evictList.Back()
		if el == nil {
			break
		}
		c.removeElement(el)
	}

	if c.rc != nil {
		if err := c.rc.AcquireMemory(size); err != nil {
			return false
		}
	}

	c.items[key] = c.evictList.PushFront(&entry[V]{key: key, value: value, size: size})
	c.size += size
	return true
}

// Remove drops key from the cache.
func (c *LRU[V]) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Invalidate removes entries matching the predicate.
func (c *LRU[V]) Invalidate(predicate func(key string) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, el := range c.items {
		if predicate(key) {
			c.removeElement(el)
		}
	}
}

// Purge removes every entry.
func (c *LRU[V]) Purge() {
	c.Invalidate(func(string) bool { return true })
}

// Stats returns hit and miss counters and current usage.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: len(c.items),
		Bytes:   c.size,
	}
}

// Size returns the current size of the cache in bytes.
func (c *LRU[V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *LRU[V]) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	e := el.Value.(*entry[V])
	delete(c.items, e.key)
	c.size -= e.size
	if c.rc != nil {
		c.rc.ReleaseMemory(e.size)
	}
}
