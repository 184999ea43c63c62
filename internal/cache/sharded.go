package cache

import (
	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/runbits/internal/resource"
)

const (
	maxShards = 16

	// minShardBytes keeps shards large enough to hold typical entries.
	minShardBytes = 1 << 20
)

// Sharded is an LRU split into independently locked shards.
type Sharded[V any] struct {
	shards []*LRU[V]
}

// NewSharded creates a sharded cache with a total capacity in bytes. Small
// capacities use fewer shards so a single shard can still hold large
// entries.
func NewSharded[V any](capacity int64, rc *resource.Controller) *Sharded[V] {
	n := int(min(maxShards, max(1, capacity/minShardBytes)))
	s := &Sharded[V]{shards: make([]*LRU[V], n)}
	for i := range s.shards {
		s.shards[i] = NewLRU[V](capacity/int64(n), rc)
	}
	return s
}

func (s *Sharded[V]) shard(key string) *LRU[V] {
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

// Get returns the cached value for key.
func (s *Sharded[V]) Get(key string) (V, bool) {
	return s.shard(key).Get(key)
}

// Peek returns the cached value for key without updating statistics.
func (s *Sharded[V]) Peek(key string) (V, bool) {
	return s.shard(key).Peek(key)
}

// Set caches value under key and reports whether it was admitted.
func (s *Sharded[V]) Set(key string, value V, size int64) bool {
	return s.shard(key).Set(key, value, size)
}

// Remove drops key from the cache.
func (s *Sharded[V]) Remove(key string) {
	s.shard(key).Remove(key)
}

// Purge removes every entry.
func (s *Sharded[V]) Purge() {
	for _, sh := range s.shards {
		sh.Purge()
	}
}

// Shards returns the number of shards.
func (s *Sharded[V]) Shards() int {
	return len(s.shards)
}

// Stats aggregates the statistics of all shards.
func (s *Sharded[V]) Stats() Stats {
	var total Stats
	for _, sh := range s.shards {
		st := sh.Stats()
		total.Hits += st.Hits
		total.Misses += st.Misses
		total.Entries += st.Entries
		total.Bytes += st.Bytes
	}
	return total
}
