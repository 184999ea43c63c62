// Package cache provides a byte-bounded LRU cache for decoded values.
//
// The catalog keeps recently loaded bitsets in a Sharded cache keyed by
// blob name. Each entry is charged its reported size against the shard
// capacity and, when a resource.Controller is attached, against the global
// memory limit. Entries that do not fit are simply not cached.
//
// Sharded spreads keys over independent LRU shards with xxhash so
// concurrent loads of different names rarely contend on a lock.
package cache
