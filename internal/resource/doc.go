// Package resource bounds the memory, concurrency and IO bandwidth a catalog
// may use.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:     256 << 20, // decoded bitsets held by caches
//	    MaxBackgroundWorkers: 4,         // parallel SaveAll/LoadAll slots
//	    IOLimitBytesPerSec:   50 << 20,  // blob bytes read or written
//	})
//
// AcquireMemory never blocks; callers decide what to do when the limit is
// reached (the cache declines the entry). AcquireBackground and AcquireIO
// block until the slot or tokens are available or ctx is done.
//
// All methods are safe for concurrent use, and a nil *Controller is valid and
// imposes no limits.
package resource
