// Package catalog stores named bitsets in a blobstore.BlobStore.
//
// Each bitset is framed by package codec and kept under its name plus the
// ".rlb" suffix. Decoded bitsets are cached in a byte-bounded LRU, and a
// resource.Controller bounds cache memory, batch concurrency and blob IO.
//
//	cat := catalog.New(blobstore.NewLocalStore("/var/lib/runbits"),
//	    catalog.WithCompression(codec.Zstd),
//	    catalog.WithCacheBytes(128<<20),
//	)
//	if err := cat.Save(ctx, "visits/2024-06-01", bs); err != nil { ... }
//	bs, err := cat.Load(ctx, "visits/2024-06-01")
//
// Load always returns a private copy, so callers may mutate the result
// without affecting the cache. Save skips the upload when the bitset's
// fingerprint matches the cached copy.
package catalog
