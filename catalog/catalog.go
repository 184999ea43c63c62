package catalog

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/runbits"
	"github.com/hupe1980/runbits/blobstore"
	"github.com/hupe1980/runbits/codec"
	"github.com/hupe1980/runbits/internal/cache"
	"github.com/hupe1980/runbits/internal/resource"
)

// Suffix is appended to a bitset name to form its blob key.
const Suffix = ".rlb"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)

// ValidateName reports whether name may be used as a bitset name.
func ValidateName(name string) error {
	switch {
	case !namePattern.MatchString(name):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q contains \"..\"", ErrInvalidName, name)
	case strings.HasPrefix(name, "/"):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidName, name)
	}
	return nil
}

// entry is a cached decoded bitset. It is never mutated after insertion.
type entry struct {
	bs          *runbits.Bitset
	fingerprint uint64
}

// Stats describes the catalog cache.
type Stats struct {
	Hits        int64
	Misses      int64
	Entries     int
	Bytes       int64
	MemoryUsage int64
}

// Catalog saves and loads named bitsets. It is safe for concurrent use.
type Catalog struct {
	store blobstore.BlobStore
	opts  options
	rc    *resource.Controller
	cache *cache.Sharded[*entry] // nil when caching is disabled
}

// New creates a catalog over store.
func New(store blobstore.BlobStore, opts ...Option) *Catalog {
	o := applyOptions(opts)
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:     o.memoryLimit,
		MaxBackgroundWorkers: int64(o.concurrency),
		IOLimitBytesPerSec:   o.ioLimit,
	})

	c := &Catalog{store: store, opts: o, rc: rc}
	if o.cacheBytes > 0 {
		c.cache = cache.NewSharded[*entry](o.cacheBytes, rc)
	}
	return c
}

// Store returns the underlying blob store.
func (c *Catalog) Store() blobstore.BlobStore {
	return c.store
}

func key(name string) string {
	return name + Suffix
}

// Save encodes bs and stores it under name.
func (c *Catalog) Save(ctx context.Context, name string, bs *runbits.Bitset) (err error) {
	start := time.Now()
	written := 0
	defer func() {
		c.opts.metricsCollector.RecordSave(written, time.Since(start), err)
		c.opts.logger.LogSave(ctx, name, written, c.opts.compression, err)
	}()

	if err := ValidateName(name); err != nil {
		return opError("save", name, err)
	}
	if bs == nil {
		bs = runbits.New(0)
	}

	fp := bs.Fingerprint()
	// Peek so the fingerprint check does not count as a read.
	if c.cache != nil {
		if e, ok := c.cache.Peek(name); ok && e.fingerprint == fp {
			return nil
		}
	}

	data, err := codec.Encode(bs, c.opts.compression)
	if err != nil {
		return opError("save", name, err)
	}
	if err := c.rc.AcquireIO(ctx, len(data)); err != nil {
		return opError("save", name, err)
	}
	if err := c.store.Put(ctx, key(name), data); err != nil {
		return opError("save", name, err)
	}
	written = len(data)

	c.remember(name, bs.Clone(), fp)
	return nil
}

// Load returns a copy of the bitset stored under name.
func (c *Catalog) Load(ctx context.Context, name string) (_ *runbits.Bitset, err error) {
	start := time.Now()
	read, cached := 0, false
	defer func() {
		c.opts.metricsCollector.RecordLoad(read, cached, time.Since(start), err)
		c.opts.logger.LogLoad(ctx, name, read, cached, err)
	}()

	if err := ValidateName(name); err != nil {
		return nil, opError("load", name, err)
	}
	if c.cache != nil {
		if e, ok := c.cache.Get(name); ok {
			cached = true
			return e.bs.Clone(), nil
		}
	}

	data, err := c.read(ctx, key(name))
	if err != nil {
		return nil, opError("load", name, err)
	}
	read = len(data)

	bs, err := codec.Decode(data)
	if err != nil {
		return nil, opError("load", name, err)
	}

	c.remember(name, bs.Clone(), bs.Fingerprint())
	return bs, nil
}

func (c *Catalog) read(ctx context.Context, key string) ([]byte, error) {
	blob, err := c.store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	if err := c.rc.AcquireIO(ctx, int(blob.Size())); err != nil {
		return nil, err
	}
	return blobstore.ReadAll(ctx, blob)
}

func (c *Catalog) remember(name string, bs *runbits.Bitset, fp uint64) {
	if c.cache == nil {
		return
	}
	if !c.cache.Set(name, &entry{bs: bs, fingerprint: fp}, int64(bs.SizeInBytes())) {
		// A stale entry must not survive a declined update.
		c.cache.Remove(name)
	}
}

// Delete removes the bitset stored under name.
func (c *Catalog) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() {
		c.opts.metricsCollector.RecordDelete(time.Since(start), err)
		c.opts.logger.LogDelete(ctx, name, err)
	}()

	if err := ValidateName(name); err != nil {
		return opError("delete", name, err)
	}
	if c.cache != nil {
		c.cache.Remove(name)
	}
	return opError("delete", name, c.store.Delete(ctx, key(name)))
}

// List returns the sorted names of all stored bitsets.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	keys, err := c.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if name, ok := strings.CutSuffix(k, Suffix); ok && ValidateName(name) == nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// SaveAll saves every bitset in sets, running up to the configured
// concurrency in parallel. All names are validated before anything is
// written. It returns the first error encountered.
func (c *Catalog) SaveAll(ctx context.Context, sets map[string]*runbits.Bitset) error {
	for name := range sets {
		if err := ValidateName(name); err != nil {
			return opError("save", name, err)
		}
	}

	var failed atomic.Int64
	err := c.forEach(ctx, slices.Sorted(maps.Keys(sets)), func(ctx context.Context, name string) error {
		if err := c.Save(ctx, name, sets[name]); err != nil {
			failed.Add(1)
			return err
		}
		return nil
	})
	c.opts.logger.LogBatch(ctx, "save", len(sets), int(failed.Load()))
	return err
}

// LoadAll loads the named bitsets in parallel. It returns the first error
// encountered and no partial result.
func (c *Catalog) LoadAll(ctx context.Context, names []string) (map[string]*runbits.Bitset, error) {
	var (
		mu     sync.Mutex
		out    = make(map[string]*runbits.Bitset, len(names))
		failed atomic.Int64
	)
	err := c.forEach(ctx, names, func(ctx context.Context, name string) error {
		bs, err := c.Load(ctx, name)
		if err != nil {
			failed.Add(1)
			return err
		}
		mu.Lock()
		out[name] = bs
		mu.Unlock()
		return nil
	})
	c.opts.logger.LogBatch(ctx, "load", len(names), int(failed.Load()))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forEach runs fn for every name, holding a background slot per call.
func (c *Catalog) forEach(ctx context.Context, names []string, fn func(context.Context, string) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.concurrency)
	for _, name := range names {
		g.Go(func() error {
			if err := c.rc.AcquireBackground(ctx); err != nil {
				return err
			}
			defer c.rc.ReleaseBackground()
			return fn(ctx, name)
		})
	}
	return g.Wait()
}

// Stats returns cache statistics. The zero value is returned when caching
// is disabled.
func (c *Catalog) Stats() Stats {
	st := Stats{MemoryUsage: c.rc.MemoryUsage()}
	if c.cache == nil {
		return st
	}
	cs := c.cache.Stats()
	st.Hits, st.Misses, st.Entries, st.Bytes = cs.Hits, cs.Misses, cs.Entries, cs.Bytes
	return st
}
