package catalog

import (
	"log/slog"

	"github.com/hupe1980/runbits/codec"
)

const (
	defaultCacheBytes  = 64 << 20
	defaultConcurrency = 4
)

type options struct {
	compression      codec.Compression
	logger           *Logger
	metricsCollector MetricsCollector
	cacheBytes       int64
	ioLimit          int64
	memoryLimit      int64
	concurrency      int
}

// Option configures a Catalog.
type Option func(*options)

// WithCompression selects the frame compression used by Save.
// Default: codec.Zstd.
func WithCompression(c codec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel installs a text logger at the given level on stderr.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(nil, level)
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithCacheBytes bounds the decoded-bitset cache. 0 disables caching.
// Default: 64MB.
func WithCacheBytes(n int64) Option {
	return func(o *options) {
		o.cacheBytes = max(n, 0)
	}
}

// WithIOLimit caps blob reads and writes at bytesPerSec. 0 means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = max(bytesPerSec, 0)
	}
}

// WithMemoryLimit caps the memory the cache may hold across all shards.
// 0 means the cache size is the only bound.
func WithMemoryLimit(n int64) Option {
	return func(o *options) {
		o.memoryLimit = max(n, 0)
	}
}

// WithConcurrency sets how many bitsets SaveAll and LoadAll process at once.
// Default: 4.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func applyOptions(opts []Option) options {
	o := options{
		compression:      codec.Zstd,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		cacheBytes:       defaultCacheBytes,
		concurrency:      defaultConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency <= 0 {
		o.concurrency = 1
	}
	return o
}
