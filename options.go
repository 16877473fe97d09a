package rankdb

import (
	"log/slog"

	"github.com/hupe1980/rankdb/codec"
	"github.com/hupe1980/rankdb/resource"
)

type options struct {
	codec            codec.Codec
	rc               *resource.Controller
	threads          int
	memoryLimit      int64
	ioLimit          int64
	inMemory         bool
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures how a database is opened.
type Option func(*options)

// WithCodec configures the codec used by Export.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithResourceController shares rc between databases. All databases opened
// with the same controller share its decode budget and memory limit.
//
// Takes precedence over WithThreads, WithMemoryLimit and WithIOLimit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithThreads gives the database a private decode budget of n workers.
// Values below 1 are clamped to 1.
func WithThreads(n int) Option {
	return func(o *options) {
		o.threads = max(n, 1)
	}
}

// WithMemoryLimit bounds the memory memory-resident databases may retain.
// 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithIOLimit bounds the read throughput from the database file in bytes per
// second. 0 means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithInMemory makes Open return a memory-resident database.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring reads.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &rankdb.BasicMetricsCollector{}
//	db, _ := rankdb.Open(path, "hg38", rankdb.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Reads: %d, Avg latency: %dns\n", stats.ReadCount, stats.ReadAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := rankdb.NewJSONLogger(slog.LevelInfo)
//	db, _ := rankdb.Open(path, "hg38", rankdb.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// controller returns the resource controller the options select.
func (o *options) controller() *resource.Controller {
	if o.rc != nil {
		return o.rc
	}
	if o.threads == 0 && o.memoryLimit == 0 && o.ioLimit == 0 {
		return DefaultResourceController()
	}

	threads := o.threads
	if threads == 0 {
		threads = ThreadsFromEnv()
	}
	return resource.NewController(resource.Config{
		DecodeWorkers:      threads,
		MemoryLimitBytes:   o.memoryLimit,
		IOLimitBytesPerSec: o.ioLimit,
	})
}
