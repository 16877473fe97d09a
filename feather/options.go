package feather

import (
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/hupe1980/rankdb/resource"
)

type options struct {
	rc     *resource.Controller
	mem    memory.Allocator
	logger *slog.Logger
}

// Option configures a Reader.
type Option func(*options)

// WithResourceController sets the controller that bounds decode workers and IO.
// Readers without one decode a single column at a time.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithAllocator sets the Arrow allocator used for record batch buffers.
func WithAllocator(mem memory.Allocator) Option {
	return func(o *options) {
		if mem != nil {
			o.mem = mem
		}
	}
}

// WithLogger sets the logger for read diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		mem:    memory.DefaultAllocator,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
