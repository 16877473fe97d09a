package rankdb

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/hupe1980/rankdb/resource"
)

const (
	// EnvThreads names the environment variable holding the decode thread budget.
	EnvThreads = "RANKDB_THREADS"
	// DefaultThreads is the budget used when EnvThreads is unset or not a number.
	DefaultThreads = 4
)

// ParseThreads parses a thread budget. Values that are not integers fall back
// to DefaultThreads; values below 1 are clamped to 1.
func ParseThreads(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultThreads
	}
	return max(n, 1)
}

// ThreadsFromEnv returns the thread budget configured in EnvThreads.
func ThreadsFromEnv() int {
	return ParseThreads(os.Getenv(EnvThreads))
}

// NewResourceController returns a controller bounding column decoding to
// threads workers. Pass it to every Open with WithResourceController to share
// one budget across the process.
func NewResourceController(threads int) *resource.Controller {
	return resource.NewController(resource.Config{
		DecodeWorkers: max(threads, 1),
	})
}

var defaultController = sync.OnceValue(func() *resource.Controller {
	return NewResourceController(ThreadsFromEnv())
})

// DefaultResourceController returns the controller used by databases opened
// without one. It is created from ThreadsFromEnv on first use; later changes
// to the environment have no effect.
func DefaultResourceController() *resource.Controller {
	return defaultController()
}
