package rankdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseThreads(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"8", 8},
		{"1", 1},
		{"0", 1},
		{"-3", 1},
		{"abc", DefaultThreads},
		{"", DefaultThreads},
		{"2.5", DefaultThreads},
		{" 6 ", 6},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseThreads(tt.in))
		})
	}
}

func TestThreadsFromEnv(t *testing.T) {
	t.Setenv(EnvThreads, "8")
	assert.Equal(t, 8, ThreadsFromEnv())

	t.Setenv(EnvThreads, "0")
	assert.Equal(t, 1, ThreadsFromEnv())

	t.Setenv(EnvThreads, "abc")
	assert.Equal(t, 4, ThreadsFromEnv())
}

func TestNewResourceController(t *testing.T) {
	assert.Equal(t, 8, NewResourceController(8).DecodeWorkers())
	assert.Equal(t, 1, NewResourceController(0).DecodeWorkers())
	assert.Equal(t, 1, NewResourceController(-3).DecodeWorkers())
}

func TestOptionsController(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		o := applyOptions(nil)
		assert.Same(t, DefaultResourceController(), o.controller())
		assert.GreaterOrEqual(t, o.controller().DecodeWorkers(), 1)
	})

	t.Run("Threads", func(t *testing.T) {
		o := applyOptions([]Option{WithThreads(3)})
		assert.Equal(t, 3, o.controller().DecodeWorkers())

		o = applyOptions([]Option{WithThreads(-1)})
		assert.Equal(t, 1, o.controller().DecodeWorkers())
	})

	t.Run("MemoryLimit", func(t *testing.T) {
		o := applyOptions([]Option{WithMemoryLimit(1024)})
		assert.Equal(t, int64(1024), o.controller().MemoryLimit())
	})

	t.Run("SharedControllerWins", func(t *testing.T) {
		rc := NewResourceController(2)
		o := applyOptions([]Option{WithThreads(7), WithResourceController(rc)})
		assert.Same(t, rc, o.controller())
	})
}
