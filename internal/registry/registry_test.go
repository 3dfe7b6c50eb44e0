package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		r := New[int]()
		r.Add("grid_clear", 1)

		v, ok := r.Get("grid_clear")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		_, ok = r.Get("grid_line")
		assert.False(t, ok)
	})

	t.Run("add replaces", func(t *testing.T) {
		r := New[string]()
		r.Add("flush", "first")
		r.Add("flush", "second")

		v, ok := r.Get("flush")
		require.True(t, ok)
		assert.Equal(t, "second", v)
	})

	t.Run("concurrent readers", func(t *testing.T) {
		r := New[int]()
		r.Add("grid_clear", 42)

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					v, ok := r.Get("grid_clear")
					assert.True(t, ok)
					assert.Equal(t, 42, v)
				}
			}()
		}
		wg.Wait()
	})
}
