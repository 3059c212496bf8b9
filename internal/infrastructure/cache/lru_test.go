package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_Eviction(t *testing.T) {
	cache := NewLRU[string, int](2)

	cache.Set("a", 1)
	cache.Set("b", 2)
	// Order: [b, a]

	cache.Get("a")
	// Order: [a, b]

	cache.Set("c", 3)

	val, ok := cache.Get("a")
	assert.True(t, ok, "a should still exist")
	assert.Equal(t, 1, val)

	_, ok = cache.Get("b")
	assert.False(t, ok, "b should have been evicted")
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, 1, cache.Stats().Evictions)
}

func TestLRU_UpdateExisting(t *testing.T) {
	cache := NewLRU[string, int](2)

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Set("a", 100)

	val, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 100, val)
	assert.Equal(t, 2, cache.Len())
}

func TestLRU_ZeroCapacity(t *testing.T) {
	cache := NewLRU[string, int](0)

	cache.Set("a", 1)
	cache.Set("b", 2)
	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Len())
}

func TestLRU_GetOrAdd(t *testing.T) {
	cache := NewLRU[string, int](4)
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := cache.GetOrAdd("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = cache.GetOrAdd("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = cache.GetOrAdd("bad", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, cache.Len(), "failed values are not cached")

	assert.Equal(t, Stats{Hits: 1, Misses: 2}, cache.Stats())
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	cache := NewLRU[int, int](50)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			cache.Set(i, i*10)
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = cache.GetOrAdd(i%10, func() (int, error) { return i, nil })
		}(i)
	}
	wg.Wait()

	require.LessOrEqual(t, cache.Len(), 50)
}
