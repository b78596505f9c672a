package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_InsertWithinBudget(t *testing.T) {
	c := New[string]("test", 3)
	require.NoError(t, c.Insert("A", "valueA", 1))
	require.NoError(t, c.Insert("B", "valueB", 1))
	require.NoError(t, c.Insert("C", "valueC", 1))

	assert.Equal(t, 3, c.Weight())
	assert.Equal(t, 3, c.Budget())
}

func TestCache_DuplicateRejected(t *testing.T) {
	c := New[string]("test", 2)
	require.NoError(t, c.Insert("dupe", "first", 1))
	assert.Equal(t, ErrKeyExists, c.Insert("dupe", "second", 1))

	v, ok := c.Retrieve("dupe")
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string]("test", 2)
	require.NoError(t, c.Insert("evicted", "valueEvicted", 1))
	require.NoError(t, c.Insert("A", "valueA", 1))
	require.NoError(t, c.Insert("B", "valueB", 1))

	_, ok := c.Retrieve("evicted")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Weight())

	for _, key := range []string{"A", "B"} {
		_, ok := c.Retrieve(key)
		assert.True(t, ok, key)
	}
}

func TestCache_RetrieveRefreshesRecency(t *testing.T) {
	c := New[int]("test", 3)
	require.NoError(t, c.Insert("A", 1, 1))
	require.NoError(t, c.Insert("B", 2, 1))
	require.NoError(t, c.Insert("C", 3, 1))

	_, ok := c.Retrieve("A")
	require.True(t, ok)

	require.NoError(t, c.Insert("D", 4, 1))

	_, ok = c.Retrieve("B")
	assert.False(t, ok)
	for _, key := range []string{"A", "C", "D"} {
		_, ok := c.Retrieve(key)
		assert.True(t, ok, key)
	}
}

func TestCache_HeavyEntryEvictsSeveral(t *testing.T) {
	c := New[int]("test", 4)
	require.NoError(t, c.Insert("A", 1, 1))
	require.NoError(t, c.Insert("B", 2, 1))
	require.NoError(t, c.Insert("C", 3, 1))
	require.NoError(t, c.Insert("D", 4, 3))

	assert.Equal(t, 4, c.Weight())
	_, ok := c.Retrieve("C")
	assert.True(t, ok)
	_, ok = c.Retrieve("A")
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c := New[int]("test", 2)
	require.NoError(t, c.Insert("A", 1, 1))
	c.Clear()

	_, ok := c.Retrieve("A")
	assert.False(t, ok)
	assert.Zero(t, c.Weight())
	require.NoError(t, c.Insert("A", 1, 1))
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int]("test", 50)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j)
				_ = c.Insert(key, j, 1)
				c.Retrieve(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Weight(), 50)
}
