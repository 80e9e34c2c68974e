package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddGet(t *testing.T) {
	c := New[string, int](4, nil)

	c.Add("a", 1)
	c.Add("b", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestEvictsColdestEntry(t *testing.T) {
	evicted := map[string]int{}
	c := New[string, int](2, func(key string, val int) {
		evicted[key] = val
	})

	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a") // "a" is now warmer than "b"
	c.Add("c", 3)

	assert.Equal(t, map[string]int{"b": 2}, evicted)
	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestDelAndClear(t *testing.T) {
	c := New[string, int](4, nil)
	c.Add("a", 1)
	c.Add("b", 2)

	c.Del("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestFlushInvokesCallback(t *testing.T) {
	evicted := map[string]int{}
	c := New[string, int](4, func(key string, val int) {
		evicted[key] = val
	})
	c.Add("a", 1)
	c.Add("b", 2)

	c.Flush()
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, evicted)
	assert.Equal(t, 0, c.Len())
}
