package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShantenCacheGetMissBeforeSet(t *testing.T) {
	c, err := NewShantenCache()
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get("no-such-key")
	assert.False(t, ok)
}

func TestShantenCacheSetThenGetRoundTrips(t *testing.T) {
	c, err := NewShantenCache()
	require.NoError(t, err)
	defer c.Close()

	c.Set("1111222233330/0", 2)
	c.Wait()

	v, ok := c.Get("1111222233330/0")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestShantenCacheOverwritesExistingKey(t *testing.T) {
	c, err := NewShantenCache()
	require.NoError(t, err)
	defer c.Close()

	c.Set("key", 5)
	c.Wait()
	c.Set("key", 1)
	c.Wait()

	v, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}
