package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New(true)
	defer c.Close()

	etag := c.Set("leaderboard:boys", []byte(`{"a":1}`), time.Minute)
	data, got, ok := c.Get("leaderboard:boys")
	require.True(t, ok)
	assert.Equal(t, etag, got)
	assert.JSONEq(t, `{"a":1}`, string(data))

	c.Set("stale", []byte("x"), -time.Second)
	_, _, ok = c.Get("stale")
	assert.False(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	assert.Equal(t, ComputeETag([]byte("v")), etag)
	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheFlush(t *testing.T) {
	c := New(true)
	defer c.Close()

	c.Set("leaderboard:boys", []byte("1"), time.Minute)
	c.Set("leaderboard:girls", []byte("2"), time.Minute)
	c.Set("players:boys", []byte("3"), time.Minute)

	assert.Equal(t, 2, c.Flush("leaderboard:"))
	_, _, ok := c.Get("players:boys")
	assert.True(t, ok)

	assert.Equal(t, 1, c.Flush(""))
	assert.Equal(t, 0, c.Stats()["total_keys"])
	assert.Equal(t, 2, c.Stats()["flushes"])
}

func TestComputeETagStable(t *testing.T) {
	a := ComputeETag([]byte("same"))
	assert.Equal(t, a, ComputeETag([]byte("same")))
	assert.NotEqual(t, a, ComputeETag([]byte("other")))
	assert.Regexp(t, `^W/"[0-9a-f]{16}"$`, a)
}

func TestCheckETagMatch(t *testing.T) {
	tag := `W/"abc"`
	assert.False(t, CheckETagMatch("", tag))
	assert.True(t, CheckETagMatch("*", tag))
	assert.True(t, CheckETagMatch(tag, tag))
	assert.True(t, CheckETagMatch(`W/"zzz", W/"abc"`, tag))
	assert.False(t, CheckETagMatch(`W/"zzz"`, tag))
}
