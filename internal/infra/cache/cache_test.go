package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-manager/internal/config"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
)

type view struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	var got view
	ok, err := c.Get(ctx, "dashboard:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "dashboard:1", view{Name: "a", Total: 3}, 0))

	ok, err = c.Get(ctx, "dashboard:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, view{Name: "a", Total: 3}, got)
}

func TestMemory_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	require.NoError(t, c.Set(ctx, "k", view{Name: "x"}, 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	var got view
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	require.NoError(t, c.Set(ctx, "catalog:1:all", 1, 0))
	require.NoError(t, c.Set(ctx, "catalog:1:package", 2, 0))
	require.NoError(t, c.Set(ctx, "catalog:2:all", 3, 0))

	require.NoError(t, c.DeletePrefix(ctx, "catalog:1:"))

	var n int
	ok, _ := c.Get(ctx, "catalog:1:all", &n)
	assert.False(t, ok)
	ok, _ = c.Get(ctx, "catalog:2:all", &n)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	c := New(&config.Config{RedisURL: "not a url", CacheTTL: time.Second}, logger.Discard())
	assert.IsType(t, &Memory{}, c)

	c = New(&config.Config{CacheTTL: time.Second}, logger.Discard())
	assert.IsType(t, &Memory{}, c)
}
