package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	pool, err := reg.Get(ctx, "shots", Config{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, pool.Status())

	// the same name returns the same pool, the new config is ignored
	again, err := reg.Get(ctx, "shots", Config{Workers: 8, RateLimit: 1})
	require.NoError(t, err)
	assert.Same(t, pool, again)

	other, err := reg.Get(ctx, "headers", Config{Synchronous: true})
	require.NoError(t, err)
	assert.NotSame(t, pool, other)
}

func TestRegistryGetInvalidConfig(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get(context.Background(), "bad", Config{Workers: 0})

	assert.Error(t, err)

	_, ok := reg.Lookup("bad")
	assert.False(t, ok)
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()

	_, ok := reg.Lookup("shots")
	assert.False(t, ok)

	pool, err := reg.Get(context.Background(), "shots", Config{Workers: 1})
	require.NoError(t, err)

	found, ok := reg.Lookup("shots")
	require.True(t, ok)
	assert.Same(t, pool, found)
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry()

	pool, err := reg.Get(context.Background(), "shots", Config{Workers: 1})
	require.NoError(t, err)

	require.NoError(t, reg.Remove("shots"))
	assert.Equal(t, StatusStopped, pool.Status())

	_, ok := reg.Lookup("shots")
	assert.False(t, ok)

	// removing an unknown name is fine
	assert.NoError(t, reg.Remove("shots"))
}

func TestRegistryStopAll(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()

	first, err := reg.Get(ctx, "shots", Config{Workers: 1})
	require.NoError(t, err)
	second, err := reg.Get(ctx, "headers", Config{Workers: 1})
	require.NoError(t, err)

	require.NoError(t, reg.StopAll())

	assert.Equal(t, StatusStopped, first.Status())
	assert.Equal(t, StatusStopped, second.Status())

	_, ok := reg.Lookup("shots")
	assert.False(t, ok)
	_, ok = reg.Lookup("headers")
	assert.False(t, ok)
}
