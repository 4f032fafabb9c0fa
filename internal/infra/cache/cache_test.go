package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { c.Close() })
	return mr, c
}

type payload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestSetGetJSON(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()

	in := payload{ID: "t1", Name: "Mama Njeri's Shop"}
	require.NoError(t, c.SetJSON(ctx, "tenant:host:duka.vibepos.app", in, time.Minute))

	var out payload
	require.NoError(t, c.GetJSON(ctx, "tenant:host:duka.vibepos.app", &out))
	assert.Equal(t, in, out)
}

func TestGetJSONMiss(t *testing.T) {
	_, c := setupCache(t)

	var out payload
	err := c.GetJSON(context.Background(), "tenant:host:ghost", &out)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestTTLExpiry(t *testing.T) {
	mr, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", payload{ID: "x"}, 30*time.Second))

	mr.FastForward(time.Minute)

	var out payload
	err := c.GetJSON(ctx, "k", &out)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestDelete(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", payload{ID: "x"}, time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	var out payload
	assert.ErrorIs(t, c.GetJSON(ctx, "k", &out), ErrMiss)

	// Deleting an absent key is fine.
	assert.NoError(t, c.Delete(ctx, "nope"))
}

func TestPing(t *testing.T) {
	_, c := setupCache(t)
	assert.NoError(t, c.Ping(context.Background()))
}
