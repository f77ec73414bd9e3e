package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("t:", time.Minute)

	_, err := c.Get(ctx, "missing")
	assert.True(t, IsNotFound(err))

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "k"))
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory", st.Driver)
	assert.Equal(t, int64(1), st.Hits)
	assert.Equal(t, int64(1), st.Misses)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("", time.Minute)

	require.NoError(t, c.Set(ctx, "short", "x", 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("", time.Minute)

	type payload struct {
		Total int `json:"total"`
	}
	require.NoError(t, SetJSON(ctx, c, "stats", payload{Total: 7}, 0))

	var out payload
	require.NoError(t, GetJSON(ctx, c, "stats", &out))
	assert.Equal(t, 7, out.Total)
}

func TestMemory_Incr(t *testing.T) {
	c := NewMemory("rl:", time.Minute)

	n, exp := c.Incr("ip", time.Second)
	assert.Equal(t, int64(1), n)
	assert.WithinDuration(t, time.Now().Add(time.Second), exp, 200*time.Millisecond)

	n, _ = c.Incr("ip", time.Second)
	assert.Equal(t, int64(2), n)
}
