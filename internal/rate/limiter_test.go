package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter()
	p := Policy{Name: "login", Limit: 2, Window: time.Minute}

	r1, err := l.Allow(ctx, "1.2.3.4", p)
	require.NoError(t, err)
	assert.True(t, r1.Allowed)
	assert.Equal(t, int64(1), r1.Remaining)

	r2, _ := l.Allow(ctx, "1.2.3.4", p)
	assert.True(t, r2.Allowed)
	assert.Equal(t, int64(0), r2.Remaining)

	r3, _ := l.Allow(ctx, "1.2.3.4", p)
	assert.False(t, r3.Allowed)
	assert.Equal(t, int64(3), r3.CurrentHits)
	assert.Greater(t, r3.RetryAfter, time.Duration(0))

	// otra clave y otra política no comparten contador
	r4, _ := l.Allow(ctx, "5.6.7.8", p)
	assert.True(t, r4.Allowed)
	r5, _ := l.Allow(ctx, "1.2.3.4", Policy{Name: "apply", Limit: 1, Window: time.Minute})
	assert.True(t, r5.Allowed)
}

func TestMemoryLimiter_WindowReset(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter()
	p := Policy{Name: "apply", Limit: 1, Window: 30 * time.Millisecond}

	r, _ := l.Allow(ctx, "k", p)
	assert.True(t, r.Allowed)
	r, _ = l.Allow(ctx, "k", p)
	assert.False(t, r.Allowed)

	time.Sleep(60 * time.Millisecond)
	r, _ = l.Allow(ctx, "k", p)
	assert.True(t, r.Allowed)
}

func TestEvaluate_RetryAfterFallback(t *testing.T) {
	res := evaluate(5, -1, Policy{Limit: 3, Window: 1500 * time.Millisecond})
	assert.False(t, res.Allowed)
	assert.Equal(t, 2*time.Second, res.RetryAfter)
	assert.Equal(t, int64(0), res.Remaining)
}
