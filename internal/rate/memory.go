package rate

import (
	"context"
	"strings"
	"time"

	"github.com/dropDatabas3/dealerdesk/internal/cache"
)

// MemoryLimiter guarda los contadores en un cache.Memory. Sirve para una
// sola instancia; con varias réplicas usar RedisLimiter.
type MemoryLimiter struct {
	store *cache.Memory
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{store: cache.NewMemory("rl:", time.Minute)}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string, p Policy) (Result, error) {
	k := p.Name + ":" + strings.ReplaceAll(key, " ", "_")
	hits, exp := l.store.Incr(k, p.Window)

	ttl := time.Until(exp)
	if exp.IsZero() || ttl < 0 {
		ttl = 0
	}
	return evaluate(hits, ttl, p), nil
}
