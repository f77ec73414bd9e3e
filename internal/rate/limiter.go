// Package rate implementa rate limiting fixed-window por clave, con
// backend Redis (multi-instancia) o memoria.
package rate

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

type Result struct {
	Allowed     bool
	Remaining   int64
	RetryAfter  time.Duration
	WindowTTL   time.Duration
	CurrentHits int64
}

// Policy es el límite de un endpoint: Limit hits por Window.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Limiter cuenta un hit para key bajo la política p.
type Limiter interface {
	Allow(ctx context.Context, key string, p Policy) (Result, error)
}

// RedisLimiter: fixed window sencillo (INCR + EXPIRE)
type RedisLimiter struct {
	Client *rdb.Client
	Prefix string
}

func NewRedisLimiter(client *rdb.Client, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{Client: client, Prefix: prefix}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, p Policy) (Result, error) {
	now := time.Now().UTC()
	winStart := now.Truncate(p.Window)
	redisKey := fmt.Sprintf("%s%s:%s:%d", l.Prefix, p.Name, strings.ReplaceAll(key, " ", "_"), winStart.Unix())

	pipe := l.Client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	// expiry en el primer hit
	if incr.Val() == 1 {
		_ = l.Client.Expire(ctx, redisKey, p.Window).Err()
		ttl = l.Client.TTL(ctx, redisKey)
	}

	return evaluate(incr.Val(), ttl.Val(), p), nil
}

func evaluate(hits int64, ttl time.Duration, p Policy) Result {
	max := int64(p.Limit)
	res := Result{
		Allowed:     hits <= max,
		Remaining:   max - hits,
		CurrentHits: hits,
		WindowTTL:   ttl,
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		// Retry after: resto de la ventana
		res.RetryAfter = ttl
		if res.RetryAfter <= 0 {
			res.RetryAfter = time.Duration(math.Ceil(p.Window.Seconds())) * time.Second
		}
	}
	return res
}
