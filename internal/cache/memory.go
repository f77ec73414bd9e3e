package cache

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory implementa Client sobre go-cache.
type Memory struct {
	prefix string
	c      *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemory crea un cache en memoria. defaultTTL <= 0 no expira.
func NewMemory(prefix string, defaultTTL time.Duration) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &Memory{prefix: prefix, c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Memory) key(k string) string { return m.prefix + k }

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.c.Get(m.key(key))
	if !ok {
		m.misses.Add(1)
		return "", ErrNotFound
	}
	m.hits.Add(1)
	s, _ := v.(string)
	return s, nil
}

func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(m.key(key), value, ttl)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.c.Delete(m.key(key))
	return nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.c.Get(m.key(key))
	return ok, nil
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close() error {
	m.c.Flush()
	return nil
}

func (m *Memory) Stats(ctx context.Context) (Stats, error) {
	return Stats{
		Driver: "memory",
		Keys:   int64(m.c.ItemCount()),
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
	}, nil
}

// Incr incrementa un contador entero. Si la key no existe la crea en 1
// con el ttl dado. Lo usa el rate limiter en memoria.
func (m *Memory) Incr(key string, ttl time.Duration) (int64, time.Time) {
	k := m.key(key)
	n, err := m.c.IncrementInt64(k, 1)
	if err != nil {
		// No existe (o expiró): arrancar la ventana.
		if addErr := m.c.Add(k, int64(1), ttl); addErr == nil {
			return 1, time.Now().Add(ttl)
		}
		n, _ = m.c.IncrementInt64(k, 1)
	}
	_, exp, _ := m.c.GetWithExpiration(k)
	return n, exp
}
