package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter admits or rejects an action under a fixed-window counter: the
// first call in a window starts the counter with TTL = window, later calls
// increment it, and admission stops once the counter passes the limit. Fixed
// windows can admit up to twice the limit across a window boundary; that
// imprecision is intentional and buys O(1) checks.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RedisRateLimiter shares counters across service instances via INCR+EXPIRE.
type RedisRateLimiter struct {
	Client *redis.Client
}

func rateKey(key string) string { return "ratelimit:" + key }

func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.Client.Incr(ctx, rateKey(key)).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		r.Client.Expire(ctx, rateKey(key), window)
	}
	return count <= int64(limit), nil
}

// MemoryRateLimiter is the single-process fallback with the same window
// semantics.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time
}

type rateWindow struct {
	count     int
	expiresAt time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

func (r *MemoryRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows[key]
	if !ok || now.After(w.expiresAt) {
		r.windows[key] = &rateWindow{count: 1, expiresAt: now.Add(window)}
		return true, nil
	}

	w.count++
	return w.count <= limit, nil
}
