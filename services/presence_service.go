package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PresenceStore tracks which users currently hold a live real-time
// connection. Entries expire after a TTL, so an ungraceful disconnect heals
// itself within one window; MarkOffline is a best-effort fast path for
// graceful disconnects. A user's own connections are the only writers of
// their key, so no cross-user coordination is needed.
type PresenceStore interface {
	MarkOnline(ctx context.Context, userID string) error
	MarkOffline(ctx context.Context, userID string) error
	IsOnline(ctx context.Context, userID string) (bool, error)
}

// RedisPresence keeps presence in Redis so presence survives process
// restarts and is shared across service instances.
type RedisPresence struct {
	Client *redis.Client
	TTL    time.Duration
}

func presenceKey(userID string) string { return "presence:" + userID }

func (p *RedisPresence) MarkOnline(ctx context.Context, userID string) error {
	return p.Client.Set(ctx, presenceKey(userID), "1", p.TTL).Err()
}

func (p *RedisPresence) MarkOffline(ctx context.Context, userID string) error {
	return p.Client.Del(ctx, presenceKey(userID)).Err()
}

func (p *RedisPresence) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := p.Client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryPresence is the in-process fallback used in tests and redis-less
// runs. Same TTL semantics as RedisPresence.
type MemoryPresence struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryPresence(ttl time.Duration) *MemoryPresence {
	return &MemoryPresence{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (p *MemoryPresence) MarkOnline(ctx context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[userID] = p.now().Add(p.ttl)
	return nil
}

func (p *MemoryPresence) MarkOffline(ctx context.Context, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, userID)
	return nil
}

func (p *MemoryPresence) IsOnline(ctx context.Context, userID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	expiresAt, ok := p.entries[userID]
	if !ok {
		return false, nil
	}
	if p.now().After(expiresAt) {
		delete(p.entries, userID)
		return false, nil
	}
	return true, nil
}
