package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes tokens before they expire, e.g. on logout
type TokenBlacklist interface {
	// Revoke blacklists a token ID for ttl, normally the token's remaining lifetime
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeOnce blacklists a token ID and reports whether this call did it.
	// Of two concurrent calls for the same ID exactly one gets true.
	RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisTokenBlacklist creates a blacklist on an existing Redis client.
// Keys are "<prefix>token:revoked:<jti>".
func NewRedisTokenBlacklist(client redis.UniversalClient, prefix string) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, keyPrefix: prefix + "token:revoked:"}
}

// Revoke adds a token ID to the blacklist
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeOnce blacklists a token ID with SET NX
func (b *RedisTokenBlacklist) RevokeOnce(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	ok, err := b.client.SetNX(ctx, b.keyPrefix+jti, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return ok, nil
}

// IsRevoked checks if a token ID is blacklisted
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

// InMemoryTokenBlacklist keeps revoked tokens in process memory.
// Only suitable for a single instance.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{revoked: make(map[string]time.Time)}
}

// Revoke adds a token ID to the blacklist
func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for id, exp := range b.revoked {
		if now.After(exp) {
			delete(b.revoked, id)
		}
	}
	b.revoked[jti] = now.Add(ttl)
	return nil
}

// RevokeOnce blacklists a token ID unless it is already blacklisted
func (b *InMemoryTokenBlacklist) RevokeOnce(_ context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if b.revokedLocked(jti, now) {
		return false, nil
	}
	b.revoked[jti] = now.Add(ttl)
	return true, nil
}

// IsRevoked checks if a token ID is blacklisted and not yet expired
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revokedLocked(jti, time.Now()), nil
}

func (b *InMemoryTokenBlacklist) revokedLocked(jti string, now time.Time) bool {
	exp, ok := b.revoked[jti]
	if !ok {
		return false
	}
	if now.After(exp) {
		delete(b.revoked, jti)
		return false
	}
	return true
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)
