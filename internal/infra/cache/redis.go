package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bouncelist/internal/common"
	"bouncelist/internal/domain/blacklist"

	"github.com/redis/go-redis/v9"
)

var _ blacklist.Store = (*CachedStore)(nil)

// CachedStore is a read-through Redis cache in front of a blacklist.Store.
// The sending system consults the blacklist before every dispatch, so
// lookups dominate writes by a wide margin. Cache failures fall back to the
// inner store — Redis being down must never break ingestion or lookups.
type CachedStore struct {
	inner  blacklist.Store
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed cached store wrapping inner.
func New(inner blacklist.Store, addr, password string, db int, ttl time.Duration) *CachedStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &CachedStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

// NewWithClient wraps inner using an existing Redis client. Used by tests.
func NewWithClient(inner blacklist.Store, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl}
}

func cacheKey(tenantID int64, email string) string {
	return fmt.Sprintf("bouncelist:bl:%d:%s", tenantID, email)
}

// Insert writes through to the inner store and, on success or conflict,
// marks the pair as blacklisted so a just-inserted address is visible to
// lookups immediately.
func (c *CachedStore) Insert(ctx context.Context, tenantID int64, email, reason string) error {
	err := c.inner.Insert(ctx, tenantID, email, reason)
	if err == nil || isConflict(err) {
		if setErr := c.client.Set(ctx, cacheKey(tenantID, email), "1", c.ttl).Err(); setErr != nil {
			slog.Warn("blacklist cache write failed", "email", email, "error", setErr)
		}
	}
	return err
}

// Exists answers from the cache when possible and falls back to the inner
// store, caching the result either way.
func (c *CachedStore) Exists(ctx context.Context, tenantID int64, email string) (bool, error) {
	key := cacheKey(tenantID, email)

	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return val == "1", nil
	case err != redis.Nil:
		slog.Warn("blacklist cache read failed", "email", email, "error", err)
	}

	exists, err := c.inner.Exists(ctx, tenantID, email)
	if err != nil {
		return false, err
	}

	cached := "0"
	if exists {
		cached = "1"
	}
	if setErr := c.client.Set(ctx, key, cached, c.ttl).Err(); setErr != nil {
		slog.Warn("blacklist cache write failed", "email", email, "error", setErr)
	}

	return exists, nil
}

// Close closes the Redis connection. The inner store is owned by the caller.
func (c *CachedStore) Close() error {
	return c.client.Close()
}

func isConflict(err error) bool {
	var conflict *common.ConflictError
	return errors.As(err, &conflict)
}
