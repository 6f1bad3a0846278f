package permission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cnft/pkg/domain"
)

const permissionKeyPrefix = "cnft:perm:"

// Store is the permission relation the cache decorates.
type Store interface {
	Grant(ctx context.Context, id domain.TokenID, viewer domain.Address) error
	Revoke(ctx context.Context, id domain.TokenID, viewer domain.Address) error
	Has(ctx context.Context, id domain.TokenID, viewer domain.Address) (bool, error)
}

// RedisCache is a read-through cache over a permission store. Only explicit
// grant entries are cached; the owner's implicit permission is resolved
// above this layer and never enters the cache, so ownership changes cannot
// leave stale authorization behind.
type RedisCache struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(inner Store, client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{inner: inner, client: client, ttl: ttl}
}

func permissionKey(id domain.TokenID, viewer domain.Address) string {
	return permissionKeyPrefix + id.String() + ":" + viewer.Hex()
}

func (c *RedisCache) Grant(ctx context.Context, id domain.TokenID, viewer domain.Address) error {
	if err := c.inner.Grant(ctx, id, viewer); err != nil {
		return err
	}
	// Best effort: a missed cache write only costs a later read-through.
	_ = c.client.Set(ctx, permissionKey(id, viewer), "1", c.ttl).Err()
	return nil
}

func (c *RedisCache) Revoke(ctx context.Context, id domain.TokenID, viewer domain.Address) error {
	if err := c.inner.Revoke(ctx, id, viewer); err != nil {
		return err
	}
	if err := c.client.Set(ctx, permissionKey(id, viewer), "0", c.ttl).Err(); err != nil {
		return fmt.Errorf("cache revoke: %w", err)
	}
	return nil
}

func (c *RedisCache) Has(ctx context.Context, id domain.TokenID, viewer domain.Address) (bool, error) {
	val, err := c.client.Get(ctx, permissionKey(id, viewer)).Result()
	if err == nil {
		return val == "1", nil
	}
	if !errors.Is(err, redis.Nil) {
		// Cache trouble must not break authorization checks.
		return c.inner.Has(ctx, id, viewer)
	}

	granted, err := c.inner.Has(ctx, id, viewer)
	if err != nil {
		return false, err
	}
	marker := "0"
	if granted {
		marker = "1"
	}
	_ = c.client.Set(ctx, permissionKey(id, viewer), marker, c.ttl).Err()
	return granted, nil
}
