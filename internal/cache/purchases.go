// internal/cache/purchases.go

// Package cache holds the Redis-backed ownership cache. Purchase facts only
// ever transition from absent to owned, so confirmed ownership can be cached
// without expiry; negative results are never cached.
package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type PurchaseCache struct {
	client *redis.Client
}

func NewPurchaseCache(addr, password string, db int) (*PurchaseCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &PurchaseCache{client: client}, nil
}

func (c *PurchaseCache) Close() error {
	return c.client.Close()
}

func key(account string, productID uint64) string {
	return fmt.Sprintf("owned:%s:%d", account, productID)
}

// IsOwned reports a cached positive ownership fact. A nil receiver, a miss,
// or a Redis failure all report false so callers fall through to the store.
func (c *PurchaseCache) IsOwned(ctx context.Context, account string, productID uint64) bool {
	if c == nil {
		return false
	}

	n, err := c.client.Exists(ctx, key(account, productID)).Result()
	if err != nil {
		logrus.WithError(err).Warn("Ownership cache read failed")
		return false
	}
	return n > 0
}

// MarkOwned records a confirmed purchase fact. Best effort; the store stays
// authoritative.
func (c *PurchaseCache) MarkOwned(ctx context.Context, account string, productID uint64) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, key(account, productID), 1, 0).Err(); err != nil {
		logrus.WithError(err).Warn("Ownership cache write failed")
	}
}
