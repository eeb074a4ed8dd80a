package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cachedLookup struct {
	next    Lookup
	client  *redis.Client
	baseTTL time.Duration
	log     *zap.SugaredLogger
}

// NewCachedLookup wraps a Lookup with a redis cache-aside layer. A cache
// failure is logged and falls through to the underlying lookup.
func NewCachedLookup(next Lookup, client *redis.Client, log *zap.SugaredLogger) Lookup {
	return &cachedLookup{
		next:    next,
		client:  client,
		baseTTL: 15 * time.Minute,
		log:     log,
	}
}

func (c *cachedLookup) Lookup(ctx context.Context, productID uint) (Product, error) {
	key := cacheKey(productID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var product Product
		if err := json.Unmarshal(data, &product); err == nil {
			return product, nil
		}
		c.log.Warnw("corrupt catalog cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warnw("catalog cache get failed", "key", key, "err", err)
	}

	product, err := c.next.Lookup(ctx, productID)
	if err != nil {
		return Product{}, err
	}

	if payload, err := json.Marshal(product); err == nil {
		jitter := time.Duration(rand.Intn(300)) * time.Second
		if err := c.client.Set(ctx, key, payload, c.baseTTL+jitter).Err(); err != nil {
			c.log.Warnw("catalog cache set failed", "key", key, "err", err)
		}
	}

	return product, nil
}

// Invalidate drops a product's cache entry; called by the product handlers
// after a price or name change.
func Invalidate(ctx context.Context, client *redis.Client, productID uint) error {
	if client == nil {
		return nil
	}
	if err := client.Del(ctx, cacheKey(productID)).Err(); err != nil {
		return fmt.Errorf("catalog cache invalidate failed: %w", err)
	}
	return nil
}

func cacheKey(productID uint) string {
	return fmt.Sprintf("product:%d", productID)
}
