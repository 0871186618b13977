package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rodcosta/shophub/internal/domain/product"
	"github.com/rodcosta/shophub/internal/observability"
)

const productListKey = "shophub:products:list"

// RedisProductList caches the catalog listing in Redis so all API instances
// share one copy. Cache failures degrade to a store read, never to an error.
type RedisProductList struct {
	rdb  *redis.Client
	ttl  time.Duration
	prom *observability.Prom
}

func NewRedisProductList(rdb *redis.Client, ttl time.Duration, prom *observability.Prom) *RedisProductList {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &RedisProductList{rdb: rdb, ttl: ttl, prom: prom}
}

func (c *RedisProductList) Get(ctx context.Context) ([]product.Product, bool) {
	raw, err := c.rdb.Get(ctx, productListKey).Bytes()

	if err != nil {
		if err != redis.Nil {
			slog.Default().WarnContext(ctx, "product cache read failed", "err", err)
		}

		c.observe("miss")
		return nil, false
	}

	var items []product.Product

	if err := json.Unmarshal(raw, &items); err != nil {
		// poisoned entry; drop it and fall through to the store
		_ = c.rdb.Del(ctx, productListKey).Err()
		c.observe("miss")
		return nil, false
	}

	c.observe("hit")
	return items, true
}

func (c *RedisProductList) Set(ctx context.Context, products []product.Product) {
	raw, err := json.Marshal(products)

	if err != nil {
		return
	}

	err = c.rdb.Set(ctx, productListKey, raw, c.ttl).Err()

	if err != nil {
		slog.Default().WarnContext(ctx, "product cache write failed", "err", err)
	}
}

func (c *RedisProductList) Invalidate(ctx context.Context) {
	err := c.rdb.Del(ctx, productListKey).Err()

	if err != nil {
		slog.Default().WarnContext(ctx, "product cache invalidation failed", "err", err)
	}
}

func (c *RedisProductList) observe(result string) {
	if c.prom != nil {
		c.prom.CacheLookups.WithLabelValues("products_list", result).Inc()
	}
}
