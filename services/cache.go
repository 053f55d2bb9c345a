package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelhub/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyFeatured    = "hotels:featured"
	cacheKeyHotelDetail = "hotels:detail:%d"
	cacheKeyHotelReview = "reviews:hotel:%d"
	cacheKeyLastSearch  = "last_filters:%s"

	hotelCacheTTL      = 10 * time.Minute
	lastSearchCacheTTL = 30 * time.Minute
)

// Cache is a JSON read-through cache over Redis. A nil client disables it,
// every lookup misses and every write is a no-op.
type Cache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewCache(rdb *redis.Client, log logger.Logger) *Cache {
	return &Cache{rdb: rdb, logger: log}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get returns false on a miss or when the cache is disabled.
func (c *Cache) Get(ctx context.Context, key string, target interface{}) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Error("cache get %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		c.logger.Error("cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("cache encode %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Error("cache set %s: %v", key, err)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache delete %v: %v", keys, err)
	}
}

// TryLock takes a short lease so only one replica runs a scheduled job.
// Without Redis the lease is always granted.
func (c *Cache) TryLock(ctx context.Context, key string, ttl time.Duration) bool {
	if !c.Enabled() {
		return true
	}
	ok, err := c.rdb.SetNX(ctx, "lock:"+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		c.logger.Error("cache lock %s: %v", key, err)
		return false
	}
	return ok
}

// InvalidateHotel drops every cached view that embeds the hotel.
func (c *Cache) InvalidateHotel(ctx context.Context, hotelID uint) {
	c.Delete(ctx,
		cacheKeyFeatured,
		fmt.Sprintf(cacheKeyHotelDetail, hotelID),
		fmt.Sprintf(cacheKeyHotelReview, hotelID),
	)
}
