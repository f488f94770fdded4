package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"financequest/src/model"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// HotCache keeps recently read closes in Redis in front of the cache table. Every error
// is treated as a miss.
type HotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewHotCache(rdb *redis.Client, ttl time.Duration) *HotCache {
	return &HotCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient parses a redis:// URL. An empty URL disables the hot layer.
func NewRedisClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (c *HotCache) Get(ctx context.Context, symbol string, date model.Date) (decimal.Decimal, bool) {
	raw, err := c.rdb.Get(ctx, priceKey(symbol, date)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithField("component", "HotCache").WithError(err).Debug("redis read failed")
		}
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}

func (c *HotCache) Set(ctx context.Context, symbol string, date model.Date, price decimal.Decimal) {
	if err := c.rdb.Set(ctx, priceKey(symbol, date), price.String(), c.ttl).Err(); err != nil {
		logger.WithField("component", "HotCache").WithError(err).Debug("redis write failed")
	}
}

func priceKey(symbol string, date model.Date) string {
	return fmt.Sprintf("price:%s:%s", symbol, date.String())
}
