// Package app assembles the services shared by the API server and the job commands.
package app

import (
	"context"

	"financequest/src/connectors"
	"financequest/src/game"
	"financequest/src/market"
	"financequest/src/repository"
	"financequest/src/stream"

	"github.com/redis/go-redis/v9"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	DB     *gorm.DB
	ReadDB *gorm.DB

	Cache      *repository.PriceCacheRepository
	APIStats   *repository.APIStatsRepository
	Games      *repository.GameRepository
	Users      *repository.GormUserRepository
	Exceptions *repository.ExceptionRepository

	Provider   *connectors.MarketStackClient
	Prices     *market.PriceService
	Prefetcher *market.Prefetcher
	Hub        *stream.Hub
	GameSvc    *game.Service

	redis *redis.Client
}

// New wires every service on top of db. readDB serves the read-mostly user lookups and
// may be the same handle.
func New(db, readDB *gorm.DB) (*App, error) {
	if readDB == nil {
		readDB = db
	}
	log := logger.WithField("component", "App")

	a := &App{
		DB:         db,
		ReadDB:     readDB,
		Cache:      repository.NewPriceCacheRepositoryWithDB(db),
		APIStats:   repository.NewAPIStatsRepositoryWithDB(db),
		Games:      repository.NewGameRepositoryWithDB(db),
		Users:      repository.NewUserRepositoryWithDB(readDB),
		Exceptions: repository.NewExceptionRepositoryWithDB(db),
		Hub:        stream.NewHub(),
	}

	a.Provider = connectors.NewMarketStackClient(connectors.GetConfig(), nil, a.APIStats)

	marketCfg := market.GetConfig()
	var hot *market.HotCache
	rdb, err := market.NewRedisClient(marketCfg.RedisURL)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, hot price layer will degrade to misses")
		}
		a.redis = rdb
		hot = market.NewHotCache(rdb, marketCfg.RedisPriceTTL)
		log.Info("hot price layer enabled")
	}

	a.Prices = market.NewPriceService(a.Cache, a.Provider, hot)
	a.Prefetcher = market.NewPrefetcher(a.Cache, a.Provider, marketCfg)
	a.GameSvc = game.NewService(db, game.Deps{
		Prices:    a.Prices,
		Cache:     a.Cache,
		Prefetch:  a.Prefetcher,
		Publisher: a.Hub,
		ReadDB:    readDB,
	}, game.GetConfig())

	return a, nil
}

// Close waits for pending provider telemetry and releases the redis client.
func (a *App) Close() {
	a.Provider.Wait()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.WithError(err).Warn("closing redis client")
		}
	}
}
