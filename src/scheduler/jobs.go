package scheduler

import (
	"context"
	"errors"

	"financequest/src/market"

	logger "github.com/sirupsen/logrus"
)

type DailyUpdater interface {
	DailyUpdate(ctx context.Context) market.PrefetchResult
}

type GameCleaner interface {
	CleanupInactive(ctx context.Context) (int64, error)
}

// UpdateCacheJob fetches the latest end-of-day closes for the whole universe.
type UpdateCacheJob struct {
	Prefetcher DailyUpdater
}

func (UpdateCacheJob) Name() string { return "update_cache" }

func (j UpdateCacheJob) Run(ctx context.Context) error {
	res := j.Prefetcher.DailyUpdate(ctx)
	logger.WithFields(map[string]interface{}{
		"job":            "update_cache",
		"recordsFetched": res.RecordsFetched,
		"recordsStored":  res.RecordsStored,
	}).Info("daily cache update finished")
	if !res.Success {
		return errors.New(res.Error)
	}
	return nil
}

// CleanupGamesJob deletes completed games past the retention window.
type CleanupGamesJob struct {
	Games GameCleaner
}

func (CleanupGamesJob) Name() string { return "cleanup_games" }

func (j CleanupGamesJob) Run(ctx context.Context) error {
	_, err := j.Games.CleanupInactive(ctx)
	return err
}
