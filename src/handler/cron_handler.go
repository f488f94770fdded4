package handler

import (
	"context"
	"net/http"
	"time"

	"financequest/src/market"
)

type dailyUpdater interface {
	DailyUpdate(ctx context.Context) market.PrefetchResult
}

type gameCleaner interface {
	CleanupInactive(ctx context.Context) (int64, error)
}

// UpdateCacheHandler runs the daily cache refresh. A failed refresh answers 502.
func UpdateCacheHandler(prefetch dailyUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		res := prefetch.DailyUpdate(r.Context())
		if !res.Success {
			writeFailure(w, http.StatusBadGateway, res.Error)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"result":   res,
			"duration": time.Since(start).String(),
		})
	}
}

// CleanupGamesHandler runs the retention job.
func CleanupGamesHandler(games gameCleaner, sink ExceptionSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := games.CleanupInactive(r.Context())
		if err != nil {
			writeError(w, r, sink, "cron_handler", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"deletedGames": deleted})
	}
}
