// Package cachejobs runs the market cache maintenance jobs from the command line.
package cachejobs

import (
	"context"
	"fmt"
	"strings"

	"financequest/src/app"
	"financequest/src/assets"
	"financequest/src/market"
	"financequest/src/model"
	"financequest/src/scheduler"
	"financequest/src/utils"

	logger "github.com/sirupsen/logrus"
)

type prefetcher interface {
	SmartPrefetch(ctx context.Context, startDate model.Date) market.PrefetchResult
	PrefetchSymbolHistory(ctx context.Context, symbol string, from, to model.Date) int64
	DailyUpdate(ctx context.Context) market.PrefetchResult
}

type latestDater interface {
	LatestDate(ctx context.Context, symbol string) (model.Date, error)
}

type CacheJobs struct {
	Log        *logger.Entry
	Config     *Config
	Prefetcher prefetcher
	Cache      latestDater
	Games      scheduler.GameCleaner
	today      func() model.Date
}

func New(a *app.App, log *logger.Entry) *CacheJobs {
	return &CacheJobs{
		Log:        log,
		Config:     GetConfig(),
		Prefetcher: a.Prefetcher,
		Cache:      a.Cache,
		Games:      a.GameSvc,
	}
}

func (c *CacheJobs) now() model.Date {
	if c.today != nil {
		return c.today()
	}
	return utils.Today()
}

// UpdateCache refreshes yesterday and today for the whole universe.
func (c *CacheJobs) UpdateCache(ctx context.Context) error {
	return scheduler.UpdateCacheJob{Prefetcher: c.Prefetcher}.Run(ctx)
}

// CleanupGames removes completed games past the retention window.
func (c *CacheJobs) CleanupGames(ctx context.Context) error {
	return scheduler.CleanupGamesJob{Games: c.Games}.Run(ctx)
}

// Prefetch warms the lookback window ending at startDate. An empty startDate means the
// previous business day.
func (c *CacheJobs) Prefetch(ctx context.Context, startDate string) error {
	date := utils.PreviousBusinessDay(c.now())
	if startDate != "" {
		d, err := model.ParseDate(startDate)
		if err != nil {
			return err
		}
		date = d
	}

	res := c.Prefetcher.SmartPrefetch(ctx, date)
	c.Log.WithFields(logger.Fields{
		"startDate":     date.String(),
		"strategy":      res.Strategy,
		"recordsStored": res.RecordsStored,
		"coverage":      res.Coverage,
	}).Info("prefetch finished")
	if !res.Success {
		return fmt.Errorf("prefetch %s: %s", date, res.Error)
	}
	return nil
}

// Backfill loads each symbol's history up to today, one provider call per symbol.
func (c *CacheJobs) Backfill(ctx context.Context) error {
	symbols, err := c.symbols()
	if err != nil {
		return err
	}

	var total int64
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}
		from, err := c.determineStartPoint(ctx, symbol)
		if err != nil {
			return err
		}
		if from.After(c.now()) {
			c.Log.WithField("symbol", symbol).Debug("backfill: already up to date")
			continue
		}
		stored := c.Prefetcher.PrefetchSymbolHistory(ctx, symbol, from, model.Date{})
		total += stored
		c.Log.WithFields(logger.Fields{
			"symbol":        symbol,
			"from":          from.String(),
			"recordsStored": stored,
		}).Info("backfill: symbol done")
	}

	c.Log.WithFields(logger.Fields{"symbols": len(symbols), "recordsStored": total}).Info("backfill finished")
	return nil
}

func (c *CacheJobs) symbols() ([]string, error) {
	if len(c.Config.Symbols) == 0 {
		return assets.AllSymbols(), nil
	}
	out := make([]string, 0, len(c.Config.Symbols))
	for _, s := range c.Config.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !assets.IsValidSymbol(s) {
			return nil, fmt.Errorf("unknown symbol %q", s)
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *CacheJobs) determineStartPoint(ctx context.Context, symbol string) (model.Date, error) {
	from, err := model.ParseDate(c.Config.BackfillFrom)
	if err != nil {
		return model.Date{}, fmt.Errorf("BACKFILL_FROM: %w", err)
	}
	if !c.Config.AutoMode {
		return from, nil
	}

	latest, err := c.Cache.LatestDate(ctx, symbol)
	if err != nil {
		c.Log.WithError(err).WithField("symbol", symbol).Error("Failed to query latest cached date")
		return model.Date{}, err
	}
	if latest.IsZero() {
		c.Log.WithFields(logger.Fields{"symbol": symbol, "from": from.String()}).
			Info("no records found, start from the configured BACKFILL_FROM")
		return from, nil
	}
	return latest.AddDays(1), nil
}

// Schedule runs both jobs on their cron schedules until ctx is done.
func (c *CacheJobs) Schedule(ctx context.Context, cfg scheduler.Config) error {
	s := scheduler.New(cfg.JobTimeout)
	if err := s.AddJob(cfg.UpdateCache, scheduler.UpdateCacheJob{Prefetcher: c.Prefetcher}); err != nil {
		return fmt.Errorf("schedule update_cache: %w", err)
	}
	if err := s.AddJob(cfg.CleanupGames, scheduler.CleanupGamesJob{Games: c.Games}); err != nil {
		return fmt.Errorf("schedule cleanup_games: %w", err)
	}

	s.Start()
	<-ctx.Done()
	s.Stop()
	return nil
}
