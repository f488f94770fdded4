package market

import (
	"context"
	"fmt"
	"time"

	"financequest/src/assets"
	"financequest/src/metrics"
	"financequest/src/model"
	"financequest/src/utils"

	logger "github.com/sirupsen/logrus"
)

type Strategy string

const (
	StrategyFull Strategy = "full"
	StrategySkip Strategy = "skip"
)

const (
	triggerGameCreation = "game_creation"
	triggerDayAdvance   = "day_advance"
	triggerSymbol       = "symbol_history"
	triggerDaily        = "daily_update"
)

// PrefetchResult reports a batched prefetch. RecordsStored counts rows that were new to
// the cache; RecordsFetched counts rows the provider returned.
type PrefetchResult struct {
	Success        bool     `json:"success"`
	Strategy       Strategy `json:"strategy"`
	RecordsFetched int      `json:"recordsFetched"`
	RecordsStored  int64    `json:"recordsStored"`
	Coverage       float64  `json:"coverage"`
	Message        string   `json:"message,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Prefetcher fills the cache in large batches so gameplay rarely calls the provider.
type Prefetcher struct {
	cache    PriceCache
	provider PriceProvider
	cfg      Config
	universe func() []string
	sample   func(n int) []string
	today    func() model.Date
}

func NewPrefetcher(cache PriceCache, provider PriceProvider, cfg Config) *Prefetcher {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 30
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = 10
	}
	if cfg.CoverageThreshold <= 0 {
		cfg.CoverageThreshold = 0.9
	}
	return &Prefetcher{
		cache:    cache,
		provider: provider,
		cfg:      cfg,
		universe: assets.AllSymbols,
		sample:   assets.Sample,
		today:    utils.Today,
	}
}

// SmartPrefetch loads the lookback window ending at startDate for the whole universe,
// unless a sample of symbols shows the window is already covered.
func (p *Prefetcher) SmartPrefetch(ctx context.Context, startDate model.Date) PrefetchResult {
	from := startDate.AddDays(-p.cfg.LookbackDays)
	log := logger.WithFields(map[string]interface{}{
		"component": "Prefetcher",
		"from":      from.String(),
		"to":        startDate.String(),
	})

	coverage, err := p.cache.EstimateCoverage(ctx, from, startDate, p.sample(p.cfg.SampleSize))
	if err != nil {
		log.WithError(err).Warn("coverage estimate failed, running full prefetch")
		coverage = 0
	}
	log = log.WithField("coverage", coverage)

	if coverage >= p.cfg.CoverageThreshold {
		metrics.PrefetchSkipped.Inc()
		log.Info("cache coverage sufficient, skipping prefetch")
		return PrefetchResult{
			Success:  true,
			Strategy: StrategySkip,
			Coverage: coverage,
			Message:  fmt.Sprintf("cache already has %.0f%% coverage", coverage*100),
		}
	}

	res := p.PrefetchGameData(ctx, startDate)
	res.Coverage = coverage
	return res
}

// PrefetchGameData fetches the lookback window ending at startDate for every symbol.
func (p *Prefetcher) PrefetchGameData(ctx context.Context, startDate model.Date) PrefetchResult {
	from := startDate.AddDays(-p.cfg.LookbackDays)
	symbols := p.universe()
	log := logger.WithFields(map[string]interface{}{
		"component": "Prefetcher",
		"trigger":   triggerGameCreation,
		"from":      from.String(),
		"to":        startDate.String(),
		"symbols":   len(symbols),
	})

	started := time.Now()
	records, err := p.provider.FetchRange(ctx, symbols, from, startDate, 0)
	if err != nil {
		log.WithError(err).Error("historical prefetch failed")
		return PrefetchResult{Strategy: StrategyFull, Error: err.Error()}
	}
	log = log.WithFields(map[string]interface{}{
		"fetched":  len(records),
		"duration": time.Since(started).String(),
	})

	if len(records) == 0 {
		log.Warn("provider returned no data for the window")
		return PrefetchResult{
			Success:  true,
			Strategy: StrategyFull,
			Message:  "no data available for this period",
		}
	}

	stored, err := p.cache.Store(ctx, records)
	if err != nil {
		log.WithError(err).Error("failed to store historical prefetch")
		return PrefetchResult{Strategy: StrategyFull, RecordsFetched: len(records), Error: err.Error()}
	}
	metrics.PrefetchRecordsStored.WithLabelValues(triggerGameCreation).Add(float64(stored))
	log.WithField("stored", stored).Info("historical prefetch completed")

	return PrefetchResult{
		Success:        true,
		Strategy:       StrategyFull,
		RecordsFetched: len(records),
		RecordsStored:  stored,
		Message:        fmt.Sprintf("prefetched %d records for %d-day history", len(records), p.cfg.LookbackDays),
	}
}

// PrefetchSingleDay fetches date for the whole universe in one batched call and returns
// the number of new rows. Failures are logged and reported as zero.
func (p *Prefetcher) PrefetchSingleDay(ctx context.Context, date model.Date) int64 {
	return p.fetchAndStore(ctx, triggerDayAdvance, p.universe(), date, date)
}

// PrefetchSymbolHistory fetches one symbol over [from, to]; a zero to means today.
func (p *Prefetcher) PrefetchSymbolHistory(ctx context.Context, symbol string, from, to model.Date) int64 {
	if to.IsZero() {
		to = p.today()
	}
	return p.fetchAndStore(ctx, triggerSymbol, []string{symbol}, from, to)
}

// DailyUpdate refreshes yesterday and today for the whole universe.
func (p *Prefetcher) DailyUpdate(ctx context.Context) PrefetchResult {
	today := p.today()
	yesterday := today.AddDays(-1)
	log := logger.WithFields(map[string]interface{}{
		"component": "Prefetcher",
		"trigger":   triggerDaily,
		"from":      yesterday.String(),
		"to":        today.String(),
	})

	records, err := p.provider.FetchRange(ctx, p.universe(), yesterday, today, 0)
	if err != nil {
		log.WithError(err).Error("daily update failed")
		return PrefetchResult{Strategy: StrategyFull, Error: err.Error()}
	}

	var stored int64
	if len(records) > 0 {
		stored, err = p.cache.Store(ctx, records)
		if err != nil {
			log.WithError(err).Error("failed to store daily update")
			return PrefetchResult{Strategy: StrategyFull, RecordsFetched: len(records), Error: err.Error()}
		}
		metrics.PrefetchRecordsStored.WithLabelValues(triggerDaily).Add(float64(stored))
	} else {
		log.Warn("daily update returned no data")
	}

	log.WithFields(map[string]interface{}{
		"fetched": len(records),
		"stored":  stored,
	}).Info("daily update completed")

	return PrefetchResult{
		Success:        true,
		Strategy:       StrategyFull,
		RecordsFetched: len(records),
		RecordsStored:  stored,
		Message:        fmt.Sprintf("daily update: %d records", len(records)),
	}
}

func (p *Prefetcher) fetchAndStore(ctx context.Context, trigger string, symbols []string, from, to model.Date) int64 {
	log := logger.WithFields(map[string]interface{}{
		"component": "Prefetcher",
		"trigger":   trigger,
		"from":      from.String(),
		"to":        to.String(),
		"symbols":   len(symbols),
	})

	records, err := p.provider.FetchRange(ctx, symbols, from, to, 0)
	if err != nil {
		log.WithError(err).Error("prefetch failed")
		return 0
	}
	if len(records) == 0 {
		log.Warn("provider returned no data")
		return 0
	}

	stored, err := p.cache.Store(ctx, records)
	if err != nil {
		log.WithError(err).Error("failed to store prefetched records")
		return 0
	}
	metrics.PrefetchRecordsStored.WithLabelValues(trigger).Add(float64(stored))
	log.WithFields(map[string]interface{}{
		"fetched": len(records),
		"stored":  stored,
	}).Info("prefetch completed")
	return stored
}
