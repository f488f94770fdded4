package market

import (
	"context"

	"financequest/src/metrics"
	"financequest/src/model"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// PriceService is the read API over quotes: cache first, provider only on a miss.
type PriceService struct {
	cache    PriceCache
	provider PriceProvider
	hot      hotLayer
}

type hotLayer interface {
	Get(ctx context.Context, symbol string, date model.Date) (decimal.Decimal, bool)
	Set(ctx context.Context, symbol string, date model.Date, price decimal.Decimal)
}

// NewPriceService builds the service. hot may be nil.
func NewPriceService(cache PriceCache, provider PriceProvider, hot *HotCache) *PriceService {
	s := &PriceService{
		cache:    cache,
		provider: provider,
	}
	if hot != nil {
		s.hot = hot
	}
	return s
}

// GetPrice returns the close of symbol on date, or nil when no price can be found.
// Provider and storage failures degrade to nil.
func (s *PriceService) GetPrice(ctx context.Context, symbol string, date model.Date) *decimal.Decimal {
	log := logger.WithFields(map[string]interface{}{
		"component": "PriceService",
		"symbol":    symbol,
		"date":      date.String(),
	})

	if s.hot != nil {
		if price, ok := s.hot.Get(ctx, symbol, date); ok {
			metrics.CacheLookupsTotal.WithLabelValues("hot_hit").Inc()
			return &price
		}
	}

	cached, err := s.cache.GetPrice(ctx, symbol, date)
	if err != nil {
		log.WithError(err).Error("cache lookup failed")
		return nil
	}
	if cached != nil {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		s.remember(ctx, symbol, date, *cached)
		return cached
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	if s.provider == nil {
		return nil
	}
	rec, err := s.provider.FetchPriceAtDate(ctx, symbol, date)
	if err != nil {
		log.WithError(err).Warn("provider lookup failed")
		return nil
	}
	if rec == nil {
		log.Warn("no price available")
		return nil
	}

	stored, err := s.cache.Store(ctx, []model.PriceRecord{*rec})
	if err != nil {
		log.WithError(err).Error("failed to store fetched price")
	}
	price := rec.Close
	if stored > 0 {
		s.remember(ctx, symbol, date, price)
		return &price
	}

	// The row already existed or was not written. The table stays authoritative.
	if existing, err := s.cache.GetPrice(ctx, symbol, date); err == nil && existing != nil {
		s.remember(ctx, symbol, date, *existing)
		return existing
	}
	return &price
}

// BatchGetPrices resolves many symbols for one date. Missing symbols are fetched from the
// provider in one batched call. Symbols that still have no price are absent.
func (s *PriceService) BatchGetPrices(ctx context.Context, symbols []string, date model.Date) map[string]decimal.Decimal {
	log := logger.WithFields(map[string]interface{}{
		"component": "PriceService",
		"date":      date.String(),
		"symbols":   len(symbols),
	})

	out, err := s.cache.GetPrices(ctx, symbols, date)
	if err != nil {
		log.WithError(err).Error("batch cache lookup failed")
		return map[string]decimal.Decimal{}
	}

	var missing []string
	for _, symbol := range symbols {
		if _, ok := out[symbol]; !ok {
			missing = append(missing, symbol)
		}
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Add(float64(len(out)))
	if len(missing) == 0 || s.provider == nil {
		return out
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Add(float64(len(missing)))

	records, err := s.provider.FetchRange(ctx, missing, date, date, 0)
	if err != nil {
		log.WithError(err).Warn("provider batch lookup failed, returning cached prices only")
		return out
	}
	if len(records) == 0 {
		return out
	}

	if _, err := s.cache.Store(ctx, records); err != nil {
		log.WithError(err).Error("failed to store fetched prices")
	}
	for _, rec := range records {
		if rec.Date != date {
			continue
		}
		if _, ok := out[rec.Symbol]; !ok {
			out[rec.Symbol] = rec.Close
		}
	}
	return out
}

// GetPriceHistory returns the cached quotes of symbol in [from, to]. When the cache has
// nothing for the range, the range is fetched from the provider and stored first.
func (s *PriceService) GetPriceHistory(ctx context.Context, symbol string, from, to model.Date) ([]model.PriceRecord, error) {
	rows, err := s.cache.GetRange(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 || s.provider == nil {
		return rows, nil
	}

	records, err := s.provider.FetchRange(ctx, []string{symbol}, from, to, 0)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"component": "PriceService",
			"symbol":    symbol,
		}).WithError(err).Warn("provider history lookup failed")
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	if _, err := s.cache.Store(ctx, records); err != nil {
		return nil, err
	}
	return s.cache.GetRange(ctx, symbol, from, to)
}

func (s *PriceService) remember(ctx context.Context, symbol string, date model.Date, price decimal.Decimal) {
	if s.hot != nil {
		s.hot.Set(ctx, symbol, date, price)
	}
}
