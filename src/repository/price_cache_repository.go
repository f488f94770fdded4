package repository

import (
	"context"
	"errors"

	"financequest/src/model"
	"financequest/src/utils"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	storeBatchSize = 500

	// estimatedRecordBytes approximates one market_data_cache row including index overhead.
	estimatedRecordBytes = 150
)

// PriceCacheRepository is the durable (symbol, date) -> quote cache. Rows are append-only.
type PriceCacheRepository struct {
	db *gorm.DB
}

func NewPriceCacheRepositoryWithDB(db *gorm.DB) *PriceCacheRepository {
	return &PriceCacheRepository{
		db: db,
	}
}

// GetRecord returns the cached quote, or (nil, nil) when the day is not cached.
func (r *PriceCacheRepository) GetRecord(ctx context.Context, symbol string, date model.Date) (*model.PriceRecord, error) {
	var rec model.PriceRecord
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND date = ?", symbol, date).
		Limit(1).
		Find(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	return &rec, nil
}

// GetPrice returns the cached close, or (nil, nil) on a miss.
func (r *PriceCacheRepository) GetPrice(ctx context.Context, symbol string, date model.Date) (*decimal.Decimal, error) {
	rec, err := r.GetRecord(ctx, symbol, date)
	if err != nil || rec == nil {
		return nil, err
	}
	price := rec.Close
	return &price, nil
}

// GetPrices resolves many symbols for one date in a single query. Symbols without a
// cached quote are absent from the result.
func (r *PriceCacheRepository) GetPrices(ctx context.Context, symbols []string, date model.Date) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(symbols))
	if len(symbols) == 0 {
		return out, nil
	}

	var rows []model.PriceRecord
	err := r.db.WithContext(ctx).
		Select("symbol", "close").
		Where("symbol IN ? AND date = ?", symbols, date).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.Symbol] = row.Close
	}
	return out, nil
}

// GetRange returns the quotes of symbol within [from, to], oldest first.
func (r *PriceCacheRepository) GetRange(ctx context.Context, symbol string, from, to model.Date) ([]model.PriceRecord, error) {
	var rows []model.PriceRecord
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND date >= ? AND date <= ?", symbol, from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Store inserts records, silently skipping any (symbol, date) already cached so the
// first stored value is never overwritten. It returns the number of new rows.
func (r *PriceCacheRepository) Store(ctx context.Context, records []model.PriceRecord) (int64, error) {
	rows := dedupeRecords(records)
	if len(rows) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
			DoNothing: true,
		}).
		CreateInBatches(&rows, storeBatchSize)

	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"component": "PriceCacheRepository",
			"records":   len(rows),
		}).WithError(res.Error).Error("failed to store price records")
		return 0, res.Error
	}

	logger.WithFields(map[string]interface{}{
		"component": "PriceCacheRepository",
		"received":  len(records),
		"stored":    res.RowsAffected,
	}).Debug("price records stored")

	return res.RowsAffected, nil
}

// dedupeRecords keeps the first occurrence of every key and strips identity columns so
// the caller's slice is left untouched.
func dedupeRecords(records []model.PriceRecord) []model.PriceRecord {
	seen := make(map[model.PriceKey]struct{}, len(records))
	out := make([]model.PriceRecord, 0, len(records))
	for _, rec := range records {
		if rec.Symbol == "" || rec.Date.IsZero() {
			continue
		}
		if _, ok := seen[rec.Key()]; ok {
			continue
		}
		seen[rec.Key()] = struct{}{}
		rec.ID = 0
		out = append(out, rec)
	}
	return out
}

// EstimateCoverage returns the fraction of expected business days in [from, to] cached
// for the sample symbols. Days beyond the expected count never push a symbol over 1.
func (r *PriceCacheRepository) EstimateCoverage(ctx context.Context, from, to model.Date, sample []string) (float64, error) {
	expected := utils.BusinessDaysBetween(from, to)
	if expected == 0 || len(sample) == 0 {
		return 1, nil
	}

	type symbolCount struct {
		Symbol string
		Days   int64
	}
	var counts []symbolCount
	err := r.db.WithContext(ctx).
		Model(&model.PriceRecord{}).
		Select("symbol, COUNT(*) AS days").
		Where("symbol IN ? AND date >= ? AND date <= ?", sample, from, to).
		Group("symbol").
		Scan(&counts).Error
	if err != nil {
		return 0, err
	}

	var covered int64
	for _, c := range counts {
		if c.Days > int64(expected) {
			covered += int64(expected)
			continue
		}
		covered += c.Days
	}

	return float64(covered) / float64(int64(expected)*int64(len(sample))), nil
}

// Stats summarizes the cache for monitoring.
func (r *PriceCacheRepository) Stats(ctx context.Context) (*model.CacheStats, error) {
	var row struct {
		UniqueSymbols int64
		TotalRecords  int64
		OldestDate    model.Date
		NewestDate    model.Date
	}
	err := r.db.WithContext(ctx).
		Model(&model.PriceRecord{}).
		Select("COUNT(DISTINCT symbol) AS unique_symbols, COUNT(*) AS total_records, MIN(date) AS oldest_date, MAX(date) AS newest_date").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &model.CacheStats{
		UniqueSymbols:      row.UniqueSymbols,
		TotalRecords:       row.TotalRecords,
		EstimatedSizeBytes: row.TotalRecords * estimatedRecordBytes,
	}
	if !row.OldestDate.IsZero() {
		oldest := row.OldestDate
		stats.OldestDate = &oldest
	}
	if !row.NewestDate.IsZero() {
		newest := row.NewestDate
		stats.NewestDate = &newest
	}
	return stats, nil
}

// LatestDate returns the newest cached day for symbol, or a zero Date when none is cached.
func (r *PriceCacheRepository) LatestDate(ctx context.Context, symbol string) (model.Date, error) {
	var rec model.PriceRecord
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Date{}, nil
	}
	if err != nil {
		return model.Date{}, err
	}
	return rec.Date, nil
}
