package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is one end-of-day quote. (symbol, date) is unique and a stored row is never
// updated: the first value fetched for a day stays authoritative.
type PriceRecord struct {
	ID       uint                `gorm:"primaryKey" json:"-"`
	Symbol   string              `json:"symbol"   gorm:"type:varchar(20);not null;uniqueIndex:ux_market_data_cache_symbol_date,priority:1"`
	Date     Date                `json:"date"     gorm:"type:date;not null;uniqueIndex:ux_market_data_cache_symbol_date,priority:2;index:idx_market_data_cache_date"`
	Open     decimal.NullDecimal `json:"open"     gorm:"type:decimal(15,4)"`
	High     decimal.NullDecimal `json:"high"     gorm:"type:decimal(15,4)"`
	Low      decimal.NullDecimal `json:"low"      gorm:"type:decimal(15,4)"`
	Close    decimal.Decimal     `json:"close"    gorm:"type:decimal(15,4);not null"`
	Volume   *int64              `json:"volume"   gorm:"type:bigint"`
	Exchange *string             `json:"exchange" gorm:"type:varchar(20)"`
	CachedAt time.Time           `json:"cachedAt" gorm:"not null;autoCreateTime"`
}

func (PriceRecord) TableName() string {
	return "market_data_cache"
}

// PriceKey identifies a cached quote.
type PriceKey struct {
	Symbol string
	Date   Date
}

func (p PriceRecord) Key() PriceKey {
	return PriceKey{Symbol: p.Symbol, Date: p.Date}
}

// CacheStats is the observability summary of the price cache.
type CacheStats struct {
	UniqueSymbols      int64 `json:"uniqueSymbols"`
	TotalRecords       int64 `json:"totalRecords"`
	OldestDate         *Date `json:"oldestDate"`
	NewestDate         *Date `json:"newestDate"`
	EstimatedSizeBytes int64 `json:"estimatedSizeBytes"`
}
