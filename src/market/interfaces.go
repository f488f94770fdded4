// Package market decides when prices come from the cache and when the provider has to
// be called, and keeps the number of provider calls low.
package market

import (
	"context"

	"financequest/src/model"

	"github.com/shopspring/decimal"
)

// PriceCache is the durable quote store.
type PriceCache interface {
	GetPrice(ctx context.Context, symbol string, date model.Date) (*decimal.Decimal, error)
	GetPrices(ctx context.Context, symbols []string, date model.Date) (map[string]decimal.Decimal, error)
	GetRange(ctx context.Context, symbol string, from, to model.Date) ([]model.PriceRecord, error)
	Store(ctx context.Context, records []model.PriceRecord) (int64, error)
	EstimateCoverage(ctx context.Context, from, to model.Date, sample []string) (float64, error)
}

// PriceProvider is the external end-of-day source.
type PriceProvider interface {
	FetchRange(ctx context.Context, symbols []string, from, to model.Date, limit int) ([]model.PriceRecord, error)
	FetchPriceAtDate(ctx context.Context, symbol string, date model.Date) (*model.PriceRecord, error)
}
