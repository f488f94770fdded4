package repository

import (
	"context"
	"regexp"
	"testing"

	"financequest/src/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote(symbol, date, close string) model.PriceRecord {
	return model.PriceRecord{
		Symbol:   symbol,
		Date:     model.MustParseDate(date),
		Close:    decimal.RequireFromString(close),
		Exchange: ptrString("XNAS"),
	}
}

func TestPriceCache_StoreIsFirstWriteWins(t *testing.T) {
	repo := NewPriceCacheRepositoryWithDB(newSQLiteDB(t))
	ctx := context.Background()

	stored, err := repo.Store(ctx, []model.PriceRecord{quote("AAPL", "2024-01-02", "185.64")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored)

	stored, err = repo.Store(ctx, []model.PriceRecord{
		quote("AAPL", "2024-01-02", "999.99"),
		quote("AAPL", "2024-01-03", "184.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored, "only the new day is stored")

	price, err := repo.GetPrice(ctx, "AAPL", model.MustParseDate("2024-01-02"))
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.True(t, price.Equal(decimal.RequireFromString("185.64")), "got %s", price)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRecords)
}

func TestPriceCache_StoreDedupesWithinBatch(t *testing.T) {
	repo := NewPriceCacheRepositoryWithDB(newSQLiteDB(t))
	ctx := context.Background()

	input := []model.PriceRecord{
		quote("MSFT", "2024-01-02", "370.87"),
		quote("MSFT", "2024-01-02", "1.00"),
		{Symbol: "", Date: model.MustParseDate("2024-01-02")},
	}
	stored, err := repo.Store(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored)
	assert.Equal(t, uint(0), input[0].ID, "caller slice is not mutated")

	price, err := repo.GetPrice(ctx, "MSFT", model.MustParseDate("2024-01-02"))
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, "370.87", price.String())

	stored, err = repo.Store(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, stored)
}

func TestPriceCache_BatchMatchesPointLookups(t *testing.T) {
	repo := NewPriceCacheRepositoryWithDB(newSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.Store(ctx, []model.PriceRecord{
		quote("A", "2024-01-02", "10"),
		quote("B", "2024-01-02", "20.5"),
		quote("C", "2024-01-03", "30"),
	})
	require.NoError(t, err)

	day := model.MustParseDate("2024-01-02")
	batch, err := repo.GetPrices(ctx, []string{"A", "B", "C"}, day)
	require.NoError(t, err)

	for _, symbol := range []string{"A", "B", "C"} {
		single, err := repo.GetPrice(ctx, symbol, day)
		require.NoError(t, err)

		got, ok := batch[symbol]
		if single == nil {
			assert.False(t, ok, "%s is absent from the batch", symbol)
			continue
		}
		require.True(t, ok)
		assert.True(t, single.Equal(got), symbol)
	}
	assert.Len(t, batch, 2)

	empty, err := repo.GetPrices(ctx, nil, day)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPriceCache_GetRangeIsInclusiveAndOrdered(t *testing.T) {
	repo := NewPriceCacheRepositoryWithDB(newSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.Store(ctx, []model.PriceRecord{
		quote("AAPL", "2024-01-05", "3"),
		quote("AAPL", "2024-01-02", "1"),
		quote("AAPL", "2024-01-03", "2"),
		quote("AAPL", "2024-01-08", "4"),
		quote("MSFT", "2024-01-03", "9"),
	})
	require.NoError(t, err)

	rows, err := repo.GetRange(ctx, "AAPL", model.MustParseDate("2024-01-02"), model.MustParseDate("2024-01-05"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-02", rows[0].Date.String())
	assert.Equal(t, "2024-01-03", rows[1].Date.String())
	assert.Equal(t, "2024-01-05", rows[2].Date.String())

	latest, err := repo.LatestDate(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", latest.String())

	none, err := repo.LatestDate(ctx, "ZZZ")
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestPriceCache_EstimateCoverage(t *testing.T) {
	repo := NewPriceCacheRepositoryWithDB(newSQLiteDB(t))
	ctx := context.Background()

	// Mon 2024-01-01 .. Fri 2024-01-05: five business days.
	from := model.MustParseDate("2024-01-01")
	to := model.MustParseDate("2024-01-05")

	var records []model.PriceRecord
	for d := from; !d.After(to); d = d.AddDays(1) {
		records = append(records, model.PriceRecord{Symbol: "A", Date: d, Close: decimal.NewFromInt(1)})
	}
	records = append(records,
		quote("B", "2024-01-01", "1"),
		quote("B", "2024-01-02", "1"),
	)
	_, err := repo.Store(ctx, records)
	require.NoError(t, err)

	coverage, err := repo.EstimateCoverage(ctx, from, to, []string{"A", "B"})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, coverage, 1e-9)

	coverage, err = repo.EstimateCoverage(ctx, from, to, []string{"A"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, coverage, 1e-9)

	weekend, err := repo.EstimateCoverage(ctx, model.MustParseDate("2024-01-06"), model.MustParseDate("2024-01-07"), []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, weekend)
}

func TestPriceCache_Stats(t *testing.T) {
	repo := NewPriceCacheRepositoryWithDB(newSQLiteDB(t))
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRecords)
	assert.Nil(t, stats.OldestDate)

	_, err = repo.Store(ctx, []model.PriceRecord{
		quote("A", "2024-01-02", "1"),
		quote("A", "2024-01-03", "1"),
		quote("B", "2023-12-29", "1"),
	})
	require.NoError(t, err)

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.UniqueSymbols)
	assert.Equal(t, int64(3), stats.TotalRecords)
	assert.Equal(t, int64(3*estimatedRecordBytes), stats.EstimatedSizeBytes)
	require.NotNil(t, stats.OldestDate)
	require.NotNil(t, stats.NewestDate)
	assert.Equal(t, "2023-12-29", stats.OldestDate.String())
	assert.Equal(t, "2024-01-03", stats.NewestDate.String())
}

func TestPriceCache_GetPricesQueryShape(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceCacheRepositoryWithDB(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "symbol","close" FROM "market_data_cache" WHERE symbol IN ($1,$2) AND date = $3`)).
		WithArgs("AAPL", "MSFT", "2024-01-02").
		WillReturnRows(sqlmock.NewRows([]string{"symbol", "close"}).AddRow("AAPL", "185.64"))

	prices, err := repo.GetPrices(context.Background(), []string{"AAPL", "MSFT"}, model.MustParseDate("2024-01-02"))
	require.NoError(t, err)
	assert.Len(t, prices, 1)
	assert.Equal(t, "185.64", prices["AAPL"].String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceCache_StoreUsesConflictIgnore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceCacheRepositoryWithDB(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "market_data_cache"`) + `.*` +
		regexp.QuoteMeta(`ON CONFLICT ("symbol","date") DO NOTHING RETURNING "id"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	stored, err := repo.Store(context.Background(), []model.PriceRecord{
		quote("AAPL", "2024-01-02", "185.64"),
		quote("MSFT", "2024-01-02", "370.87"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored, "only returned rows count as stored")
	require.NoError(t, mock.ExpectationsWereMet())
}
