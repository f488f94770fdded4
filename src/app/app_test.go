package app

import (
	"context"
	"testing"

	"financequest/src/database/dbtest"
	"financequest/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresServicesOnOneDatabase(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	db := dbtest.NewSQLite(t)

	a, err := New(db, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Same(t, db, a.ReadDB)
	require.NotNil(t, a.GameSvc)
	require.NotNil(t, a.Prices)
	require.NotNil(t, a.Prefetcher)
	assert.Nil(t, a.redis)

	// nothing is cached and the provider key is empty, so the lookup degrades to nil
	assert.Nil(t, a.Prices.GetPrice(context.Background(), "AAPL", model.MustParseDate("2024-01-02")))
}

func TestNew_RejectsMalformedRedisURL(t *testing.T) {
	t.Setenv("REDIS_URL", "://nope")
	_, err := New(dbtest.NewSQLite(t), nil)
	assert.Error(t, err)
}
