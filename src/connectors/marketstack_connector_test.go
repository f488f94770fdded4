package connectors

// Test index:
//  1. TestFetchRange_ParsesBars decodes an EOD payload into price records.
//  2. TestFetchRange_ChunksAboveSymbolCap splits large symbol lists into sequential calls.
//  3. TestFetchRange_FollowsPagination walks offsets until the total is reached.
//  4. TestFetchRange_ErrorEnvelope maps provider errors to ExternalAPIError.
//  5. TestFetchRange_LocalQuotaShortCircuits refuses calls without touching the network.
//  6. TestFetchRange_QuotaCountsFailedCalls counts provider errors against the quota.
//  7. TestFetchRange_PersistsTelemetry stores the rate-limit headers.
//  8. TestFetchRange_TelemetryFailureIsSwallowed keeps the result when persisting fails.
//  9. TestFetchPriceAtDate returns nil for a day without data.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"financequest/src/apperr"
	"financequest/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu    sync.Mutex
	stats []*model.APIStats
	err   error
}

func (s *recordingSink) SaveProviderStats(_ context.Context, stats *model.APIStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = append(s.stats, stats)
	return s.err
}

func (s *recordingSink) all() []*model.APIStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.APIStats(nil), s.stats...)
}

func newTestMarketStack(t *testing.T, handler http.HandlerFunc, quota *QuotaGuard, sink TelemetrySink) *MarketStackClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := Config{
		MarketStackAPIKey:  "test-key",
		MarketStackBaseURL: server.URL,
		Timeout:            2 * time.Second,
		SymbolCap:          100,
		PageLimit:          1000,
		MaxPages:           5,
		QuotaLimit:         100,
		QuotaWindow:        time.Hour,
	}
	return NewMarketStackClient(cfg, quota, sink)
}

func barJSON(symbol, date string, close float64) string {
	return fmt.Sprintf(`{"open":%.2f,"high":%.2f,"low":%.2f,"close":%.2f,"volume":1200.0,"symbol":"%s","exchange":"XNAS","date":"%sT00:00:00+0000"}`,
		close-1, close+1, close-2, close, symbol, date)
}

func TestFetchRange_ParsesBars(t *testing.T) {
	client := newTestMarketStack(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eod", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "AAPL,MSFT", r.URL.Query().Get("symbols"))
		assert.Equal(t, "2024-01-02", r.URL.Query().Get("date_from"))
		assert.Equal(t, "2024-01-03", r.URL.Query().Get("date_to"))

		_, _ = fmt.Fprintf(w, `{"pagination":{"limit":1000,"offset":0,"count":3,"total":3},"data":[%s,%s,%s]}`,
			barJSON("AAPL", "2024-01-02", 185.64),
			barJSON("MSFT", "2024-01-02", 370.87),
			`{"symbol":"MSFT","date":"2024-01-03T00:00:00+0000","close":null}`)
	}, nil, nil)

	records, err := client.FetchRange(context.Background(), []string{"AAPL", "MSFT", "AAPL"},
		model.MustParseDate("2024-01-02"), model.MustParseDate("2024-01-03"), 0)
	require.NoError(t, err)
	require.Len(t, records, 2, "bars without a close are dropped")

	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "2024-01-02", records[0].Date.String())
	assert.Equal(t, "185.64", records[0].Close.String())
	assert.True(t, records[0].Open.Valid)
	require.NotNil(t, records[0].Volume)
	assert.Equal(t, int64(1200), *records[0].Volume)
	require.NotNil(t, records[0].Exchange)
	assert.Equal(t, "XNAS", *records[0].Exchange)
}

func TestFetchRange_ChunksAboveSymbolCap(t *testing.T) {
	var calls []int
	var mu sync.Mutex
	client := newTestMarketStack(t, func(w http.ResponseWriter, r *http.Request) {
		symbols := strings.Split(r.URL.Query().Get("symbols"), ",")
		mu.Lock()
		calls = append(calls, len(symbols))
		mu.Unlock()

		bars := make([]string, 0, len(symbols))
		for _, s := range symbols {
			bars = append(bars, barJSON(s, "2024-01-02", 10))
		}
		_, _ = fmt.Fprintf(w, `{"pagination":{"offset":0,"count":%d,"total":%d},"data":[%s]}`,
			len(bars), len(bars), strings.Join(bars, ","))
	}, nil, nil)

	symbols := make([]string, 0, 214)
	for i := 0; i < 214; i++ {
		symbols = append(symbols, fmt.Sprintf("S%03d", i))
	}

	day := model.MustParseDate("2024-01-02")
	records, err := client.FetchRange(context.Background(), symbols, day, day, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{100, 100, 14}, calls)
	assert.Len(t, records, 214)
	assert.Equal(t, 97, client.Quota().Remaining())
}

func TestFetchRange_FollowsPagination(t *testing.T) {
	var offsets []string
	client := newTestMarketStack(t, func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)
		switch offset {
		case "0":
			_, _ = fmt.Fprintf(w, `{"pagination":{"offset":0,"count":2,"total":3},"data":[%s,%s]}`,
				barJSON("AAPL", "2024-01-02", 1), barJSON("AAPL", "2024-01-03", 2))
		default:
			_, _ = fmt.Fprintf(w, `{"pagination":{"offset":2,"count":1,"total":3},"data":[%s]}`,
				barJSON("AAPL", "2024-01-04", 3))
		}
	}, nil, nil)

	records, err := client.FetchRange(context.Background(), []string{"AAPL"},
		model.MustParseDate("2024-01-02"), model.Date{}, 2)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{"0", "2"}, offsets)
}

func TestFetchRange_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "envelope with message",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"code":"invalid_access_key","message":"You have not supplied a valid API Access Key."}}`,
			wantCode: "invalid_access_key",
			wantMsg:  "You have not supplied a valid API Access Key.",
		},
		{
			name:     "envelope code only",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"code":"rate_limit_reached"}}`,
			wantCode: "rate_limit_reached",
			wantMsg:  "too many requests, rate limit reached",
		},
		{
			name:    "plain text failure",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			wantMsg: "upstream down",
		},
		{
			name:     "error envelope with 200",
			status:   http.StatusOK,
			body:     `{"error":{"code":"validation_error","message":"bad date"}}`,
			wantCode: "validation_error",
			wantMsg:  "bad date",
		},
		{
			name:    "malformed payload",
			status:  http.StatusOK,
			body:    `{"data":[`,
			wantMsg: "malformed payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestMarketStack(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil, nil)

			day := model.MustParseDate("2024-01-02")
			_, err := client.FetchRange(context.Background(), []string{"AAPL"}, day, day, 0)
			require.Error(t, err)

			var ext *apperr.ExternalAPIError
			require.True(t, errors.As(err, &ext))
			assert.Equal(t, tt.status, ext.StatusCode)
			assert.Equal(t, tt.wantCode, ext.Code)
			assert.Contains(t, ext.Message, tt.wantMsg)
		})
	}
}

func TestFetchRange_LocalQuotaShortCircuits(t *testing.T) {
	var hits int32
	quota := NewQuotaGuard(1, time.Hour)
	client := newTestMarketStack(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}, quota, nil)

	day := model.MustParseDate("2024-01-02")
	_, err := client.FetchRange(context.Background(), []string{"AAPL"}, day, day, 0)
	require.NoError(t, err)

	_, err = client.FetchRange(context.Background(), []string{"AAPL"}, day, day, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsRateLimited(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchRange_QuotaCountsFailedCalls(t *testing.T) {
	quota := NewQuotaGuard(10, time.Hour)
	client := newTestMarketStack(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, quota, nil)

	day := model.MustParseDate("2024-01-02")
	_, err := client.FetchRange(context.Background(), []string{"AAPL"}, day, day, 0)
	require.Error(t, err)
	assert.Equal(t, 9, quota.Remaining())
}

func TestFetchRange_PersistsTelemetry(t *testing.T) {
	sink := &recordingSink{}
	client := newTestMarketStack(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "42")
		w.Header().Set("X-RateLimit-Limit", "100")
		w.Header().Set("X-RateLimit-Reset", "1704067200")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"invalid_access_key"}}`))
	}, nil, sink)

	day := model.MustParseDate("2024-01-02")
	_, err := client.FetchRange(context.Background(), []string{"AAPL"}, day, day, 0)
	require.Error(t, err, "telemetry is recorded regardless of the outcome")
	client.Wait()

	stats := sink.all()
	require.Len(t, stats, 1)
	assert.Equal(t, ProviderMarketStack, stats[0].Provider)
	require.NotNil(t, stats[0].RequestsRemaining)
	assert.Equal(t, 42, *stats[0].RequestsRemaining)
	require.NotNil(t, stats[0].RequestsLimit)
	assert.Equal(t, 100, *stats[0].RequestsLimit)
	require.NotNil(t, stats[0].ResetAt)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *stats[0].ResetAt)
}

func TestFetchRange_TelemetryFailureIsSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("db down")}
	client := newTestMarketStack(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "7")
		_, _ = fmt.Fprintf(w, `{"data":[%s]}`, barJSON("AAPL", "2024-01-02", 5))
	}, nil, sink)

	day := model.MustParseDate("2024-01-02")
	records, err := client.FetchRange(context.Background(), []string{"AAPL"}, day, day, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	client.Wait()
	assert.Len(t, sink.all(), 1)
}

func TestFetchPriceAtDate(t *testing.T) {
	client := newTestMarketStack(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date_from") == "2024-01-02" {
			_, _ = fmt.Fprintf(w, `{"data":[%s]}`, barJSON("AAPL", "2024-01-02", 185.5))
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}, nil, nil)

	rec, err := client.FetchPriceAtDate(context.Background(), "AAPL", model.MustParseDate("2024-01-02"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "185.5", rec.Close.String())

	rec, err = client.FetchPriceAtDate(context.Background(), "AAPL", model.MustParseDate("2024-01-06"))
	require.NoError(t, err)
	assert.Nil(t, rec)
}
