// Package metrics provides Prometheus instrumentation for the market engine.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ProviderRequestsTotal counts price provider calls by outcome (ok, error, rate_limited).
	ProviderRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financequest_provider_requests_total",
		Help: "Price provider requests by outcome",
	}, []string{"provider", "outcome"})

	// ProviderQuotaRemaining mirrors the remaining quota reported by the provider headers.
	ProviderQuotaRemaining = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "financequest_provider_quota_remaining",
		Help: "Remaining provider requests as reported by the provider",
	}, []string{"provider"})

	// LocalQuotaUsed tracks the in-process rate insurance counter.
	LocalQuotaUsed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "financequest_local_quota_used",
		Help: "Requests counted against the local quota in the current window",
	})

	// CacheLookupsTotal counts price cache lookups by result (hit, miss).
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financequest_price_cache_lookups_total",
		Help: "Price cache lookups by result",
	}, []string{"result"})

	// PrefetchRecordsStored counts newly cached records per prefetch trigger.
	PrefetchRecordsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financequest_prefetch_records_stored_total",
		Help: "Price records inserted by prefetch trigger",
	}, []string{"trigger"})

	// PrefetchSkipped counts smart prefetches short-circuited by cache coverage.
	PrefetchSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "financequest_prefetch_skipped_total",
		Help: "Smart prefetches skipped because coverage was sufficient",
	})

	// TradesTotal counts executed trades by type.
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financequest_trades_total",
		Help: "Executed trades by type",
	}, []string{"type"})

	// TradeRejections counts trades refused by validation, by error kind.
	TradeRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financequest_trade_rejections_total",
		Help: "Trades rejected by validation",
	}, []string{"kind"})

	// DayAdvancesTotal counts day advance attempts by outcome.
	DayAdvancesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financequest_day_advances_total",
		Help: "Day advance attempts by outcome",
	}, []string{"outcome"})

	// SkippedHoldings counts holdings left out of a valuation for lack of a cached price.
	SkippedHoldings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "financequest_valuation_skipped_holdings_total",
		Help: "Holdings skipped during valuation because no price was cached",
	})

	// WebSocketClients tracks connected event stream clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "financequest_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "financequest_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "financequest_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request metrics labelled with the chi route pattern, so path
// parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}
