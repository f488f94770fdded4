// REST client for the MarketStack end-of-day API.
// No automatic retry: a failed call is reported to the caller, who decides.
package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"financequest/src/apperr"
	"financequest/src/metrics"
	"financequest/src/model"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

const ProviderMarketStack = "marketstack"

const (
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitReset     = "X-RateLimit-Reset"
)

// TelemetrySink persists provider quota telemetry.
type TelemetrySink interface {
	SaveProviderStats(ctx context.Context, stats *model.APIStats) error
}

// -----------------------------
// WIRE FORMAT
// -----------------------------
type eodBar struct {
	Symbol   string              `json:"symbol"`
	Exchange string              `json:"exchange"`
	Date     string              `json:"date"`
	Open     decimal.NullDecimal `json:"open"`
	High     decimal.NullDecimal `json:"high"`
	Low      decimal.NullDecimal `json:"low"`
	Close    decimal.NullDecimal `json:"close"`
	Volume   *float64            `json:"volume"`
}

type eodPagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
	Total  int `json:"total"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type eodResponse struct {
	Pagination *eodPagination `json:"pagination"`
	Data       []eodBar       `json:"data"`
	Error      *errorEnvelope `json:"error"`
}

// -----------------------------
// CLIENT
// -----------------------------
type MarketStackClient struct {
	apiKey    string
	cfg       Config
	http      *resty.Client
	quota     *QuotaGuard
	telemetry TelemetrySink
	wg        sync.WaitGroup
}

func NewMarketStackClient(cfg Config, quota *QuotaGuard, telemetry TelemetrySink) *MarketStackClient {
	if cfg.SymbolCap <= 0 {
		cfg.SymbolCap = 100
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 1000
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.TelemetryTimeout <= 0 {
		cfg.TelemetryTimeout = 5 * time.Second
	}
	if quota == nil {
		quota = NewQuotaGuard(cfg.QuotaLimit, cfg.QuotaWindow)
	}
	if cfg.MarketStackAPIKey == "" {
		logger.WithField("component", "MarketStackClient").Warn("MARKETSTACK_API_KEY is empty, provider calls will be rejected")
	}

	httpClient := resty.New().
		SetBaseURL(cfg.MarketStackBaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &MarketStackClient{
		apiKey:    cfg.MarketStackAPIKey,
		cfg:       cfg,
		http:      httpClient,
		quota:     quota,
		telemetry: telemetry,
	}
}

// Quota exposes the local rate insurance counter for monitoring.
func (c *MarketStackClient) Quota() *QuotaGuard {
	return c.quota
}

// Wait blocks until pending telemetry writes are done.
func (c *MarketStackClient) Wait() {
	c.wg.Wait()
}

// FetchRange fetches EOD bars for symbols over [from, to]. A zero to means "up to the
// latest available day". Symbol lists above the per-call cap are chunked and fetched
// sequentially; each chunk follows pagination up to MaxPages. Any failure aborts the
// whole fetch and no partial result is returned.
func (c *MarketStackClient) FetchRange(
	ctx context.Context,
	symbols []string,
	from model.Date,
	to model.Date,
	limit int,
) ([]model.PriceRecord, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > c.cfg.PageLimit {
		limit = c.cfg.PageLimit
	}

	var out []model.PriceRecord
	for start := 0; start < len(symbols); start += c.cfg.SymbolCap {
		end := start + c.cfg.SymbolCap
		if end > len(symbols) {
			end = len(symbols)
		}
		chunk := symbols[start:end]

		records, err := c.fetchChunk(ctx, chunk, from, to, limit)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"component": "MarketStackClient",
				"symbols":   len(chunk),
				"chunk":     start / c.cfg.SymbolCap,
				"from":      from.String(),
				"to":        to.String(),
			}).WithError(err).Error("fetch range failed")
			return nil, err
		}
		out = append(out, records...)
	}

	logger.WithFields(map[string]interface{}{
		"component": "MarketStackClient",
		"symbols":   len(symbols),
		"from":      from.String(),
		"to":        to.String(),
		"records":   len(out),
	}).Debug("fetch range completed")

	return out, nil
}

// FetchPriceAtDate returns the bar for symbol on date, or nil when the provider has none.
func (c *MarketStackClient) FetchPriceAtDate(ctx context.Context, symbol string, date model.Date) (*model.PriceRecord, error) {
	records, err := c.FetchRange(ctx, []string{symbol}, date, date, 1)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Symbol == symbol && records[i].Date == date {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (c *MarketStackClient) fetchChunk(
	ctx context.Context,
	symbols []string,
	from model.Date,
	to model.Date,
	limit int,
) ([]model.PriceRecord, error) {
	var out []model.PriceRecord
	offset := 0

	for page := 0; page < c.cfg.MaxPages; page++ {
		resp, err := c.doEOD(ctx, symbols, from, to, limit, offset)
		if err != nil {
			return nil, err
		}

		for _, bar := range resp.Data {
			record, ok := toPriceRecord(bar)
			if !ok {
				continue
			}
			out = append(out, record)
		}

		p := resp.Pagination
		if p == nil || p.Count == 0 || p.Offset+p.Count >= p.Total {
			return out, nil
		}
		offset = p.Offset + p.Count
	}

	logger.WithFields(map[string]interface{}{
		"component": "MarketStackClient",
		"maxPages":  c.cfg.MaxPages,
		"records":   len(out),
	}).Warn("pagination truncated at max pages")

	return out, nil
}

func (c *MarketStackClient) doEOD(
	ctx context.Context,
	symbols []string,
	from model.Date,
	to model.Date,
	limit int,
	offset int,
) (*eodResponse, error) {
	if c.apiKey == "" {
		return nil, &apperr.ExternalAPIError{Provider: ProviderMarketStack, Code: "missing_access_key", Message: "MARKETSTACK_API_KEY is not configured"}
	}
	if err := c.quota.Acquire(); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(ProviderMarketStack, "rate_limited").Inc()
		logger.WithFields(map[string]interface{}{
			"component": "MarketStackClient",
			"limit":     c.quota.Limit(),
		}).Warn("local quota exhausted, refusing provider call")
		return nil, err
	}

	params := map[string]string{
		"access_key": c.apiKey,
		"symbols":    strings.Join(symbols, ","),
		"date_from":  from.String(),
		"limit":      strconv.Itoa(limit),
		"offset":     strconv.Itoa(offset),
	}
	if !to.IsZero() {
		params["date_to"] = to.String()
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/eod")

	if resp != nil && resp.RawResponse != nil {
		c.recordTelemetry(resp.Header())
	}

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(ProviderMarketStack, "error").Inc()
		return nil, &apperr.ExternalAPIError{Provider: ProviderMarketStack, Message: err.Error()}
	}

	raw := resp.Body()
	var parsed eodResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		metrics.ProviderRequestsTotal.WithLabelValues(ProviderMarketStack, "error").Inc()
		return nil, envelopeError(resp.StatusCode(), parsed.Error, raw)
	}
	if decodeErr != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(ProviderMarketStack, "error").Inc()
		return nil, &apperr.ExternalAPIError{
			Provider:   ProviderMarketStack,
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("malformed payload: %v", decodeErr),
		}
	}
	if parsed.Error != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(ProviderMarketStack, "error").Inc()
		return nil, envelopeError(resp.StatusCode(), parsed.Error, raw)
	}

	metrics.ProviderRequestsTotal.WithLabelValues(ProviderMarketStack, "ok").Inc()
	return &parsed, nil
}

func envelopeError(status int, env *errorEnvelope, raw []byte) error {
	e := &apperr.ExternalAPIError{Provider: ProviderMarketStack, StatusCode: status}
	switch {
	case env != nil && env.Message != "":
		e.Code = env.Code
		e.Message = env.Message
	case env != nil && env.Code != "":
		e.Code = env.Code
		e.Message = GetErrorMsg(env.Code)
	default:
		body := strings.TrimSpace(string(raw))
		if len(body) > 200 {
			body = body[:200]
		}
		if body == "" {
			body = http.StatusText(status)
		}
		e.Message = body
	}
	return e
}

// recordTelemetry reads the provider quota headers and persists them off the request path.
func (c *MarketStackClient) recordTelemetry(h http.Header) {
	stats, ok := parseRateLimitHeaders(h)
	if !ok {
		return
	}
	if stats.RequestsRemaining != nil {
		metrics.ProviderQuotaRemaining.WithLabelValues(ProviderMarketStack).Set(float64(*stats.RequestsRemaining))
	}
	if c.telemetry == nil {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.TelemetryTimeout)
		defer cancel()

		if err := c.telemetry.SaveProviderStats(ctx, stats); err != nil {
			logger.WithField("component", "MarketStackClient").
				WithError(err).
				Warn("failed to persist provider telemetry")
		}
	}()
}

func parseRateLimitHeaders(h http.Header) (*model.APIStats, bool) {
	stats := &model.APIStats{
		Provider:    ProviderMarketStack,
		LastUpdated: time.Now().UTC(),
	}
	found := false

	if v, err := strconv.Atoi(h.Get(headerRateLimitRemaining)); err == nil {
		stats.RequestsRemaining = &v
		found = true
	}
	if v, err := strconv.Atoi(h.Get(headerRateLimitLimit)); err == nil {
		stats.RequestsLimit = &v
		found = true
	}
	if v, err := strconv.ParseInt(h.Get(headerRateLimitReset), 10, 64); err == nil {
		reset := time.Unix(v, 0).UTC()
		stats.ResetAt = &reset
		found = true
	}

	return stats, found
}

func toPriceRecord(bar eodBar) (model.PriceRecord, bool) {
	if bar.Symbol == "" || !bar.Close.Valid || len(bar.Date) < len(model.DateLayout) {
		return model.PriceRecord{}, false
	}
	date, err := model.ParseDate(bar.Date[:len(model.DateLayout)])
	if err != nil {
		return model.PriceRecord{}, false
	}

	record := model.PriceRecord{
		Symbol: bar.Symbol,
		Date:   date,
		Open:   bar.Open,
		High:   bar.High,
		Low:    bar.Low,
		Close:  bar.Close.Decimal,
	}
	if bar.Volume != nil {
		v := int64(*bar.Volume)
		record.Volume = &v
	}
	if bar.Exchange != "" {
		exchange := bar.Exchange
		record.Exchange = &exchange
	}
	return record, true
}

func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
