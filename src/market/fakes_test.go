package market

import (
	"context"
	"errors"
	"sort"
	"sync"

	"financequest/src/model"
	"financequest/src/utils"

	"github.com/shopspring/decimal"
)

type memoryCache struct {
	mu      sync.Mutex
	records map[model.PriceKey]model.PriceRecord
	fail    error
}

func newMemoryCache(records ...model.PriceRecord) *memoryCache {
	c := &memoryCache{records: make(map[model.PriceKey]model.PriceRecord)}
	for _, r := range records {
		c.records[r.Key()] = r
	}
	return c
}

func (c *memoryCache) GetPrice(_ context.Context, symbol string, date model.Date) (*decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return nil, c.fail
	}
	r, ok := c.records[model.PriceKey{Symbol: symbol, Date: date}]
	if !ok {
		return nil, nil
	}
	price := r.Close
	return &price, nil
}

func (c *memoryCache) GetPrices(_ context.Context, symbols []string, date model.Date) (map[string]decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return nil, c.fail
	}
	out := make(map[string]decimal.Decimal)
	for _, s := range symbols {
		if r, ok := c.records[model.PriceKey{Symbol: s, Date: date}]; ok {
			out[s] = r.Close
		}
	}
	return out, nil
}

func (c *memoryCache) GetRange(_ context.Context, symbol string, from, to model.Date) ([]model.PriceRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.PriceRecord
	for k, r := range c.records {
		if k.Symbol == symbol && !k.Date.Before(from) && !k.Date.After(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (c *memoryCache) Store(_ context.Context, records []model.PriceRecord) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return 0, c.fail
	}
	var stored int64
	for _, r := range records {
		if _, ok := c.records[r.Key()]; ok {
			continue
		}
		c.records[r.Key()] = r
		stored++
	}
	return stored, nil
}

func (c *memoryCache) EstimateCoverage(_ context.Context, from, to model.Date, sample []string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	expected := utils.BusinessDaysBetween(from, to)
	if expected == 0 || len(sample) == 0 {
		return 1, nil
	}
	covered := 0
	for _, s := range sample {
		days := 0
		for k := range c.records {
			if k.Symbol == s && !k.Date.Before(from) && !k.Date.After(to) {
				days++
			}
		}
		if days > expected {
			days = expected
		}
		covered += days
	}
	return float64(covered) / float64(expected*len(sample)), nil
}

func (c *memoryCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// racingCache hides a row from the first lookup, as if another writer inserted it
// between the lookup and the store.
type racingCache struct {
	*memoryCache
	hidden bool
}

func (c *racingCache) GetPrice(ctx context.Context, symbol string, date model.Date) (*decimal.Decimal, error) {
	if !c.hidden {
		c.hidden = true
		return nil, nil
	}
	return c.memoryCache.GetPrice(ctx, symbol, date)
}

// recordingHot is an in-memory hot layer that remembers every write.
type recordingHot struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
}

func (h *recordingHot) Get(_ context.Context, symbol string, date model.Date) (decimal.Decimal, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.prices[priceKey(symbol, date)]
	return p, ok
}

func (h *recordingHot) Set(_ context.Context, symbol string, date model.Date, price decimal.Decimal) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.prices == nil {
		h.prices = make(map[string]decimal.Decimal)
	}
	h.prices[priceKey(symbol, date)] = price
}

type fetchCall struct {
	Symbols []string
	From    model.Date
	To      model.Date
}

// scriptedProvider answers from a fixed data set and records every call.
type scriptedProvider struct {
	mu    sync.Mutex
	data  []model.PriceRecord
	err   error
	calls []fetchCall
}

func (p *scriptedProvider) FetchRange(_ context.Context, symbols []string, from, to model.Date, _ int) ([]model.PriceRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, fetchCall{Symbols: append([]string(nil), symbols...), From: from, To: to})
	if p.err != nil {
		return nil, p.err
	}
	wanted := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		wanted[s] = struct{}{}
	}
	var out []model.PriceRecord
	for _, r := range p.data {
		if _, ok := wanted[r.Symbol]; !ok {
			continue
		}
		if r.Date.Before(from) || (!to.IsZero() && r.Date.After(to)) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (p *scriptedProvider) FetchPriceAtDate(ctx context.Context, symbol string, date model.Date) (*model.PriceRecord, error) {
	records, err := p.FetchRange(ctx, []string{symbol}, date, date, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (p *scriptedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

var errProviderDown = errors.New("provider down")

func rec(symbol, date, close string) model.PriceRecord {
	return model.PriceRecord{Symbol: symbol, Date: model.MustParseDate(date), Close: decimal.RequireFromString(close)}
}
