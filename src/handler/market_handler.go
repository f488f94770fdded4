package handler

import (
	"context"
	"net/http"
	"strings"

	"financequest/src/assets"
	"financequest/src/model"
	"financequest/src/utils"

	"github.com/shopspring/decimal"
)

type priceReader interface {
	GetPrice(ctx context.Context, symbol string, date model.Date) *decimal.Decimal
	GetPriceHistory(ctx context.Context, symbol string, from, to model.Date) ([]model.PriceRecord, error)
}

type pricePoint struct {
	Symbol string          `json:"symbol"`
	Date   model.Date      `json:"date"`
	Price  decimal.Decimal `json:"price"`
}

// PriceHandler answers GET /api/market/price?symbol=&date=. The date defaults to today.
func PriceHandler(prices priceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol, ok := symbolParam(w, r)
		if !ok {
			return
		}
		date := utils.Today()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := model.ParseDate(raw)
			if err != nil {
				writeFailure(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
				return
			}
			date = parsed
		}

		price := prices.GetPrice(r.Context(), symbol, date)
		if price == nil {
			writeFailure(w, http.StatusNotFound, "no price available for "+symbol+" on "+date.String())
			return
		}
		writeJSON(w, http.StatusOK, pricePoint{Symbol: symbol, Date: date, Price: *price})
	}
}

// HistoryHandler answers GET /api/market/history?symbol=&from=&to=.
func HistoryHandler(prices priceReader, sink ExceptionSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol, ok := symbolParam(w, r)
		if !ok {
			return
		}
		from, errFrom := model.ParseDate(r.URL.Query().Get("from"))
		to, errTo := model.ParseDate(r.URL.Query().Get("to"))
		if errFrom != nil || errTo != nil {
			writeFailure(w, http.StatusBadRequest, "from and to are required, expected YYYY-MM-DD")
			return
		}
		if to.Before(from) {
			writeFailure(w, http.StatusBadRequest, "to must not be before from")
			return
		}

		rows, err := prices.GetPriceHistory(r.Context(), symbol, from, to)
		if err != nil {
			writeError(w, r, sink, "market_handler", err)
			return
		}
		if len(rows) == 0 {
			writeFailure(w, http.StatusNotFound, "no price history for "+symbol)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// AssetsHandler answers GET /api/market/assets?type=&q=.
func AssetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := assets.AssetType(strings.ToLower(r.URL.Query().Get("type")))
		if typ != "" && !typ.Valid() {
			writeFailure(w, http.StatusBadRequest, "invalid asset type")
			return
		}

		var list []assets.Asset
		if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
			list = assets.Search(q)
		} else {
			list = assets.All()
		}

		if typ != "" {
			filtered := make([]assets.Asset, 0, len(list))
			for _, a := range list {
				if a.Type == typ {
					filtered = append(filtered, a)
				}
			}
			list = filtered
		}
		if list == nil {
			list = []assets.Asset{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func symbolParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" {
		writeFailure(w, http.StatusBadRequest, "symbol is required")
		return "", false
	}
	if !assets.IsValidSymbol(symbol) {
		writeFailure(w, http.StatusBadRequest, "unknown symbol "+symbol)
		return "", false
	}
	return symbol, true
}
