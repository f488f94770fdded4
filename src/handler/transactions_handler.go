package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"financequest/src/auth"
	"financequest/src/model"
	"financequest/src/repository"

	"github.com/go-chi/chi/v5"
)

type transactionSearcher interface {
	Transactions(ctx context.Context, userID string, opts repository.TransactionSearchOptions) ([]model.Transaction, int64, error)
}

type transactionPage struct {
	Transactions []model.Transaction `json:"transactions"`
	Total        int64               `json:"total"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"pageSize"`
}

// SearchTransactionsHandler lists the trades of one of the caller's games, newest first.
// Supports pagination and filters (symbol, type, from, to).
func SearchTransactionsHandler(svc transactionSearcher, sink ExceptionSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			writeFailure(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		opts := repository.TransactionSearchOptions{GameID: chi.URLParam(r, "id")}
		q := r.URL.Query()

		if symbol := q.Get("symbol"); symbol != "" {
			opts.Symbol = strings.ToUpper(symbol)
		}

		if typ := q.Get("type"); typ != "" {
			opts.Type = model.TransactionType(strings.ToLower(typ))
			if !opts.Type.Valid() {
				writeFailure(w, http.StatusBadRequest, "invalid type")
				return
			}
		}

		if from := q.Get("from"); from != "" {
			parsed, err := model.ParseDate(from)
			if err != nil {
				writeFailure(w, http.StatusBadRequest, "invalid from")
				return
			}
			opts.From = parsed
		}

		if to := q.Get("to"); to != "" {
			parsed, err := model.ParseDate(to)
			if err != nil {
				writeFailure(w, http.StatusBadRequest, "invalid to")
				return
			}
			opts.To = parsed
		}

		page := 1
		if pageParam := q.Get("page"); pageParam != "" {
			parsedPage, err := strconv.Atoi(pageParam)
			if err != nil || parsedPage <= 0 {
				writeFailure(w, http.StatusBadRequest, "invalid page")
				return
			}
			page = parsedPage
		}

		pageSize := 20
		if sizeParam := q.Get("pageSize"); sizeParam != "" {
			parsedSize, err := strconv.Atoi(sizeParam)
			if err != nil || parsedSize <= 0 || parsedSize > 100 {
				writeFailure(w, http.StatusBadRequest, "invalid pageSize")
				return
			}
			pageSize = parsedSize
		}

		opts.Limit = pageSize
		opts.Offset = (page - 1) * pageSize

		txns, total, err := svc.Transactions(r.Context(), userID, opts)
		if err != nil {
			writeError(w, r, sink, "transactions_handler", err)
			return
		}
		if txns == nil {
			txns = []model.Transaction{}
		}

		writeJSON(w, http.StatusOK, transactionPage{
			Transactions: txns,
			Total:        total,
			Page:         page,
			PageSize:     pageSize,
		})
	}
}
