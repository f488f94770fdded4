package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"financequest/src/apperr"
	"financequest/src/auth"
	"financequest/src/model"
	"financequest/src/repository"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type mockTransactionSearcher struct {
	txns        []model.Transaction
	total       int64
	err         error
	userID      string
	opts        repository.TransactionSearchOptions
	calledCount int
}

func (m *mockTransactionSearcher) Transactions(_ context.Context, userID string, opts repository.TransactionSearchOptions) ([]model.Transaction, int64, error) {
	m.calledCount++
	m.userID = userID
	m.opts = opts
	return m.txns, m.total, m.err
}

// serveTransactions routes through chi so the {id} parameter is populated.
func serveTransactions(h http.HandlerFunc, target, userID string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/games/{id}/transactions", h)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSearchTransactionsHandler_Unauthorized(t *testing.T) {
	mock := &mockTransactionSearcher{}
	rr := serveTransactions(SearchTransactionsHandler(mock, nil), "/api/games/g1/transactions", "")

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
	if mock.calledCount != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestSearchTransactionsHandler_InvalidParams(t *testing.T) {
	for _, target := range []string{
		"/api/games/g1/transactions?type=hold",
		"/api/games/g1/transactions?from=01-02-2024",
		"/api/games/g1/transactions?to=yesterday",
		"/api/games/g1/transactions?page=0",
		"/api/games/g1/transactions?pageSize=101",
	} {
		rr := serveTransactions(SearchTransactionsHandler(&mockTransactionSearcher{}, nil), target, "u1")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", target, rr.Code)
		}
	}
}

func TestSearchTransactionsHandler_NotFound(t *testing.T) {
	mock := &mockTransactionSearcher{err: apperr.NotFound("game", "g1")}
	rr := serveTransactions(SearchTransactionsHandler(mock, nil), "/api/games/g1/transactions", "u1")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestSearchTransactionsHandler_Success(t *testing.T) {
	mock := &mockTransactionSearcher{
		txns: []model.Transaction{{
			ID:              "t1",
			GameID:          "g1",
			Symbol:          "AAPL",
			Type:            model.TransactionBuy,
			Quantity:        decimal.NewFromInt(2),
			Price:           decimal.NewFromInt(100),
			TransactionDate: model.MustParseDate("2024-01-02"),
		}},
		total: 7,
	}

	rr := serveTransactions(SearchTransactionsHandler(mock, nil),
		"/api/games/g1/transactions?symbol=aapl&type=BUY&from=2024-01-01&to=2024-01-31&page=2&pageSize=5", "u1")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	assert.Equal(t, "u1", mock.userID)
	assert.Equal(t, "g1", mock.opts.GameID)
	assert.Equal(t, "AAPL", mock.opts.Symbol)
	assert.Equal(t, model.TransactionBuy, mock.opts.Type)
	assert.Equal(t, "2024-01-01", mock.opts.From.String())
	assert.Equal(t, "2024-01-31", mock.opts.To.String())
	assert.Equal(t, 5, mock.opts.Limit)
	assert.Equal(t, 5, mock.opts.Offset)

	var body struct {
		Success bool            `json:"success"`
		Data    transactionPage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	assert.True(t, body.Success)
	assert.Equal(t, int64(7), body.Data.Total)
	assert.Len(t, body.Data.Transactions, 1)
	assert.Equal(t, "AAPL", body.Data.Transactions[0].Symbol)
}
