package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"financequest/src/apperr"
	"financequest/src/auth"
	"financequest/src/game"
	"financequest/src/ledger"
	"financequest/src/model"
	"financequest/src/portfolio"
	"financequest/src/repository"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGameService struct {
	createReq  game.CreateGameRequest
	tradeReq   ledger.TradeRequest
	advanceN   int
	period     game.Period
	limit      int
	err        error
	partialErr error
	status     model.GameStatus
}

func (m *mockGameService) CreateGame(_ context.Context, req game.CreateGameRequest) (*game.CreateGameResult, error) {
	m.createReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &game.CreateGameResult{Game: &model.Game{ID: "g1", UserID: req.UserID}}, nil
}

func (m *mockGameService) ListGames(_ context.Context, _ string, _ repository.GameListOptions) ([]game.GameSummary, int64, error) {
	return nil, 0, m.err
}

func (m *mockGameService) GetGame(_ context.Context, gameID, userID string) (*game.GameView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &game.GameView{Game: &model.Game{ID: gameID, UserID: userID}}, nil
}

func (m *mockGameService) AdvanceToNextDay(_ context.Context, _, _ string) (*game.AdvanceResult, error) {
	m.advanceN = 1
	if m.err != nil {
		return nil, m.err
	}
	return &game.AdvanceResult{NewDate: model.MustParseDate("2024-01-03")}, nil
}

func (m *mockGameService) AdvanceMultipleDays(_ context.Context, _, _ string, n int) (*game.AdvanceResult, error) {
	m.advanceN = n
	if m.err != nil {
		return nil, m.err
	}
	return &game.AdvanceResult{NewDate: model.MustParseDate("2024-01-05")}, m.partialErr
}

func (m *mockGameService) Trade(_ context.Context, req ledger.TradeRequest) (*game.TradeOutcome, error) {
	m.tradeReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &game.TradeOutcome{TradeResult: &ledger.TradeResult{Balance: decimal.NewFromInt(9495)}, Achievements: []model.Achievement{}}, nil
}

func (m *mockGameService) Preview(_ context.Context, req ledger.TradeRequest, _ ledger.PriceLookup) (*portfolio.Preview, error) {
	m.tradeReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &portfolio.Preview{Total: decimal.NewFromInt(505)}, nil
}

func (m *mockGameService) UpdateStatus(_ context.Context, gameID, _ string, status model.GameStatus) (*model.Game, error) {
	m.status = status
	if m.err != nil {
		return nil, m.err
	}
	return &model.Game{ID: gameID, Status: status}, nil
}

func (m *mockGameService) GameAchievements(_ context.Context, _, _ string) (*game.AchievementsView, error) {
	return &game.AchievementsView{Points: 10}, m.err
}

func (m *mockGameService) Leaderboard(_ context.Context, period game.Period, limit int) ([]game.LeaderboardEntry, error) {
	m.period, m.limit = period, limit
	return []game.LeaderboardEntry{{Rank: 1, GameID: "g1"}}, m.err
}

func gameRouter(h *GameHandlers) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/games", h.Create())
	r.Get("/api/games", h.List())
	r.Get("/api/games/{id}", h.Get())
	r.Patch("/api/games/{id}/status", h.UpdateStatus())
	r.Post("/api/games/{id}/next-day", h.NextDay())
	r.Post("/api/games/{id}/trades", h.Trade())
	r.Post("/api/games/{id}/preview", h.Preview())
	r.Get("/api/games/{id}/achievements", h.Achievements())
	r.Get("/api/leaderboard", h.Leaderboard())
	return r
}

func do(t *testing.T, h http.Handler, method, target, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGameHandlers_RequireUser(t *testing.T) {
	h := gameRouter(&GameHandlers{Games: &mockGameService{}})
	for _, route := range []struct{ method, target string }{
		{http.MethodPost, "/api/games"},
		{http.MethodGet, "/api/games"},
		{http.MethodGet, "/api/games/g1"},
		{http.MethodPatch, "/api/games/g1/status"},
		{http.MethodPost, "/api/games/g1/next-day"},
		{http.MethodPost, "/api/games/g1/trades"},
		{http.MethodGet, "/api/games/g1/achievements"},
	} {
		rr := do(t, h, route.method, route.target, "", "")
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", route.method, route.target, rr.Code)
		}
	}
}

func TestGameHandlers_Create(t *testing.T) {
	svc := &mockGameService{}
	h := gameRouter(&GameHandlers{Games: svc})

	rr := do(t, h, http.MethodPost, "/api/games",
		`{"startDate":"2024-01-02","settings":{"transactionFees":"0.5","allowShorting":false}}`, "u1")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	assert.Equal(t, "u1", svc.createReq.UserID)
	assert.Equal(t, "2024-01-02", svc.createReq.StartDate)
	require.NotNil(t, svc.createReq.Settings)
	assert.True(t, svc.createReq.Settings.TransactionFees.Equal(decimal.RequireFromString("0.5")))
	assert.False(t, *svc.createReq.Settings.AllowShorting)

	rr = do(t, h, http.MethodPost, "/api/games", `{"startDate":"2024-01-02","userId":"someone-else"}`, "u1")
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown fields are refused")
}

func TestGameHandlers_TradeMapsErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{apperr.Validation("insufficient balance: required 505.00, available 100.00"), http.StatusBadRequest},
		{apperr.Conflict("AAPL", "cannot buy AAPL: an open short position exists"), http.StatusConflict},
		{apperr.NotFound("game", "g1"), http.StatusNotFound},
	}
	for _, tt := range tests {
		svc := &mockGameService{err: tt.err}
		rr := do(t, gameRouter(&GameHandlers{Games: svc}), http.MethodPost, "/api/games/g1/trades",
			`{"type":"buy","symbol":"aapl","quantity":"10"}`, "u1")
		assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		assert.Equal(t, "g1", svc.tradeReq.GameID)
		assert.Equal(t, "u1", svc.tradeReq.UserID)
		assert.Equal(t, model.TransactionBuy, svc.tradeReq.Type)
		assert.True(t, svc.tradeReq.Quantity.Equal(decimal.NewFromInt(10)))
	}
}

func TestGameHandlers_Preview(t *testing.T) {
	svc := &mockGameService{}
	rr := do(t, gameRouter(&GameHandlers{Games: svc}), http.MethodPost, "/api/games/g1/preview",
		`{"type":"buy","symbol":"AAPL","quantity":10}`, "u1")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    portfolio.Preview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.True(t, body.Data.Total.Equal(decimal.NewFromInt(505)))
}

func TestGameHandlers_NextDay(t *testing.T) {
	svc := &mockGameService{}
	h := gameRouter(&GameHandlers{Games: svc})

	rr := do(t, h, http.MethodPost, "/api/games/g1/next-day", "", "u1")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 1, svc.advanceN)
	assert.Contains(t, rr.Body.String(), `"newDate":"2024-01-03"`)

	rr = do(t, h, http.MethodPost, "/api/games/g1/next-day", `{"days":3}`, "u1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, svc.advanceN)

	svc.partialErr = apperr.Validation("the game has reached the current date")
	rr = do(t, h, http.MethodPost, "/api/games/g1/next-day", `{"days":5}`, "u1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"stoppedEarly":"the game has reached the current date"`)

	svc.err = apperr.Validation("game is not active")
	rr = do(t, h, http.MethodPost, "/api/games/g1/next-day", "", "u1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameHandlers_Leaderboard(t *testing.T) {
	svc := &mockGameService{}
	h := gameRouter(&GameHandlers{Games: svc})

	rr := do(t, h, http.MethodGet, "/api/leaderboard?period=weekly&limit=5", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, game.PeriodWeekly, svc.period)
	assert.Equal(t, 5, svc.limit)

	rr = do(t, h, http.MethodGet, "/api/leaderboard?limit=ten", "", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameHandlers_GetAndAchievements(t *testing.T) {
	svc := &mockGameService{}
	h := gameRouter(&GameHandlers{Games: svc})

	rr := do(t, h, http.MethodGet, "/api/games/g1", "", "u1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"g1"`)

	rr = do(t, h, http.MethodGet, "/api/games/g1/achievements", "", "u1")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"totalPoints":10`)

	svc.err = apperr.NotFound("game", "g1")
	rr = do(t, h, http.MethodGet, "/api/games/g1", "", "u1")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameHandlers_UpdateStatus(t *testing.T) {
	svc := &mockGameService{}
	h := gameRouter(&GameHandlers{Games: svc})

	rr := do(t, h, http.MethodPatch, "/api/games/g1/status", `{"status":"paused"}`, "u1")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, model.GameStatusPaused, svc.status)
	assert.Contains(t, rr.Body.String(), `"status":"paused"`)

	rr = do(t, h, http.MethodPatch, "/api/games/g1/status", `{"state":"paused"}`, "u1")
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown fields are refused")

	svc.err = apperr.Validation("game is completed and cannot change status")
	rr = do(t, h, http.MethodPatch, "/api/games/g1/status", `{"status":"active"}`, "u1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "game is completed")
}
