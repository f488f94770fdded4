package handler

import (
	"context"
	"net/http"
	"strconv"

	"financequest/src/auth"
	"financequest/src/game"
	"financequest/src/ledger"
	"financequest/src/model"
	"financequest/src/portfolio"
	"financequest/src/repository"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type gameService interface {
	CreateGame(ctx context.Context, req game.CreateGameRequest) (*game.CreateGameResult, error)
	ListGames(ctx context.Context, userID string, opts repository.GameListOptions) ([]game.GameSummary, int64, error)
	GetGame(ctx context.Context, gameID, userID string) (*game.GameView, error)
	AdvanceToNextDay(ctx context.Context, gameID, userID string) (*game.AdvanceResult, error)
	AdvanceMultipleDays(ctx context.Context, gameID, userID string, n int) (*game.AdvanceResult, error)
	UpdateStatus(ctx context.Context, gameID, userID string, status model.GameStatus) (*model.Game, error)
	Trade(ctx context.Context, req ledger.TradeRequest) (*game.TradeOutcome, error)
	Preview(ctx context.Context, req ledger.TradeRequest, prices ledger.PriceLookup) (*portfolio.Preview, error)
	GameAchievements(ctx context.Context, gameID, userID string) (*game.AchievementsView, error)
	Leaderboard(ctx context.Context, period game.Period, limit int) ([]game.LeaderboardEntry, error)
}

// GameHandlers serves the /api/games routes and the leaderboard.
type GameHandlers struct {
	Games  gameService
	Prices ledger.PriceLookup
	Sink   ExceptionSink
}

type tradePayload struct {
	Type     model.TransactionType `json:"type"`
	Symbol   string                `json:"symbol"`
	Quantity decimal.Decimal       `json:"quantity"`
}

type advancePayload struct {
	Days int `json:"days"`
}

type advanceResponse struct {
	*game.AdvanceResult
	StoppedEarly string `json:"stoppedEarly,omitempty"`
}

type statusPayload struct {
	Status model.GameStatus `json:"status"`
}

type gameList struct {
	Games []game.GameSummary `json:"games"`
	Total int64              `json:"total"`
}

func (h *GameHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.Sink, "game_handler", err)
}

// withUser runs next with the caller id, or answers 401.
func withUser(next func(w http.ResponseWriter, r *http.Request, userID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			writeFailure(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, userID)
	}
}

func (h *GameHandlers) Create() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, userID string) {
		var req game.CreateGameRequest
		if err := decodeJSON(r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
		req.UserID = userID

		res, err := h.Games.CreateGame(r.Context(), req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	})
}

func (h *GameHandlers) List() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, userID string) {
		opts := repository.GameListOptions{Status: model.GameStatus(r.URL.Query().Get("status"))}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit <= 0 || limit > 100 {
				writeFailure(w, http.StatusBadRequest, "invalid limit")
				return
			}
			opts.Limit = limit
		}
		if raw := r.URL.Query().Get("offset"); raw != "" {
			offset, err := strconv.Atoi(raw)
			if err != nil || offset < 0 {
				writeFailure(w, http.StatusBadRequest, "invalid offset")
				return
			}
			opts.Offset = offset
		}

		games, total, err := h.Games.ListGames(r.Context(), userID, opts)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if games == nil {
			games = []game.GameSummary{}
		}
		writeJSON(w, http.StatusOK, gameList{Games: games, Total: total})
	})
}

func (h *GameHandlers) Get() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, userID string) {
		view, err := h.Games.GetGame(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	})
}

// NextDay advances one business day, or {"days": n} of them.
func (h *GameHandlers) NextDay() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, userID string) {
		var payload advancePayload
		if err := decodeOptionalJSON(r, &payload); err != nil {
			h.fail(w, r, err)
			return
		}
		gameID := chi.URLParam(r, "id")

		if payload.Days <= 1 {
			res, err := h.Games.AdvanceToNextDay(r.Context(), gameID, userID)
			if err != nil {
				h.fail(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, advanceResponse{AdvanceResult: res})
			return
		}

		res, err := h.Games.AdvanceMultipleDays(r.Context(), gameID, userID, payload.Days)
		if err != nil && res == nil {
			h.fail(w, r, err)
			return
		}
		out := advanceResponse{AdvanceResult: res}
		if err != nil {
			out.StoppedEarly = err.Error()
		}
		writeJSON(w, http.StatusOK, out)
	})
}

// UpdateStatus answers PATCH /api/games/{id}/status with {"status": "paused"}.
func (h *GameHandlers) UpdateStatus() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, userID string) {
		var payload statusPayload
		if err := decodeJSON(r, &payload); err != nil {
			h.fail(w, r, err)
			return
		}
		g, err := h.Games.UpdateStatus(r.Context(), chi.URLParam(r, "id"), userID, payload.Status)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, g)
	})
}

func (h *GameHandlers) tradeRequest(r *http.Request, userID string) (ledger.TradeRequest, error) {
	var payload tradePayload
	if err := decodeJSON(r, &payload); err != nil {
		return ledger.TradeRequest{}, err
	}
	return ledger.TradeRequest{
		GameID:   chi.URLParam(r, "id"),
		UserID:   userID,
		Type:     payload.Type,
		Symbol:   payload.Symbol,
		Quantity: payload.Quantity,
	}, nil
}

func (h *GameHandlers) Trade() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, userID string) {
		req, err := h.tradeRequest(r, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		out, err := h.Games.Trade(r.Context(), req)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	})
}

func (h *GameHandlers) Preview() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, userID string) {
		req, err := h.tradeRequest(r, userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		p, err := h.Games.Preview(r.Context(), req, h.Prices)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	})
}

func (h *GameHandlers) Achievements() http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, userID string) {
		view, err := h.Games.GameAchievements(r.Context(), chi.URLParam(r, "id"), userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	})
}

// Leaderboard answers GET /api/leaderboard?period=&limit=.
func (h *GameHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeFailure(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = parsed
		}
		entries, err := h.Games.Leaderboard(r.Context(), game.Period(r.URL.Query().Get("period")), limit)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
