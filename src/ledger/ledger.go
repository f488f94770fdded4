// Package ledger executes trades: it validates them against fresh state and applies the
// balance, holding and transaction writes in one database transaction.
package ledger

import (
	"context"
	"strings"
	"time"

	"financequest/src/apperr"
	"financequest/src/assets"
	"financequest/src/metrics"
	"financequest/src/model"
	"financequest/src/portfolio"
	"financequest/src/repository"
	"financequest/src/risk"
	"financequest/src/stream"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Epsilon is the quantity at or below which a position counts as closed.
var Epsilon = decimal.New(1, -8)

// PriceLookup resolves the price used to fill a trade. Nil means unavailable.
type PriceLookup interface {
	GetPrice(ctx context.Context, symbol string, date model.Date) *decimal.Decimal
}

type TradeRequest struct {
	GameID   string                `json:"-"`
	UserID   string                `json:"-"`
	Type     model.TransactionType `json:"type"`
	Symbol   string                `json:"symbol"`
	Quantity decimal.Decimal       `json:"quantity"`
}

type TradeResult struct {
	Transaction model.Transaction `json:"transaction"`
	Balance     decimal.Decimal   `json:"balance"`
	// Holding is the position after the trade, nil when it was closed.
	Holding *model.Holding    `json:"holding"`
	Preview portfolio.Preview `json:"preview"`
}

type Ledger struct {
	db        *gorm.DB
	prices    PriceLookup
	lanes     *Lanes
	publisher stream.Publisher
}

// NewLedger builds a ledger. lanes may be shared with other writers of game state.
func NewLedger(db *gorm.DB, prices PriceLookup, lanes *Lanes, publisher stream.Publisher) *Ledger {
	if lanes == nil {
		lanes = NewLanes()
	}
	if publisher == nil {
		publisher = stream.Nop{}
	}
	return &Ledger{
		db:        db,
		prices:    prices,
		lanes:     lanes,
		publisher: publisher,
	}
}

// Execute validates and applies one trade at the game's current simulated date.
// Concurrent trades on the same game are serialized; validation always sees the state
// left by the previous trade.
func (l *Ledger) Execute(ctx context.Context, req TradeRequest) (*TradeResult, error) {
	req, checkErr := Normalize(req)
	log := logger.WithFields(map[string]interface{}{
		"component": "Ledger",
		"gameId":    req.GameID,
		"type":      req.Type,
		"symbol":    req.Symbol,
		"quantity":  req.Quantity.String(),
	})

	if checkErr != nil {
		metrics.TradeRejections.WithLabelValues("validation").Inc()
		return nil, checkErr
	}

	unlock := l.lanes.Lock(req.GameID)
	defer unlock()

	games := repository.NewGameRepositoryWithDB(l.db)
	game, err := l.findGame(ctx, games, req)
	if err != nil {
		return nil, err
	}

	price := l.prices.GetPrice(ctx, req.Symbol, game.CurrentDate)
	if price == nil {
		metrics.TradeRejections.WithLabelValues("validation").Inc()
		return nil, apperr.Validation("no price available for %s on %s", req.Symbol, game.CurrentDate.String())
	}

	var result *TradeResult
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := apply(ctx, tx, req, *price)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		switch {
		case apperr.IsConflict(err):
			metrics.TradeRejections.WithLabelValues("conflicting_position").Inc()
		case apperr.IsValidation(err), apperr.IsNotFound(err):
			metrics.TradeRejections.WithLabelValues("validation").Inc()
		default:
			log.WithError(err).Error("trade failed")
		}
		return nil, err
	}

	metrics.TradesTotal.WithLabelValues(string(req.Type)).Inc()
	log.WithFields(map[string]interface{}{
		"price":   price.String(),
		"balance": result.Balance.String(),
	}).Info("trade executed")

	l.publisher.Publish(stream.Event{
		Type:   stream.EventTradeExecuted,
		GameID: req.GameID,
		Data:   result,
	})
	return result, nil
}

func (l *Ledger) findGame(ctx context.Context, games *repository.GameRepository, req TradeRequest) (*model.Game, error) {
	if req.UserID == "" {
		return games.FindByID(ctx, req.GameID)
	}
	return games.FindForUser(ctx, req.GameID, req.UserID)
}

// MaxQuantityScale matches the decimal(15,8) quantity columns.
const MaxQuantityScale = 8

// Normalize upper-cases the symbol and rejects requests that cannot succeed, before any
// lock or price lookup.
func Normalize(req TradeRequest) (TradeRequest, error) {
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	return req, precheck(req)
}

func precheck(req TradeRequest) error {
	if !req.Type.Valid() {
		return apperr.Validation("invalid transaction type %q", req.Type)
	}
	if !req.Quantity.IsPositive() {
		return apperr.Validation("quantity must be greater than 0")
	}
	if !req.Quantity.Equal(req.Quantity.Truncate(MaxQuantityScale)) {
		return apperr.Validation("quantity supports at most %d decimal places", MaxQuantityScale)
	}
	if !assets.IsValidSymbol(req.Symbol) {
		return apperr.Validation("invalid symbol %q", req.Symbol)
	}
	return nil
}

// apply runs inside the database transaction.
func apply(ctx context.Context, tx *gorm.DB, req TradeRequest, price decimal.Decimal) (*TradeResult, error) {
	games := repository.NewGameRepositoryWithDB(tx)
	holdings := repository.NewHoldingRepositoryWithDB(tx)
	txns := repository.NewTransactionRepositoryWithDB(tx)

	game, err := games.FindByID(ctx, req.GameID)
	if err != nil {
		return nil, err
	}
	long, err := holdings.Find(ctx, game.ID, req.Symbol, false)
	if err != nil {
		return nil, err
	}
	short, err := holdings.Find(ctx, game.ID, req.Symbol, true)
	if err != nil {
		return nil, err
	}

	res := risk.Validate(req.Type, risk.TradeInput{
		Game:     game,
		Symbol:   req.Symbol,
		Quantity: req.Quantity,
		Price:    price,
		Long:     long,
		Short:    short,
	})
	if err := res.Err(req.Symbol); err != nil {
		return nil, err
	}

	preview := portfolio.CalculateTransactionPreview(req.Type, req.Quantity, price, game.GetSettings().TransactionFees)

	var position *model.Holding
	switch req.Type {
	case model.TransactionBuy:
		position, err = open(ctx, holdings, game.ID, req.Symbol, false, long, req.Quantity, price)
	case model.TransactionShort:
		position, err = open(ctx, holdings, game.ID, req.Symbol, true, short, req.Quantity, price)
	case model.TransactionSell:
		position, err = reduce(ctx, holdings, long, req.Quantity)
	case model.TransactionCover:
		position, err = reduce(ctx, holdings, short, req.Quantity)
	}
	if err != nil {
		return nil, err
	}

	balance := game.CurrentBalance.Add(preview.BalanceChange).Round(2)
	if err := games.UpdateBalance(ctx, game.ID, balance); err != nil {
		return nil, err
	}

	txn := model.Transaction{
		GameID:          game.ID,
		Symbol:          req.Symbol,
		Type:            req.Type,
		Quantity:        req.Quantity,
		Price:           price,
		Fee:             preview.FeeAmount.Round(2),
		Total:           preview.Total.Round(2),
		TransactionDate: game.CurrentDate,
		CreatedAt:       time.Now().UTC(),
	}
	if err := txns.Create(ctx, &txn); err != nil {
		return nil, err
	}

	return &TradeResult{
		Transaction: txn,
		Balance:     balance,
		Holding:     position,
		Preview:     preview,
	}, nil
}

// open creates a position or adds to it at the weighted average cost.
func open(ctx context.Context, repo *repository.HoldingRepository, gameID, symbol string, isShort bool,
	existing *model.Holding, quantity, price decimal.Decimal) (*model.Holding, error) {
	if existing == nil {
		h := &model.Holding{
			GameID:      gameID,
			Symbol:      symbol,
			IsShort:     isShort,
			Quantity:    quantity,
			AverageCost: price,
		}
		if err := repo.Create(ctx, h); err != nil {
			return nil, err
		}
		return h, nil
	}

	total := existing.Quantity.Add(quantity)
	existing.AverageCost = WeightedAverageCost(existing.Quantity, existing.AverageCost, quantity, price)
	existing.Quantity = total
	if err := repo.UpdatePosition(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// reduce lowers a position and removes it once the remainder is negligible.
func reduce(ctx context.Context, repo *repository.HoldingRepository, existing *model.Holding, quantity decimal.Decimal) (*model.Holding, error) {
	remaining := existing.Quantity.Sub(quantity)
	if remaining.LessThanOrEqual(Epsilon) {
		if err := repo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	existing.Quantity = remaining
	if err := repo.UpdatePosition(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// WeightedAverageCost is (q1*c1 + q2*c2) / (q1+q2), rounded to the stored scale.
func WeightedAverageCost(q1, c1, q2, c2 decimal.Decimal) decimal.Decimal {
	total := q1.Add(q2)
	if total.IsZero() {
		return decimal.Zero
	}
	return q1.Mul(c1).Add(q2.Mul(c2)).Div(total).Round(4)
}
