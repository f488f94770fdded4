// Package portfolio values games from cached prices only. It never calls the price provider.
package portfolio

import (
	"context"
	"fmt"

	"financequest/src/metrics"
	"financequest/src/model"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

type GameSource interface {
	FindByID(ctx context.Context, id string) (*model.Game, error)
}

type HoldingSource interface {
	ListByGame(ctx context.Context, gameID string) ([]model.Holding, error)
}

// PriceSource resolves many symbols for one date. Absent keys are misses.
type PriceSource interface {
	GetPrices(ctx context.Context, symbols []string, date model.Date) (map[string]decimal.Decimal, error)
}

// Snapshot is the derived financial state of a game at a date. It is never stored.
type Snapshot struct {
	GameID             string          `json:"gameId"`
	Date               model.Date      `json:"date"`
	CurrentBalance     decimal.Decimal `json:"currentBalance"`
	PortfolioValueLong decimal.Decimal `json:"portfolioValueLong"`
	ShortPositionsPnL  decimal.Decimal `json:"shortPositionsPnl"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	ReturnPercentage   decimal.Decimal `json:"returnPercentage"`
	Score              int64           `json:"score"`
	HoldingsCount      int             `json:"holdingsCount"`
	SkippedHoldings    int             `json:"skippedHoldings"`
	SkippedSymbols     []string        `json:"skippedSymbols,omitempty"`
}

// HoldingValue is one holding marked to market. For shorts CurrentValue is the P&L.
type HoldingValue struct {
	model.Holding
	CurrentPrice         decimal.Decimal `json:"currentPrice"`
	CurrentValue         decimal.Decimal `json:"currentValue"`
	ProfitLoss           decimal.Decimal `json:"profitLoss"`
	ProfitLossPercentage decimal.Decimal `json:"profitLossPercentage"`
}

type Engine struct {
	games    GameSource
	holdings HoldingSource
	prices   PriceSource
}

func NewEngine(games GameSource, holdings HoldingSource, prices PriceSource) *Engine {
	return &Engine{
		games:    games,
		holdings: holdings,
		prices:   prices,
	}
}

// CalculatePortfolio values the game at date. Holdings whose symbol has no cached price
// are left out of the totals and counted in SkippedHoldings.
func (e *Engine) CalculatePortfolio(ctx context.Context, gameID string, date model.Date) (*Snapshot, error) {
	game, err := e.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	holdings, err := e.holdings.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load holdings: %w", err)
	}
	return e.Value(ctx, game, holdings, date)
}

// Value computes the snapshot for already loaded rows.
func (e *Engine) Value(ctx context.Context, game *model.Game, holdings []model.Holding, date model.Date) (*Snapshot, error) {
	snap := &Snapshot{
		GameID:             game.ID,
		Date:               date,
		CurrentBalance:     game.CurrentBalance,
		PortfolioValueLong: decimal.Zero,
		ShortPositionsPnL:  decimal.Zero,
		HoldingsCount:      len(holdings),
	}

	if len(holdings) > 0 {
		prices, err := e.prices.GetPrices(ctx, distinctSymbols(holdings), date)
		if err != nil {
			return nil, fmt.Errorf("load prices: %w", err)
		}

		for _, h := range holdings {
			price, ok := prices[h.Symbol]
			if !ok {
				snap.SkippedHoldings++
				snap.SkippedSymbols = append(snap.SkippedSymbols, h.Symbol)
				continue
			}
			if h.IsShort {
				snap.ShortPositionsPnL = snap.ShortPositionsPnL.Add(ShortPnL(h.AverageCost, price, h.Quantity))
			} else {
				snap.PortfolioValueLong = snap.PortfolioValueLong.Add(h.Quantity.Mul(price))
			}
		}
	}

	if snap.SkippedHoldings > 0 {
		metrics.SkippedHoldings.Add(float64(snap.SkippedHoldings))
		logger.WithFields(map[string]interface{}{
			"component": "PortfolioEngine",
			"gameId":    game.ID,
			"date":      date.String(),
			"skipped":   snap.SkippedHoldings,
			"symbols":   snap.SkippedSymbols,
		}).Warn("holdings skipped, no cached price")
	}

	snap.TotalValue = snap.CurrentBalance.Add(snap.PortfolioValueLong).Add(snap.ShortPositionsPnL)
	snap.ReturnPercentage = ReturnPercentage(snap.TotalValue, game.InitialBalance)
	snap.Score = Score(snap.ReturnPercentage)
	return snap, nil
}

// CalculateHoldingsValues marks every holding of the game at date. Holdings without a
// cached price are omitted.
func (e *Engine) CalculateHoldingsValues(ctx context.Context, gameID string, date model.Date) ([]HoldingValue, error) {
	holdings, err := e.holdings.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load holdings: %w", err)
	}
	if len(holdings) == 0 {
		return []HoldingValue{}, nil
	}

	prices, err := e.prices.GetPrices(ctx, distinctSymbols(holdings), date)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}

	out := make([]HoldingValue, 0, len(holdings))
	for _, h := range holdings {
		price, ok := prices[h.Symbol]
		if !ok {
			logger.WithFields(map[string]interface{}{
				"component": "PortfolioEngine",
				"gameId":    gameID,
				"symbol":    h.Symbol,
			}).Warn("no price for holding")
			continue
		}

		hv := HoldingValue{Holding: h, CurrentPrice: price}
		costBasis := h.AverageCost.Mul(h.Quantity)
		if h.IsShort {
			hv.ProfitLoss = ShortPnL(h.AverageCost, price, h.Quantity)
			hv.CurrentValue = hv.ProfitLoss
		} else {
			hv.CurrentValue = price.Mul(h.Quantity)
			hv.ProfitLoss = hv.CurrentValue.Sub(costBasis)
		}
		hv.ProfitLossPercentage = decimal.Zero
		if costBasis.IsPositive() {
			hv.ProfitLossPercentage = hv.ProfitLoss.Div(costBasis).Mul(hundred)
		}
		out = append(out, hv)
	}
	return out, nil
}

// ShortPnL is the unrealized profit of a short: (entry - price) x quantity.
func ShortPnL(averageCost, price, quantity decimal.Decimal) decimal.Decimal {
	return averageCost.Sub(price).Mul(quantity)
}

// ReturnPercentage is (total - initial) / initial x 100, or zero for a zero initial balance.
func ReturnPercentage(total, initial decimal.Decimal) decimal.Decimal {
	if initial.IsZero() {
		return decimal.Zero
	}
	return total.Sub(initial).Div(initial).Mul(hundred)
}

// Score is floor(returnPercentage x 10).
func Score(returnPercentage decimal.Decimal) int64 {
	return returnPercentage.Mul(decimal.NewFromInt(10)).Floor().IntPart()
}

func distinctSymbols(holdings []model.Holding) []string {
	seen := make(map[string]struct{}, len(holdings))
	out := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if _, ok := seen[h.Symbol]; ok {
			continue
		}
		seen[h.Symbol] = struct{}{}
		out = append(out, h.Symbol)
	}
	return out
}
