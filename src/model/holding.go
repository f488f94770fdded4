package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is an open position. A game holds at most one long and one short row per
// symbol; validation keeps them mutually exclusive.
type Holding struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	GameID      string          `gorm:"type:uuid;not null;uniqueIndex:ux_holdings_game_symbol_side,priority:1" json:"gameId"`
	Symbol      string          `gorm:"type:varchar(20);not null;uniqueIndex:ux_holdings_game_symbol_side,priority:2" json:"symbol"`
	IsShort     bool            `gorm:"not null;default:false;uniqueIndex:ux_holdings_game_symbol_side,priority:3" json:"isShort"`
	Quantity    decimal.Decimal `gorm:"type:decimal(15,8);not null" json:"quantity"`
	AverageCost decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"averageCost"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
