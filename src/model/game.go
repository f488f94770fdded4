package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type GameStatus string

const (
	GameStatusActive    GameStatus = "active"
	GameStatusPaused    GameStatus = "paused"
	GameStatusCompleted GameStatus = "completed"
)

// GameSettings is stored as JSON on the game row.
type GameSettings struct {
	TransactionFees decimal.Decimal `json:"transaction_fees"`
	AllowShorting   bool            `json:"allow_shorting"`
	AllowLeverage   bool            `json:"allow_leverage"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		TransactionFees: decimal.RequireFromString("0.25"),
		AllowShorting:   true,
		AllowLeverage:   false,
	}
}

// Game is one simulation run. CurrentDate is the simulated "today" and only moves
// forward, one business day at a time, never past the real date.
type Game struct {
	ID             string                           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string                           `gorm:"type:uuid;not null;index" json:"userId"`
	StartDate      Date                             `gorm:"type:date;not null" json:"startDate"`
	CurrentDate    Date                             `gorm:"column:current_game_date;type:date;not null" json:"currentDate"`
	InitialBalance decimal.Decimal                  `gorm:"type:decimal(15,2);not null" json:"initialBalance"`
	CurrentBalance decimal.Decimal                  `gorm:"type:decimal(15,2);not null" json:"currentBalance"`
	Status         GameStatus                       `gorm:"type:varchar(20);not null;default:active;index" json:"status"`
	Settings       datatypes.JSONType[GameSettings] `json:"settings"`
	CreatedAt      time.Time                        `json:"createdAt"`
	UpdatedAt      time.Time                        `gorm:"index" json:"updatedAt"`
}

func (g *Game) IsActive() bool {
	return g.Status == GameStatusActive
}

func (g *Game) GetSettings() GameSettings {
	return g.Settings.Data()
}
