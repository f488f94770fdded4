package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionBuy   TransactionType = "buy"
	TransactionSell  TransactionType = "sell"
	TransactionShort TransactionType = "short"
	TransactionCover TransactionType = "cover"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionBuy, TransactionSell, TransactionShort, TransactionCover:
		return true
	}
	return false
}

// Transaction is an executed trade. Rows are append-only.
type Transaction struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	GameID          string          `gorm:"type:uuid;not null;index:idx_transactions_game_date,priority:1" json:"gameId"`
	Symbol          string          `gorm:"type:varchar(20);not null" json:"symbol"`
	Type            TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Quantity        decimal.Decimal `gorm:"type:decimal(15,8);not null" json:"quantity"`
	Price           decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"price"`
	Fee             decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"fee"`
	Total           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	TransactionDate Date            `gorm:"type:date;not null;index:idx_transactions_game_date,priority:2" json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}
