package repository

import (
	"context"

	"financequest/src/model"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TransactionRepository appends and reads executed trades. There is no update path.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepositoryWithDB binds the repository to db, a handle or a transaction.
func NewTransactionRepositoryWithDB(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionSearchOptions filters Search. Zero values mean "no filter".
type TransactionSearchOptions struct {
	GameID string
	Symbol string
	Type   model.TransactionType
	From   model.Date
	To     model.Date
	Limit  int
	Offset int
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}

	logger.WithFields(map[string]interface{}{
		"repo":   "TransactionRepository",
		"op":     "Create",
		"gameId": txn.GameID,
		"symbol": txn.Symbol,
		"type":   txn.Type,
	}).Debug("Recording transaction")

	return r.db.WithContext(ctx).Create(txn).Error
}

// Search returns matching transactions newest first, and the total before pagination.
func (r *TransactionRepository) Search(ctx context.Context, opts TransactionSearchOptions) ([]model.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{})
	if opts.GameID != "" {
		q = q.Where("game_id = ?", opts.GameID)
	}
	if opts.Symbol != "" {
		q = q.Where("symbol = ?", opts.Symbol)
	}
	if opts.Type != "" {
		q = q.Where("type = ?", opts.Type)
	}
	if !opts.From.IsZero() {
		q = q.Where("transaction_date >= ?", opts.From)
	}
	if !opts.To.IsZero() {
		q = q.Where("transaction_date <= ?", opts.To)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var txns []model.Transaction
	if err := q.Order("transaction_date DESC, created_at DESC, id DESC").Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// CountByGame returns the number of trades executed in the game.
func (r *TransactionRepository) CountByGame(ctx context.Context, gameID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return count, err
}
