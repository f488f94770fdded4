package repository

import (
	"context"

	"financequest/src/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HoldingRepository persists open positions.
type HoldingRepository struct {
	db *gorm.DB
}

// NewHoldingRepositoryWithDB binds the repository to db, a handle or a transaction.
func NewHoldingRepositoryWithDB(db *gorm.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// ListByGame returns every holding of the game ordered by symbol then side.
func (r *HoldingRepository) ListByGame(ctx context.Context, gameID string) ([]model.Holding, error) {
	var holdings []model.Holding
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("symbol ASC, is_short ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// Find returns the holding for (game, symbol, side), or (nil, nil) when there is none.
func (r *HoldingRepository) Find(ctx context.Context, gameID, symbol string, isShort bool) (*model.Holding, error) {
	var holdings []model.Holding
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND symbol = ? AND is_short = ?", gameID, symbol, isShort).
		Limit(1).
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return nil, nil
	}
	return &holdings[0], nil
}

func (r *HoldingRepository) Create(ctx context.Context, h *model.Holding) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(h).Error
}

// UpdatePosition writes the new quantity and average cost of an existing holding.
func (r *HoldingRepository) UpdatePosition(ctx context.Context, h *model.Holding) error {
	return r.db.WithContext(ctx).
		Model(&model.Holding{}).
		Where("id = ?", h.ID).
		Updates(map[string]interface{}{
			"quantity":     h.Quantity,
			"average_cost": h.AverageCost,
		}).Error
}

func (r *HoldingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Holding{}).Error
}
