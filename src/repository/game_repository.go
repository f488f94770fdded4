package repository

import (
	"context"
	"errors"
	"time"

	"financequest/src/apperr"
	"financequest/src/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GameRepository handles read/write operations for games.
type GameRepository struct {
	db *gorm.DB
}

// NewGameRepositoryWithDB binds the repository to db, a handle or a transaction.
func NewGameRepositoryWithDB(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// GameListOptions filters ListByUser. Zero values mean "no filter".
type GameListOptions struct {
	Status model.GameStatus
	Limit  int
	Offset int
}

func (r *GameRepository) Create(ctx context.Context, game *model.Game) error {
	if game.ID == "" {
		game.ID = uuid.NewString()
	}

	logger.WithFields(map[string]interface{}{
		"repo":      "GameRepository",
		"op":        "Create",
		"userId":    game.UserID,
		"startDate": game.StartDate.String(),
	}).Debug("Creating new game")

	return r.db.WithContext(ctx).Create(game).Error
}

// FindByID returns the game or a NotFoundError.
func (r *GameRepository) FindByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("game", id)
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// FindForUser returns the game only when userID owns it; otherwise a NotFoundError, so
// foreign ids are indistinguishable from missing ones.
func (r *GameRepository) FindForUser(ctx context.Context, id, userID string) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("game", id)
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListByUser returns the user's games, most recently updated first, and the total count
// before pagination.
func (r *GameRepository) ListByUser(ctx context.Context, userID string, opts GameListOptions) ([]model.Game, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Game{}).Where("user_id = ?", userID)
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
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

	var games []model.Game
	if err := q.Order("updated_at DESC, id ASC").Find(&games).Error; err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

func (r *GameRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Game{}).
		Where("user_id = ? AND status = ?", userID, model.GameStatusActive).
		Count(&count).Error
	return count, err
}

// ListActive returns up to limit active games, most recently updated first. A non-nil
// since keeps only games updated at or after it.
func (r *GameRepository) ListActive(ctx context.Context, since *time.Time, limit int) ([]model.Game, error) {
	q := r.db.WithContext(ctx).Where("status = ?", model.GameStatusActive)
	if since != nil {
		q = q.Where("updated_at >= ?", *since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var games []model.Game
	if err := q.Order("updated_at DESC").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *GameRepository) UpdateCurrentDate(ctx context.Context, id string, date model.Date) error {
	return r.updateColumn(ctx, id, "current_game_date", date)
}

func (r *GameRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	return r.updateColumn(ctx, id, "current_balance", balance)
}

func (r *GameRepository) UpdateStatus(ctx context.Context, id string, status model.GameStatus) error {
	return r.updateColumn(ctx, id, "status", status)
}

func (r *GameRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&model.Game{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "GameRepository",
			"op":     "updateColumn",
			"gameId": id,
			"column": column,
		}).WithError(res.Error).Error("Failed to update game")
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("game", id)
	}
	return nil
}

func (r *GameRepository) CountAll(ctx context.Context) (total int64, active int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.Game{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).
		Model(&model.Game{}).
		Where("status = ?", model.GameStatusActive).
		Count(&active).Error
	return total, active, err
}

// DeleteCompletedBefore removes completed games last updated before cutoff together with
// their holdings, transactions and achievement unlocks. It returns the deleted game count.
func (r *GameRepository) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.Game{}).
			Where("status = ? AND updated_at < ?", model.GameStatusCompleted, cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("game_id IN ?", ids).Delete(&model.Holding{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id IN ?", ids).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id IN ?", ids).Delete(&model.UserAchievement{}).Error; err != nil {
			return err
		}

		res := tx.Where("id IN ?", ids).Delete(&model.Game{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "GameRepository",
			"op":     "DeleteCompletedBefore",
			"cutoff": cutoff,
		}).WithError(err).Error("Failed to delete completed games")
		return 0, err
	}

	return deleted, nil
}
