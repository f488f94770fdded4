package repository

import (
	"context"
	"time"

	"financequest/src/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementRepository reads the achievement catalog and records unlocks.
type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepositoryWithDB(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// ListCatalog returns every achievement ordered by points then code.
func (r *AchievementRepository) ListCatalog(ctx context.Context) ([]model.Achievement, error) {
	var out []model.Achievement
	err := r.db.WithContext(ctx).Order("points ASC, code ASC").Find(&out).Error
	return out, err
}

// ListUnlocked returns the unlocks of a game with their catalog entry, oldest first.
func (r *AchievementRepository) ListUnlocked(ctx context.Context, gameID string) ([]model.UserAchievement, error) {
	var out []model.UserAchievement
	err := r.db.WithContext(ctx).
		Preload("Achievement").
		Where("game_id = ?", gameID).
		Order("unlocked_at ASC").
		Find(&out).Error
	return out, err
}

// Unlock records the achievement for the game. It reports false when the game had
// already unlocked it.
func (r *AchievementRepository) Unlock(ctx context.Context, userID, gameID, achievementID string, at time.Time) (bool, error) {
	ua := &model.UserAchievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		GameID:        gameID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(ua)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
