package repository

import (
	"context"
	"errors"

	"financequest/src/model"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// APIStatsRepository keeps one telemetry row per price provider.
type APIStatsRepository struct {
	db *gorm.DB
}

func NewAPIStatsRepositoryWithDB(db *gorm.DB) *APIStatsRepository {
	return &APIStatsRepository{db: db}
}

// SaveProviderStats upserts the latest telemetry for stats.Provider.
func (r *APIStatsRepository) SaveProviderStats(ctx context.Context, stats *model.APIStats) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}},
			DoUpdates: clause.AssignmentColumns([]string{"requests_remaining", "requests_limit", "reset_at", "last_updated"}),
		}).
		Create(stats).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "APIStatsRepository",
			"op":       "SaveProviderStats",
			"provider": stats.Provider,
		}).WithError(err).Warn("Failed to upsert provider stats")
	}
	return err
}

// Get returns the telemetry of provider, or (nil, nil) when nothing was recorded yet.
func (r *APIStatsRepository) Get(ctx context.Context, provider string) (*model.APIStats, error) {
	var stats model.APIStats
	err := r.db.WithContext(ctx).
		Where("provider = ?", provider).
		First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
