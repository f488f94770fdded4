// Package migrations holds the data migrations that run after AutoMigrate.
package migrations

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DataMigration records an applied data migration.
type DataMigration struct {
	ID        string    `gorm:"primaryKey;size:200;column:id"`
	AppliedAt time.Time `gorm:"not null;column:applied_at"`
}

func (DataMigration) TableName() string { return "data_migrations" }

type step struct {
	id string
	fn func(*gorm.DB) error
}

// steps run in order. Ids are permanent: append, never rename.
var steps = []step{
	{id: "00001_seed_achievements_catalog", fn: seedAchievements},
	{id: "00002_sync_achievements_catalog", fn: syncAchievements},
}

// IDs lists every data migration in execution order.
func IDs() []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.id
	}
	return out
}

// RunOnce runs fn inside a transaction unless migrationID is already recorded. The
// record is written in the same transaction, so a failing fn leaves no trace.
func RunOnce(db *gorm.DB, migrationID string, fn func(*gorm.DB) error) error {
	if db == nil {
		return nil
	}
	if migrationID == "" {
		return errors.New("migration id is empty")
	}
	if fn == nil {
		return fmt.Errorf("migration %q has nil fn", migrationID)
	}

	if err := db.AutoMigrate(&DataMigration{}); err != nil {
		return fmt.Errorf("ensure data migrations table: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&DataMigration{}).Where("id = ?", migrationID).Count(&count).Error; err != nil {
			return fmt.Errorf("check migration %q: %w", migrationID, err)
		}
		if count > 0 {
			return nil
		}

		if err := fn(tx); err != nil {
			return fmt.Errorf("run migration %q: %w", migrationID, err)
		}
		if err := tx.Create(&DataMigration{ID: migrationID, AppliedAt: time.Now().UTC()}).Error; err != nil {
			return fmt.Errorf("record migration %q: %w", migrationID, err)
		}

		logrus.WithField("migration", migrationID).Info("[migrations] applied")
		return nil
	})
}

// Run applies every pending data migration.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	for _, s := range steps {
		if err := RunOnce(db, s.id, s.fn); err != nil {
			return err
		}
	}
	return nil
}
