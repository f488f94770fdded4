package database_test

import (
	"testing"

	"financequest/src/database"
	"financequest/src/database/dbtest"
	"financequest/src/database/migrations"
	"financequest/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrate_SeedsCatalogOnce(t *testing.T) {
	db := dbtest.NewSQLite(t)

	var count int64
	require.NoError(t, db.Model(&model.Achievement{}).Count(&count).Error)
	assert.Equal(t, int64(len(migrations.AchievementCatalog())), count)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, db.Model(&model.Achievement{}).Count(&count).Error)
	assert.Equal(t, int64(len(migrations.AchievementCatalog())), count, "second run is a no-op")

	var applied []migrations.DataMigration
	require.NoError(t, db.Order("id").Find(&applied).Error)
	require.Len(t, applied, len(migrations.IDs()))
	for i, id := range migrations.IDs() {
		assert.Equal(t, id, applied[i].ID)
	}
}

func TestMigrate_SyncsStaleCatalogRows(t *testing.T) {
	db := dbtest.NewSQLite(t)

	require.NoError(t, db.Model(&model.Achievement{}).Where("code = ?", "first_trade").Update("points", 1).Error)
	require.NoError(t, db.Where("id = ?", "00002_sync_achievements_catalog").Delete(&migrations.DataMigration{}).Error)

	require.NoError(t, database.Migrate(db))

	var ach model.Achievement
	require.NoError(t, db.Where("code = ?", "first_trade").First(&ach).Error)
	assert.Equal(t, 10, ach.Points)
}

func TestRunOnce_RollsBackOnFailure(t *testing.T) {
	db := dbtest.NewSQLite(t)

	err := migrations.RunOnce(db, "99999_broken", func(tx *gorm.DB) error {
		return assert.AnError
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&migrations.DataMigration{}).Where("id = ?", "99999_broken").Count(&count).Error)
	assert.Zero(t, count)
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("mysql", "dsn", database.Config{})
	assert.ErrorContains(t, err, "unsupported database driver")
}
