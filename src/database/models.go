package database

import (
	"fmt"

	"financequest/src/database/migrations"
	"financequest/src/model"

	"gorm.io/gorm"
)

var modelList = []interface{}{
	&model.User{},
	&model.PriceRecord{},
	&model.APIStats{},
	&model.Game{},
	&model.Holding{},
	&model.Transaction{},
	&model.Achievement{},
	&model.UserAchievement{},
	&model.Exception{},
	&migrations.DataMigration{},
}

// Models lists every table of the write-side schema, in dependency order.
func Models() []interface{} {
	return modelList
}

// Migrate runs the pre-migration fixes, AutoMigrate and the data migrations.
func Migrate(db *gorm.DB) error {
	if err := migrations.PrepareUniqueIndexes(db); err != nil {
		return fmt.Errorf("prepare unique indexes: %w", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("data migrations: %w", err)
	}
	return nil
}
