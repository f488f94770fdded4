package database

import (
	"fmt"

	"financequest/src/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReadOnlyDB serves listing queries (users, leaderboard reads). The database user for
// this connection should have SELECT-only permissions. It falls back to MainDB when no
// replica URL is configured.
var ReadOnlyDB *gorm.DB

// InitReadOnlyDB initializes the read-only database connection.
// It does not run any migrations and should only be used for reading data.
func InitReadOnlyDB() error {
	config := GetConfig()
	if config.DatabaseURLReadOnly == "" {
		if MainDB == nil {
			return fmt.Errorf("read-only database falls back to MainDB, which is not initialized")
		}
		ReadOnlyDB = MainDB
		logrus.Info("[ReadOnlyDB] no replica configured, sharing MainDB")
		return nil
	}

	db, err := Open(config.Driver, config.DatabaseURLReadOnly, config)
	if err != nil {
		return fmt.Errorf("failed to connect to read-only database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from ReadOnlyDB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping ReadOnlyDB: %w", err)
	}

	if config.Driver == DriverPostgres {
		var dbName, schema string
		if err := db.
			Raw("SELECT current_database(), current_schema()").
			Row().
			Scan(&dbName, &schema); err != nil {
			return fmt.Errorf("failed to query current db/schema on ReadOnlyDB: %w", err)
		}
		logrus.WithFields(map[string]interface{}{"dbName": dbName, "schema": schema}).Info("[ReadOnlyDB] connected")
	}

	if err := checkReachable(db); err != nil {
		return err
	}

	ReadOnlyDB = db

	return nil
}

func checkReachable(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to access users on ReadOnlyDB: %w", err)
	}
	logrus.WithFields(map[string]interface{}{"count": count}).Info("[ReadOnlyDB] users reachable")
	return nil
}
