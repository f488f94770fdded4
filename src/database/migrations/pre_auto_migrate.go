package migrations

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PrepareUniqueIndexes removes duplicate rows that would make AutoMigrate fail when it
// creates a unique index on a table populated before the index existed. The oldest row
// (lowest id) of each duplicate group is kept, matching first-write-wins.
func PrepareUniqueIndexes(db *gorm.DB) error {
	targets := []struct {
		table   string
		index   string
		columns string
	}{
		{table: "market_data_cache", index: "ux_market_data_cache_symbol_date", columns: "symbol, date"},
	}

	migrator := db.Migrator()
	for _, t := range targets {
		if !migrator.HasTable(t.table) || migrator.HasIndex(t.table, t.index) {
			continue
		}

		res := db.Exec(fmt.Sprintf(
			`DELETE FROM %[1]s WHERE id NOT IN (SELECT MIN(id) FROM %[1]s GROUP BY %[2]s)`,
			t.table, t.columns,
		))
		if res.Error != nil {
			return fmt.Errorf("dedupe %s: %w", t.table, res.Error)
		}
		if res.RowsAffected > 0 {
			logrus.WithFields(map[string]interface{}{
				"table":   t.table,
				"removed": res.RowsAffected,
			}).Warn("[migrations] removed duplicate rows before creating unique index")
		}
	}
	return nil
}
