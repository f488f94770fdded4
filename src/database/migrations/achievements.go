package migrations

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"financequest/src/model"
)

// AchievementCatalog is the initial set of achievements. Codes are stable identifiers.
func AchievementCatalog() []model.Achievement {
	return []model.Achievement{
		{Code: "first_trade", Name: "First Trade", Description: "Execute your first transaction", Icon: "🎯",
			CriteriaType: "first_transaction", CriteriaValue: datatypes.JSON(`{}`), Points: 10},
		{Code: "diversified_5", Name: "Diversified", Description: "Hold 5 different assets", Icon: "🧺",
			CriteriaType: "asset_count", CriteriaValue: datatypes.JSON(`{"min_count":5}`), Points: 25},
		{Code: "diversified_10", Name: "Well Diversified", Description: "Hold 10 different assets", Icon: "🌐",
			CriteriaType: "asset_count", CriteriaValue: datatypes.JSON(`{"min_count":10}`), Points: 50},
		{Code: "portfolio_11k", Name: "Growing", Description: "Reach a total value of 11,000", Icon: "🌱",
			CriteriaType: "portfolio_value", CriteriaValue: datatypes.JSON(`{"min_value":11000}`), Points: 25},
		{Code: "portfolio_15k", Name: "Thriving", Description: "Reach a total value of 15,000", Icon: "🌳",
			CriteriaType: "portfolio_value", CriteriaValue: datatypes.JSON(`{"min_value":15000}`), Points: 75},
		{Code: "return_10", Name: "Double Digits", Description: "Reach a 10% return", Icon: "📈",
			CriteriaType: "return_percentage", CriteriaValue: datatypes.JSON(`{"min_return":10}`), Points: 50},
		{Code: "return_50", Name: "Market Wizard", Description: "Reach a 50% return", Icon: "🧙",
			CriteriaType: "return_percentage", CriteriaValue: datatypes.JSON(`{"min_return":50}`), Points: 150},
		{Code: "bond_investor", Name: "Safe Harbor", Description: "Hold 2 different bonds", Icon: "🏦",
			CriteriaType: "specific_trade", CriteriaValue: datatypes.JSON(`{"asset_type":"bond","min_count":2}`), Points: 20},
		{Code: "index_investor", Name: "Index Fan", Description: "Hold 3 different indices", Icon: "📊",
			CriteriaType: "specific_trade", CriteriaValue: datatypes.JSON(`{"asset_type":"index","min_count":3}`), Points: 30},
	}
}

func seedAchievements(db *gorm.DB) error {
	catalog := AchievementCatalog()
	for i := range catalog {
		catalog[i].ID = uuid.NewString()
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&catalog).Error
}

// syncAchievements brings rows seeded by an older catalog in line with the current
// display fields, points and criteria. Codes never change.
func syncAchievements(db *gorm.DB) error {
	for _, ach := range AchievementCatalog() {
		err := db.Model(&model.Achievement{}).
			Where("code = ?", ach.Code).
			Updates(map[string]interface{}{
				"name":           ach.Name,
				"description":    ach.Description,
				"icon":           ach.Icon,
				"criteria_type":  ach.CriteriaType,
				"criteria_value": ach.CriteriaValue,
				"points":         ach.Points,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
