package model

import (
	"time"

	"gorm.io/datatypes"
)

// Achievement is a catalog entry. CriteriaType selects how CriteriaValue is decoded.
type Achievement struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string         `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Icon          string         `gorm:"size:20" json:"icon"`
	CriteriaType  string         `gorm:"type:varchar(30);not null" json:"criteriaType"`
	CriteriaValue datatypes.JSON `json:"criteriaValue"`
	Points        int            `gorm:"not null;default:0" json:"points"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// UserAchievement records an unlock. An achievement unlocks at most once per game.
type UserAchievement struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;index" json:"userId"`
	GameID        string    `gorm:"type:uuid;not null;uniqueIndex:ux_user_achievements_game_achievement,priority:1" json:"gameId"`
	AchievementID string    `gorm:"type:uuid;not null;uniqueIndex:ux_user_achievements_game_achievement,priority:2" json:"achievementId"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlockedAt"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}
