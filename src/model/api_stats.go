package model

import "time"

// APIStats keeps the last quota telemetry reported by a price provider.
type APIStats struct {
	ID                uint       `gorm:"primaryKey" json:"-"`
	Provider          string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"provider"`
	RequestsRemaining *int       `json:"requestsRemaining"`
	RequestsLimit     *int       `json:"requestsLimit"`
	ResetAt           *time.Time `json:"resetAt"`
	LastUpdated       time.Time  `gorm:"not null" json:"lastUpdated"`
}

func (APIStats) TableName() string {
	return "api_stats"
}
