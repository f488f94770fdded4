package model

import (
	"time"

	"gorm.io/datatypes"
)

// Exception is an infrastructure failure persisted for auditing. User-facing responses only
// carry a generic message; the detail lives here and in the logs.
type Exception struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Service string `gorm:"size:100;index" json:"service"` // e.g. "api"
	Module  string `gorm:"size:100;index" json:"module"`  // e.g. "trade_handler"
	Method  string `gorm:"size:100" json:"method"`        // e.g. "POST /api/games/{id}/trades"

	Message string `gorm:"type:text" json:"message"`
	Level   string `gorm:"size:20;index" json:"level"` // warn | error | fatal

	Context datatypes.JSON `json:"context,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
