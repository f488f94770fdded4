package game

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	InitialBalance decimal.Decimal `envconfig:"GAME_INITIAL_BALANCE" default:"10000"`
	RetentionDays  int             `envconfig:"CLEANUP_RETENTION_DAYS" default:"90"`
	// MaxAdvanceDays bounds a single multi-day advance request.
	MaxAdvanceDays int `envconfig:"GAME_MAX_ADVANCE_DAYS" default:"30"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
