package cachejobs

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Symbols limits backfill to a subset of the universe; empty means every symbol.
	Symbols []string `envconfig:"BACKFILL_SYMBOLS" default:""`
	// BackfillFrom is where a symbol with nothing cached starts.
	BackfillFrom string `envconfig:"BACKFILL_FROM" default:"2020-01-01"`
	// AutoMode resumes each symbol after its newest cached day.
	AutoMode bool `envconfig:"BACKFILL_AUTO_MODE" default:"true"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
