package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	MarketStackAPIKey  string        `envconfig:"MARKETSTACK_API_KEY" default:""`
	MarketStackBaseURL string        `envconfig:"MARKETSTACK_BASE_URL" default:"https://api.marketstack.com/v1"`
	Timeout            time.Duration `envconfig:"MARKETSTACK_TIMEOUT" default:"15s"`
	SymbolCap          int           `envconfig:"MARKETSTACK_SYMBOL_CAP" default:"100"`
	PageLimit          int           `envconfig:"MARKETSTACK_PAGE_LIMIT" default:"1000"`
	MaxPages           int           `envconfig:"MARKETSTACK_MAX_PAGES" default:"5"`

	QuotaLimit  int           `envconfig:"MARKETSTACK_QUOTA_LIMIT" default:"100"`
	QuotaWindow time.Duration `envconfig:"MARKETSTACK_QUOTA_WINDOW" default:"1h"`

	TelemetryTimeout time.Duration `envconfig:"MARKETSTACK_TELEMETRY_TIMEOUT" default:"5s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
