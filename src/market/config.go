package market

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LookbackDays      int     `envconfig:"PREFETCH_LOOKBACK_DAYS" default:"30"`
	SampleSize        int     `envconfig:"PREFETCH_SAMPLE_SIZE" default:"10"`
	CoverageThreshold float64 `envconfig:"PREFETCH_COVERAGE_THRESHOLD" default:"0.9"`

	RedisURL      string        `envconfig:"REDIS_URL" default:""`
	RedisPriceTTL time.Duration `envconfig:"REDIS_PRICE_TTL" default:"24h"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
