package security

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// CronSecret is compared in constant time. CronSecretHash, a bcrypt hash, wins when
	// both are set.
	CronSecret     string `envconfig:"CRON_SECRET" default:""`
	CronSecretHash string `envconfig:"CRON_SECRET_HASH" default:""`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
