package scheduler

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// UpdateCache runs after the US close on weekdays.
	UpdateCache  string        `envconfig:"SCHEDULE_UPDATE_CACHE" default:"30 22 * * 1-5"`
	CleanupGames string        `envconfig:"SCHEDULE_CLEANUP_GAMES" default:"0 3 * * 0"`
	JobTimeout   time.Duration `envconfig:"SCHEDULE_JOB_TIMEOUT" default:"10m"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
