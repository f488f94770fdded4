package auth

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AdminUserIDs []string `envconfig:"ADMIN_USER_IDS" default:""`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
