package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// FEED_SERVER_ADDR points at a running feed server, e.g. http://localhost:3000
	ServerAddr string        `envconfig:"FEED_SERVER_ADDR"`
	Timeout    time.Duration `envconfig:"E2E_TIMEOUT" default:"10s"`
	// E2E_DEBUG_JSON dumps full response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
