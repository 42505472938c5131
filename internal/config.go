package internal

import (
	"feed-lab/errors"
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

var validate = validator.New()

type Config struct {
	Host            string        `env:"HOST,default=localhost" validate:"required"`
	Port            int           `env:"PORT,default=3000" validate:"min=1,max=65535"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	StoreBackend    string        `env:"STORE_BACKEND,default=memory" validate:"oneof=memory badger"`
	SeedPosts       bool          `env:"SEED_POSTS,default=true"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED,default=false"`
	MetricsPort     int           `env:"METRICS_PORT,default=9090" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=5s" validate:"gt=0"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=10s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s" validate:"gt=0"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate normalizes the log level and checks field constraints.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err)
	}
	if c.MetricsEnabled && c.MetricsPort == c.Port {
		return fmt.Errorf("%w: METRICS_PORT must differ from PORT (%d)", errors.ErrInvalidConfig, c.Port)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) MetricsAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.MetricsPort)
}
