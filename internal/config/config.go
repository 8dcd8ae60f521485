package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	HTTP     HTTPConfig
	Storage  StorageConfig
	Metrics  MetricsConfig

	// sequential keeps the legacy max(id)+1 scheme; uuid switches to
	// random ids for data sets whose id format is not load-bearing.
	IDStrategy string `envconfig:"ID_STRATEGY" default:"sequential"`

	WriteLimitPerMin int `envconfig:"WRITE_LIMIT_PER_MIN" default:"60"`
}

type HTTPConfig struct {
	Port              string        `envconfig:"PORT" default:"8080"`
	ReadHeaderTimeout time.Duration `envconfig:"HTTP_TIMEOUT_READ_HEADER" default:"5s"`
	WriteTimeout      time.Duration `envconfig:"HTTP_TIMEOUT_WRITE" default:"15s"`
	IdleTimeout       time.Duration `envconfig:"HTTP_TIMEOUT_IDLE" default:"60s"`
}

type StorageConfig struct {
	Driver  string `envconfig:"STORAGE_DRIVER" default:"file"`
	DataDir string `envconfig:"DATA_DIR" default:"./data"`
	DSN     string `envconfig:"POSTGRES_DSN"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"false"`
	Token   string `envconfig:"METRICS_TOKEN"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process config: %w", err)
	}

	switch cfg.Storage.Driver {
	case "file", "memory":
	case "postgres":
		if cfg.Storage.DSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN required for storage driver %q", cfg.Storage.Driver)
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	switch cfg.IDStrategy {
	case "sequential", "uuid":
	default:
		return nil, fmt.Errorf("unknown id strategy %q", cfg.IDStrategy)
	}

	return &cfg, nil
}
