package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	BackendURL string `env:"SPOTCHECK_BACKEND_URL, default=http://localhost:3000"`
	Env        string `env:"ENV,                   default=development"`
	LogLevel   string `env:"LOG_LEVEL,             default=info"`

	// StateDir is where the token and favorites live. Defaults to the
	// user config dir when empty.
	StateDir string `env:"SPOTCHECK_STATE_DIR"`

	// DebugAddr enables the ops listener (/healthz, /metrics) when set,
	// e.g. ":9091". Empty disables it.
	DebugAddr string `env:"DEBUG_ADDR"`

	Redis RedisConfig
}

// RedisConfig selects the shared café cache backend. An empty Addr keeps
// the in-process cache.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		cfg.StateDir = filepath.Join(base, "spotcheck")
	}
	return &cfg
}
