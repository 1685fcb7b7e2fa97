package configs

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Prices  PriceTableConfig
	Effects EffectsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `env:"PORT,default=8080"`
	OpsPort         string        `env:"OPS_PORT,default=9090"`
	Env             string        `env:"APP_ENV,default=development"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `env:"LOG_LEVEL,default=info"`
	// TUIFile receives the terminal UI's logs; empty discards them
	TUIFile string `env:"TUI_LOG_FILE"`
}

// PriceTableConfig controls where the symbol price snapshot comes from.
// An empty File means the built-in table.
type PriceTableConfig struct {
	File       string `env:"PRICE_TABLE_FILE"`
	SeedAlerts bool   `env:"SEED_ALERTS,default=true"`
}

// EffectsConfig holds the cosmetic timer settings
type EffectsConfig struct {
	ClockInterval  time.Duration `env:"CLOCK_INTERVAL,default=1s"`
	GlitchInterval time.Duration `env:"GLITCH_INTERVAL,default=4s"`
	GlitchHold     time.Duration `env:"GLITCH_HOLD,default=150ms"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to process environment")
	}

	// cron @every schedules round anything shorter than a second up to one
	if cfg.Effects.ClockInterval < time.Second {
		return nil, errors.Errorf("CLOCK_INTERVAL (%s) must be at least 1s", cfg.Effects.ClockInterval)
	}
	if cfg.Effects.GlitchInterval < time.Second {
		return nil, errors.Errorf("GLITCH_INTERVAL (%s) must be at least 1s", cfg.Effects.GlitchInterval)
	}
	if cfg.Effects.GlitchHold >= cfg.Effects.GlitchInterval {
		return nil, errors.Errorf("GLITCH_HOLD (%s) must be shorter than GLITCH_INTERVAL (%s)",
			cfg.Effects.GlitchHold, cfg.Effects.GlitchInterval)
	}

	return &cfg, nil
}
