package config

import (
	"time"

	"sales-intel-scryper/pkg/config"
)

// Edgar holds SEC EDGAR client configuration. The SEC requires a descriptive
// User-Agent and caps fair access at 10 requests per second.
type Edgar struct {
	UserAgent           string        `mapstructure:"user_agent"`
	MaxRequestPerSecond int           `mapstructure:"max_request_per_second"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	TickerDirectoryTTL  time.Duration `mapstructure:"ticker_directory_ttl"`
}

// Cache holds cache store configuration.
type Cache struct {
	// Backend selects the cache store implementation: "postgres" or "redis".
	Backend string `mapstructure:"backend"`
	// KeyPrefix namespaces redis keys.
	KeyPrefix string `mapstructure:"key_prefix"`
}

// Janitor holds the expired-entry purge job configuration.
type Janitor struct {
	Enabled bool `mapstructure:"enabled"`
	// Schedule is a cron expression; defaults to hourly when empty.
	Schedule string `mapstructure:"schedule"`
	// WarmTickers are re-fetched after purge so frequently viewed companies
	// stay cached.
	WarmTickers []string `mapstructure:"warm_tickers"`
}

// Telegram holds the optional HOT-signal notifier configuration.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the intel service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Edgar    Edgar           `mapstructure:"edgar"`
	Cache    Cache           `mapstructure:"cache"`
	Janitor  Janitor         `mapstructure:"janitor"`
	Telegram Telegram        `mapstructure:"telegram"`
}

// Load loads the intel service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Edgar.MaxRequestPerSecond <= 0 {
		cfg.Edgar.MaxRequestPerSecond = 10
	}
	if cfg.Edgar.RequestTimeout <= 0 {
		cfg.Edgar.RequestTimeout = 30 * time.Second
	}
	if cfg.Edgar.TickerDirectoryTTL <= 0 {
		cfg.Edgar.TickerDirectoryTTL = 24 * time.Hour
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "postgres"
	}
	return &cfg, nil
}
