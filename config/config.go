package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
	Exchanges ExchangesConfig `mapstructure:"exchanges"`
	Log       LogConfig       `mapstructure:"log"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
}

// TrackerConfig controls the check cycle and state persistence.
type TrackerConfig struct {
	UpdateInterval time.Duration `mapstructure:"update_interval"` // between check cycles, default 60m
	StateFile      string        `mapstructure:"state_file"`      // persisted aggregate path
}

type ExchangesConfig struct {
	Timeout time.Duration `mapstructure:"timeout"` // per-request bound, default 30s

	// Base URLs are overridable (mostly for tests); empty means the venue default.
	MEXCBaseURL    string `mapstructure:"mexc_base_url"`
	BinanceBaseURL string `mapstructure:"binance_base_url"`
	BybitBaseURL   string `mapstructure:"bybit_base_url"`
	BitgetBaseURL  string `mapstructure:"bitget_base_url"`
	GateBaseURL    string `mapstructure:"gate_base_url"`
	OKXBaseURL     string `mapstructure:"okx_base_url"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")

	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		v.AddConfigPath(filepath.Join(pwd, "../../config"))
	} else {
		v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
	}

	// Support environment variables with dot notation (e.g., TELEGRAM_BOT_TOKEN)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("tracker.update_interval", 60*time.Minute)
	v.SetDefault("tracker.state_file", "data/state.json")
	v.SetDefault("exchanges.timeout", 30*time.Second)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	if err := cfg.Telegram.Resolve(cfg.Log.Environment); err != nil {
		log.Fatalf("invalid telegram config: %v", err)
	}

	return &cfg
}
