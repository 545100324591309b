// Package config loads runtime settings from a vault.yaml file and
// FV_-prefixed environment variables, with the environment winning.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the validated runtime configuration.
type Config struct {
	HTTPPort        int    `mapstructure:"http_port"`
	DBPath          string `mapstructure:"db_path"`
	Passphrase      string `mapstructure:"passphrase"`
	KeySalt         string `mapstructure:"key_salt"`
	BenchmarkTicker string `mapstructure:"benchmark_ticker"`
	BillHorizonDays int    `mapstructure:"bill_horizon_days"`
	LogLevel        string `mapstructure:"log_level"`
	LogPretty       bool   `mapstructure:"log_pretty"`
}

// Load reads configuration from vault.yaml (searched in the working
// directory and $HOME/.finance-vault) and the FV_ environment. A missing
// file is fine; a missing passphrase is not, since without it no stored
// value can ever be decrypted.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("vault")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.finance-vault")

	v.SetEnvPrefix("FV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_port", 8080)
	v.SetDefault("db_path", "vault.db")
	v.SetDefault("key_salt", "finance-vault")
	v.SetDefault("benchmark_ticker", "SPY")
	v.SetDefault("bill_horizon_days", 30)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("Load: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("Load: unmarshaling: %w", err)
	}

	if cfg.Passphrase == "" {
		return nil, errors.New("Load: passphrase is required (set FV_PASSPHRASE)")
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("Load: invalid http_port %d", cfg.HTTPPort)
	}
	if cfg.BillHorizonDays <= 0 {
		return nil, fmt.Errorf("Load: invalid bill_horizon_days %d", cfg.BillHorizonDays)
	}

	return &cfg, nil
}
