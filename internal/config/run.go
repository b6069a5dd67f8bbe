package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"liquidityGuard/internal/model"
)

// RunConfig holds settings for the monitoring loop.
type RunConfig struct {
	Interval        time.Duration
	Workers         int
	MaxRetries      int
	RetryBackoff    time.Duration
	FetchTimeout    time.Duration
	HistoryCapacity int
	DexScreenerURL  string
	DexScreenerRPS  float64
	AlertsPath      string
	FlagsPath       string
	TelegramToken   string
	TelegramChat    string
	PGDSN           string
	// RPC maps chain names to EVM RPC endpoints used for LP supply reads.
	RPC         map[string]string
	MetricsAddr string
	LogLevel    string
	LogFile     string
	Pools       []model.Pool
}

// Load merges config file, environment variables, and flags into RunConfig.
func Load(cfgFile string, flags *pflag.FlagSet) (RunConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"interval":         "300s",
		"workers":          1,
		"max-retries":      2,
		"retry-backoff":    500 * time.Millisecond,
		"fetch-timeout":    10 * time.Second,
		"history-capacity": 1000,
		"dexscreener-url":  "https://api.dexscreener.com",
		"dexscreener-rps":  5.0,
		"alerts-path":      "alerts_liquidity.csv",
		"flags-path":       "liquidity_flags.json",
	})
	if err != nil {
		return RunConfig{}, err
	}

	interval, err := parseInterval(v.GetString("interval"))
	if err != nil {
		return RunConfig{}, fmt.Errorf("parse interval: %w", err)
	}

	pools, err := decodePools(v)
	if err != nil {
		return RunConfig{}, err
	}

	cfg := RunConfig{
		Interval:        interval,
		Workers:         v.GetInt("workers"),
		MaxRetries:      v.GetInt("max-retries"),
		RetryBackoff:    v.GetDuration("retry-backoff"),
		FetchTimeout:    v.GetDuration("fetch-timeout"),
		HistoryCapacity: v.GetInt("history-capacity"),
		DexScreenerURL:  v.GetString("dexscreener-url"),
		DexScreenerRPS:  v.GetFloat64("dexscreener-rps"),
		AlertsPath:      v.GetString("alerts-path"),
		FlagsPath:       v.GetString("flags-path"),
		TelegramToken:   strings.TrimSpace(v.GetString("telegram-token")),
		TelegramChat:    strings.TrimSpace(v.GetString("telegram-chat")),
		PGDSN:           v.GetString("pg-dsn"),
		RPC:             getStringMap(v, "rpc"),
		MetricsAddr:     v.GetString("metrics-addr"),
		LogLevel:        v.GetString("log-level"),
		LogFile:         v.GetString("log-file"),
		Pools:           pools,
	}

	if err := cfg.validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

func (c RunConfig) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be greater than zero")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be greater than zero")
	}
	if c.AlertsPath == "" {
		return fmt.Errorf("alerts-path is required")
	}
	if c.FlagsPath == "" {
		return fmt.Errorf("flags-path is required")
	}
	if len(c.Pools) == 0 {
		return fmt.Errorf("at least one pool is required")
	}
	return nil
}
