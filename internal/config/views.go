package config

import (
	"time"

	"github.com/spf13/pflag"
)

// ReportConfig holds settings for the alerts report.
type ReportConfig struct {
	AlertsPath string
	Window     time.Duration
	LogLevel   string
}

func LoadReport(cfgFile string, flags *pflag.FlagSet) (ReportConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"alerts-path": "alerts_liquidity.csv",
		"window":      24 * time.Hour,
	})
	if err != nil {
		return ReportConfig{}, err
	}
	return ReportConfig{
		AlertsPath: v.GetString("alerts-path"),
		Window:     v.GetDuration("window"),
		LogLevel:   v.GetString("log-level"),
	}, nil
}

// DashboardConfig holds settings for the terminal dashboard.
type DashboardConfig struct {
	AlertsPath string
	FlagsPath  string
	Refresh    time.Duration
	Window     time.Duration
	LogLevel   string
}

func LoadDashboard(cfgFile string, flags *pflag.FlagSet) (DashboardConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"alerts-path": "alerts_liquidity.csv",
		"flags-path":  "liquidity_flags.json",
		"refresh":     5 * time.Second,
		"window":      24 * time.Hour,
	})
	if err != nil {
		return DashboardConfig{}, err
	}
	return DashboardConfig{
		AlertsPath: v.GetString("alerts-path"),
		FlagsPath:  v.GetString("flags-path"),
		Refresh:    v.GetDuration("refresh"),
		Window:     v.GetDuration("window"),
		LogLevel:   v.GetString("log-level"),
	}, nil
}

// CheckConfig holds settings for the flag consumer.
type CheckConfig struct {
	FlagsPath string
	// PGDSN switches the flag source to the Postgres mirror.
	PGDSN    string
	LogLevel string
}

func LoadCheck(cfgFile string, flags *pflag.FlagSet) (CheckConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"flags-path": "liquidity_flags.json",
	})
	if err != nil {
		return CheckConfig{}, err
	}
	return CheckConfig{
		FlagsPath: v.GetString("flags-path"),
		PGDSN:     v.GetString("pg-dsn"),
		LogLevel:  v.GetString("log-level"),
	}, nil
}
