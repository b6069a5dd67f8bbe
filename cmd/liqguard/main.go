package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	root := &cobra.Command{
		Use:          "liqguard",
		Short:        "Liquidity risk watcher for DEX pools",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Monitor configured pools and dispatch alerts",
		RunE:  runWatcher,
	}

	runCmd.Flags().Duration("interval", 300*time.Second, "pause between full passes over all pools")
	runCmd.Flags().Int("workers", 1, "pools evaluated concurrently")
	runCmd.Flags().Int("max-retries", 2, "fetch retries per pool and cycle")
	runCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	runCmd.Flags().Duration("fetch-timeout", 10*time.Second, "timeout of one fetch attempt")
	runCmd.Flags().Int("history-capacity", 1000, "snapshots retained per pool")
	runCmd.Flags().String("dexscreener-url", "https://api.dexscreener.com", "DexScreener API base URL")
	runCmd.Flags().Float64("dexscreener-rps", 5, "DexScreener requests per second (0 disables limiting)")
	runCmd.Flags().String("alerts-path", "alerts_liquidity.csv", "CSV alert log path")
	runCmd.Flags().String("flags-path", "liquidity_flags.json", "risk flags JSON path")
	runCmd.Flags().String("telegram-token", "", "Telegram bot token (alerts are only logged when empty)")
	runCmd.Flags().String("telegram-chat", "", "Telegram chat id or @channel")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN mirroring alerts and flags")
	runCmd.Flags().String("rpc", "", "chain=rpc-url pairs for LP supply reads (comma-separated)")
	runCmd.Flags().String("metrics-addr", "", "address serving Prometheus /metrics (disabled when empty)")
	runCmd.Flags().String("log-file", "", "optional rotating JSON log file")

	root.AddCommand(runCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recent alerts from the alert log",
		RunE:  runReport,
	}

	reportCmd.Flags().String("alerts-path", "alerts_liquidity.csv", "CSV alert log path")
	reportCmd.Flags().Duration("window", 24*time.Hour, "look-back window")

	root.AddCommand(reportCmd)

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Terminal dashboard over risk flags and recent alerts",
		RunE:  runDashboard,
	}

	dashboardCmd.Flags().String("alerts-path", "alerts_liquidity.csv", "CSV alert log path")
	dashboardCmd.Flags().String("flags-path", "liquidity_flags.json", "risk flags JSON path")
	dashboardCmd.Flags().Duration("refresh", 5*time.Second, "refresh interval")
	dashboardCmd.Flags().Duration("window", 24*time.Hour, "alert look-back window")

	root.AddCommand(dashboardCmd)

	checkCmd := &cobra.Command{
		Use:   "check SYMBOL",
		Short: "Exit non-zero when trading SYMBOL is blocked by a risk flag",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}

	checkCmd.Flags().String("flags-path", "liquidity_flags.json", "risk flags JSON path")
	checkCmd.Flags().String("pg-dsn", "", "read flags from the Postgres mirror instead of the JSON file")

	root.AddCommand(checkCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level, file string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if file == "" {
		return logger, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   file,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	})
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(cfg.EncoderConfig), writer, cfg.Level)
	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	})), nil
}
