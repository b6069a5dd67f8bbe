package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityGuard/internal/chain"
	"liquidityGuard/internal/config"
	"liquidityGuard/internal/dexscreener"
	"liquidityGuard/internal/metrics"
	"liquidityGuard/internal/monitor"
	"liquidityGuard/internal/notify"
	"liquidityGuard/internal/source"
	"liquidityGuard/internal/storage"
	"liquidityGuard/internal/storage/postgres"
	"liquidityGuard/internal/watcher"
)

func runWatcher(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dex := dexscreener.NewClient(dexscreener.Config{
		BaseURL: cfg.DexScreenerURL,
		Timeout: cfg.FetchTimeout,
		RPS:     cfg.DexScreenerRPS,
	}, logger)

	callers := make(map[string]chain.Caller, len(cfg.RPC))
	for name, url := range cfg.RPC {
		client, err := chain.NewClient(ctx, url)
		if err != nil {
			logger.Warn("rpc unavailable, lp supply disabled for chain", zap.String("chain", name), zap.Error(err))
			continue
		}
		defer client.Close()
		callers[name] = client
	}

	alerts := storage.AlertSinks{storage.NewCSVAlertLog(cfg.AlertsPath)}
	flags := storage.FlagSinks{storage.NewFlagFile(cfg.FlagsPath)}
	if cfg.PGDSN != "" {
		pg, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		alerts = append(alerts, pg)
		flags = append(flags, pg)
	}

	var notifier notify.Notifier
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(notify.TelegramConfig{
			BotToken: cfg.TelegramToken,
			ChatID:   cfg.TelegramChat,
			Timeout:  cfg.FetchTimeout,
		}, logger)
		if err != nil {
			return err
		}
		notifier = tg
	} else {
		logger.Warn("telegram token not set, alerts are only logged")
	}

	reg := metrics.NewRegistry()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := reg.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	store := monitor.NewStore(cfg.HistoryCapacity)
	keys := watcher.RegisterPools(store, cfg.Pools, logger)
	if len(keys) == 0 {
		return fmt.Errorf("no valid pools to monitor")
	}

	runner := watcher.NewRunner(watcher.RunConfig{
		Interval:     cfg.Interval,
		Workers:      cfg.Workers,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		FetchTimeout: cfg.FetchTimeout,
		IsPermanent:  dexscreener.IsPermanent,
	}, store, source.New(dex, callers, logger), alerts, flags, notifier, logger, watcher.WithMetrics(reg))

	logger.Info("watcher start",
		zap.Int("pools", len(keys)),
		zap.Duration("interval", cfg.Interval),
		zap.Int("workers", cfg.Workers),
		zap.String("alerts_path", cfg.AlertsPath),
		zap.String("flags_path", cfg.FlagsPath),
		zap.Bool("telegram", cfg.TelegramToken != ""),
		zap.Bool("postgres", cfg.PGDSN != ""),
		zap.Int("rpc_chains", len(callers)),
	)

	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("watcher stopped")
		return nil
	}
	return err
}
