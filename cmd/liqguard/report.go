package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityGuard/internal/config"
	"liquidityGuard/internal/report"
	"liquidityGuard/internal/storage"
)

func runReport(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadReport(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, "")
	if err != nil {
		return err
	}
	defer logger.Sync()

	records, skipped, err := storage.ReadAlertLog(cfg.AlertsPath)
	if err != nil {
		return err
	}
	if skipped > 0 {
		logger.Warn("malformed alert rows skipped", zap.Int("rows", skipped), zap.String("path", cfg.AlertsPath))
	}

	now := time.Now().UTC()
	groups := report.Summarize(records, now, cfg.Window)
	return report.Render(cmd.OutOrStdout(), groups, now, cfg.Window)
}
