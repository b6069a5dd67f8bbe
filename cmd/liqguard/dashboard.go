package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"liquidityGuard/internal/config"
	"liquidityGuard/internal/dashboard"
)

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDashboard(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return dashboard.Run(ctx, dashboard.FileLoader(cfg.FlagsPath, cfg.AlertsPath, cfg.Window), cfg.Refresh)
}
