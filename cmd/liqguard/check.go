package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidityGuard/internal/config"
	"liquidityGuard/internal/model"
	"liquidityGuard/internal/storage"
	"liquidityGuard/internal/storage/postgres"
)

func runCheck(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadCheck(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, "")
	if err != nil {
		return err
	}
	defer logger.Sync()

	flags, err := loadFlags(cmd.Context(), cfg)
	if err != nil {
		logger.Warn("flags unreadable, treating as empty", zap.String("path", cfg.FlagsPath), zap.Error(err))
		flags = model.FlagMap{}
	}

	symbol := args[0]
	flag, ok := flags[symbol]
	if flags.Blocked(symbol) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: BLOCKED (risk %s, updated %s)\n", symbol, flag.Risk, flag.UpdatedAt)
		return fmt.Errorf("trading %s is blocked by liquidity risk %s", symbol, flag.Risk)
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no flag\n", symbol)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (risk %s, updated %s)\n", symbol, flag.Risk, flag.UpdatedAt)
	return nil
}

func loadFlags(ctx context.Context, cfg config.CheckConfig) (model.FlagMap, error) {
	if cfg.PGDSN == "" {
		return storage.LoadFlags(cfg.FlagsPath)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	pg, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return nil, err
	}
	defer pg.Close()
	return pg.LoadFlags(ctx)
}
