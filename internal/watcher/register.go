package watcher

import (
	"go.uber.org/zap"

	"liquidityGuard/internal/model"
	"liquidityGuard/internal/monitor"
)

// RegisterPools validates and registers pools. Invalid pools are reported and skipped; the
// returned keys are the ones now monitored.
func RegisterPools(store *monitor.Store, pools []model.Pool, logger *zap.Logger) []model.PoolKey {
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := make([]model.PoolKey, 0, len(pools))
	for _, pool := range pools {
		if err := monitor.ValidatePool(pool); err != nil {
			logger.Warn("pool excluded", zap.String("symbol", pool.Symbol), zap.String("chain", pool.Chain), zap.Error(err))
			continue
		}
		key := store.Register(pool)
		logger.Info("pool registered",
			zap.String("pool", key.String()),
			zap.String("dex", pool.Dex),
			zap.String("lp_address", pool.LPAddress),
			zap.Bool("lock_expiry", pool.LockExpiry != nil),
		)
		keys = append(keys, key)
	}
	return keys
}
