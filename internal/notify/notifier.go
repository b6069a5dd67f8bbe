package notify

import (
	"context"

	"go.uber.org/zap"

	"liquidityGuard/internal/model"
)

// Notifier delivers a formatted alert about pool.
type Notifier interface {
	Notify(ctx context.Context, pool model.Pool, message string) error
}

// LogNotifier writes alerts to the logger; used when no chat transport is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, pool model.Pool, message string) error {
	n.logger.Info("alert",
		zap.String("symbol", pool.Symbol),
		zap.String("chain", pool.Chain),
		zap.String("message", message),
	)
	return nil
}
