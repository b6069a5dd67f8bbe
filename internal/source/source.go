package source

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"liquidityGuard/internal/chain"
	"liquidityGuard/internal/model"
	"liquidityGuard/internal/monitor"
)

// PairFetcher returns market metrics for a pool's pair.
type PairFetcher interface {
	FetchPair(ctx context.Context, pool model.Pool) (model.Metrics, error)
}

// Source combines pair data with optional on-chain LP supply.
type Source struct {
	pairs  PairFetcher
	chains   map[string]chain.Caller
	decimals *chain.DecimalsCache
	logger   *zap.Logger
}

// New builds a Source. chains maps lower-case chain names to RPC callers and may be empty.
func New(pairs PairFetcher, chains map[string]chain.Caller, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalized := make(map[string]chain.Caller, len(chains))
	for name, caller := range chains {
		normalized[strings.ToLower(name)] = caller
	}
	return &Source{pairs: pairs, chains: normalized, decimals: chain.NewDecimalsCache(), logger: logger}
}

// Fetch returns the current metrics for pool. Only the pair fetch can fail; LP supply
// lookups fall back to zero.
func (s *Source) Fetch(ctx context.Context, pool model.Pool) (model.Metrics, error) {
	metrics, err := s.pairs.FetchPair(ctx, pool)
	if err != nil {
		return model.Metrics{}, err
	}

	caller, ok := s.chains[strings.ToLower(pool.Chain)]
	if !ok || !monitor.IsEVMAddress(pool.LPAddress) {
		return metrics, nil
	}

	supply, err := chain.LPSupply(ctx, caller, pool.LPAddress, s.decimals)
	if err != nil {
		s.logger.Debug("lp supply unavailable",
			zap.String("symbol", pool.Symbol),
			zap.String("chain", pool.Chain),
			zap.Error(err),
		)
		return metrics, nil
	}
	metrics.LPSupply = supply
	return metrics, nil
}
