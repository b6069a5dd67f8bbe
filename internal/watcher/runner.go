package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"liquidityGuard/internal/metrics"
	"liquidityGuard/internal/model"
	"liquidityGuard/internal/monitor"
	"liquidityGuard/internal/notify"
	"liquidityGuard/internal/storage"
)

// Fetcher obtains the current metrics of a pool.
type Fetcher interface {
	Fetch(ctx context.Context, pool model.Pool) (model.Metrics, error)
}

// RunConfig holds runtime settings for the watcher loop.
type RunConfig struct {
	Interval     time.Duration
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	FetchTimeout time.Duration
	// IsPermanent marks fetch errors that are not worth retrying within a cycle.
	IsPermanent func(error) bool
}

// Runner evaluates every registered pool once per cycle and dispatches the results.
type Runner struct {
	cfg      RunConfig
	store    *monitor.Store
	fetcher  Fetcher
	alerts   storage.AlertSink
	flags    storage.FlagSink
	notifier notify.Notifier
	metrics  *metrics.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

func WithMetrics(m *metrics.Registry) Option {
	return func(r *Runner) { r.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner builds a Runner with its dependencies. A nil notifier logs alerts instead.
func NewRunner(cfg RunConfig, store *monitor.Store, fetcher Fetcher, alerts storage.AlertSink, flags storage.FlagSink, notifier notify.Notifier, logger *zap.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	r := &Runner{
		cfg:      cfg,
		store:    store,
		fetcher:  fetcher,
		alerts:   alerts,
		flags:    flags,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CycleSummary counts what happened during one pass over the registry.
type CycleSummary struct {
	Pools          int
	Evaluated      int
	FetchFailed    int
	RiskAlerts     int
	UnlockAlerts   int
	DeliveryFailed int
}

func (s *CycleSummary) add(o poolOutcome) {
	if !o.fetched {
		s.FetchFailed++
		return
	}
	s.Evaluated++
	if o.riskAlert {
		s.RiskAlerts++
	}
	if o.unlockAlert {
		s.UnlockAlerts++
	}
	s.DeliveryFailed += o.deliveryFailed
}

type poolOutcome struct {
	fetched        bool
	riskAlert      bool
	unlockAlert    bool
	deliveryFailed int
}

// Run executes cycles until ctx is canceled, sleeping Interval between full passes.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.validate(); err != nil {
		return err
	}
	if r.cfg.Interval <= 0 {
		return fmt.Errorf("interval must be greater than zero")
	}

	for {
		summary := r.RunOnce(ctx)
		r.logger.Info("cycle complete",
			zap.Int("pools", summary.Pools),
			zap.Int("evaluated", summary.Evaluated),
			zap.Int("fetch_failed", summary.FetchFailed),
			zap.Int("risk_alerts", summary.RiskAlerts),
			zap.Int("unlock_alerts", summary.UnlockAlerts),
			zap.Int("delivery_failed", summary.DeliveryFailed),
		)

		timer := time.NewTimer(r.cfg.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// RunOnce evaluates every registered pool. Per-pool failures are logged and counted, never
// returned.
func (r *Runner) RunOnce(ctx context.Context) CycleSummary {
	start := time.Now()
	entries := r.store.ListAll()
	summary := CycleSummary{Pools: len(entries)}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(r.cfg.Workers)
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		entry := entry
		g.Go(func() error {
			outcome := r.evaluate(ctx, entry)
			mu.Lock()
			summary.add(outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	r.metrics.ObserveCycle(time.Since(start))
	return summary
}

func (r *Runner) validate() error {
	if r.store == nil {
		return fmt.Errorf("store is nil")
	}
	if r.fetcher == nil {
		return fmt.Errorf("fetcher is nil")
	}
	if r.alerts == nil {
		return fmt.Errorf("alert sink is nil")
	}
	if r.flags == nil {
		return fmt.Errorf("flag sink is nil")
	}
	return nil
}

// evaluate runs fetch, record, classify, unlock check and dispatch for one pool.
func (r *Runner) evaluate(ctx context.Context, entry monitor.PoolEntry) poolOutcome {
	pool := entry.Pool
	logger := r.logger.With(zap.String("pool", entry.Key.String()), zap.String("symbol", pool.Symbol), zap.String("chain", pool.Chain))

	m, err := r.fetchWithRetry(ctx, pool, logger)
	if err != nil {
		logger.Warn("fetch failed, pool skipped this cycle", zap.Error(err))
		r.metrics.FetchFailed(entry.Key)
		return poolOutcome{}
	}

	r.store.Record(entry.Key, m.LiquidityUSD, m.MarketCapUSD, m.LPSupply, m.Holders)
	analysis := r.store.Analyze(entry.Key)
	signal, unlock := monitor.CheckUnlock(pool, r.now())

	r.metrics.ObservePool(entry.Key, analysis)
	logger.Info("pool evaluated",
		zap.String("risk", analysis.Risk.String()),
		zap.Float64("liquidity_usd", analysis.CurrentLiquidity),
		zap.Float64("liq_mcap_ratio", analysis.LiqMcapRatio),
		zap.Bool("sufficient_history", analysis.Sufficient),
	)

	return r.dispatch(ctx, pool, analysis, signal, unlock, logger)
}

func (r *Runner) fetchWithRetry(ctx context.Context, pool model.Pool, logger *zap.Logger) (model.Metrics, error) {
	var m model.Metrics
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, r.cfg.IsPermanent, func(ctx context.Context) error {
		fetchCtx := ctx
		if r.cfg.FetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, r.cfg.FetchTimeout)
			defer cancel()
		}
		var err error
		m, err = r.fetcher.Fetch(fetchCtx, pool)
		if err != nil {
			logger.Debug("fetch attempt failed", zap.Error(err))
		}
		return err
	})
	return m, err
}

func (r *Runner) dispatch(ctx context.Context, pool model.Pool, analysis model.Analysis, signal model.UnlockSignal, unlock bool, logger *zap.Logger) poolOutcome {
	outcome := poolOutcome{fetched: true}
	now := r.now().UTC()

	flag := model.Flag{Risk: analysis.Risk.String(), UpdatedAt: now.Format(time.RFC3339)}
	if err := r.flags.PutFlag(ctx, pool.Symbol, flag); err != nil {
		r.deliveryFailed(&outcome, "flags", err, logger)
	}

	if analysis.Risk.Alerting() {
		outcome.riskAlert = true
		if err := r.alerts.AppendAlert(ctx, model.RiskAlertRecord(now, pool, analysis)); err != nil {
			r.deliveryFailed(&outcome, "alert_log", err, logger)
		}
		if err := r.notifier.Notify(ctx, pool, notify.FormatRiskAlert(pool, analysis)); err != nil {
			r.deliveryFailed(&outcome, "notify", err, logger)
		}
	}

	if unlock {
		outcome.unlockAlert = true
		logger.Warn("lp lock alert", zap.String("lock_status", string(signal.Status)), zap.Int("days_left", signal.DaysLeft))
		if err := r.alerts.AppendAlert(ctx, model.UnlockAlertRecord(now, pool, signal)); err != nil {
			r.deliveryFailed(&outcome, "alert_log", err, logger)
		}
		if err := r.notifier.Notify(ctx, pool, notify.FormatUnlockAlert(pool, signal)); err != nil {
			r.deliveryFailed(&outcome, "notify", err, logger)
		}
	}

	return outcome
}

func (r *Runner) deliveryFailed(outcome *poolOutcome, sink string, err error, logger *zap.Logger) {
	outcome.deliveryFailed++
	r.metrics.DeliveryFailed(sink)
	logger.Error("delivery failed", zap.String("sink", sink), zap.Error(err))
}
