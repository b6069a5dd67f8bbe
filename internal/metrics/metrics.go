package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"liquidityGuard/internal/model"
)

// Registry holds the watcher's Prometheus collectors. A nil *Registry is a
// valid no-op recorder.
type Registry struct {
	reg *prometheus.Registry

	Cycles         prometheus.Counter
	CycleDuration  prometheus.Histogram
	FetchErrors    *prometheus.CounterVec
	DeliveryErrors *prometheus.CounterVec
	PoolLiquidity  *prometheus.GaugeVec
	PoolRisk       *prometheus.GaugeVec
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "liqguard_cycles_total",
			Help: "Completed monitoring cycles.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "liqguard_cycle_duration_seconds",
			Help:    "Wall time of one monitoring cycle.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liqguard_fetch_errors_total",
			Help: "Failed metric fetches by pool.",
		}, []string{"pool"}),
		DeliveryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liqguard_delivery_errors_total",
			Help: "Failed alert deliveries by sink.",
		}, []string{"sink"}),
		PoolLiquidity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "liqguard_pool_liquidity_usd",
			Help: "Latest recorded pool liquidity in USD.",
		}, []string{"pool"}),
		PoolRisk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "liqguard_pool_risk_severity",
			Help: "Latest risk severity per pool (0 safe .. 4 rug_detected).",
		}, []string{"pool"}),
	}

	r.reg.MustRegister(
		r.Cycles,
		r.CycleDuration,
		r.FetchErrors,
		r.DeliveryErrors,
		r.PoolLiquidity,
		r.PoolRisk,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) ObserveCycle(d time.Duration) {
	if r == nil {
		return
	}
	r.Cycles.Inc()
	r.CycleDuration.Observe(d.Seconds())
}

func (r *Registry) FetchFailed(key model.PoolKey) {
	if r == nil {
		return
	}
	r.FetchErrors.WithLabelValues(key.String()).Inc()
}

func (r *Registry) DeliveryFailed(sink string) {
	if r == nil {
		return
	}
	r.DeliveryErrors.WithLabelValues(sink).Inc()
}

func (r *Registry) ObservePool(key model.PoolKey, analysis model.Analysis) {
	if r == nil {
		return
	}
	r.PoolLiquidity.WithLabelValues(key.String()).Set(analysis.CurrentLiquidity)
	r.PoolRisk.WithLabelValues(key.String()).Set(float64(analysis.Risk.Severity()))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is canceled.
func (r *Registry) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	}
}
