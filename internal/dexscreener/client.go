package dexscreener

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"liquidityGuard/internal/model"
)

const DefaultBaseURL = "https://api.dexscreener.com"

var (
	ErrNoPairData     = errors.New("no pair data")
	ErrInvalidAddress = errors.New("invalid lp address")
	ErrCircuitOpen    = errors.New("dexscreener circuit open")
)

// chainAliases maps configured chain names to DexScreener chain ids.
var chainAliases = map[string]string{
	"bnb":      "bsc",
	"bsc":      "bsc",
	"eth":      "ethereum",
	"ethereum": "ethereum",
	"base":     "base",
	"solana":   "solana",
	"arbitrum": "arbitrum",
}

// ChainID returns the DexScreener chain id for a configured chain name.
func ChainID(chain string) string {
	lower := strings.ToLower(strings.TrimSpace(chain))
	if id, ok := chainAliases[lower]; ok {
		return id
	}
	return lower
}

// Config controls the HTTP client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RPS limits requests per second; zero disables limiting.
	RPS float64
	// BreakerFailures trips the breaker after this many consecutive failures.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Client fetches pair data from the DexScreener API.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = time.Minute
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		burst := int(cfg.RPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "dexscreener",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// A well-formed "no data" answer means the API is healthy.
			return err == nil || errors.Is(err, ErrNoPairData)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		http:    httpClient,
		limiter: limiter,
		breaker: breaker,
		logger:  logger,
	}
}

// FetchPair returns liquidity and market cap for the pool's LP pair.
func (c *Client) FetchPair(ctx context.Context, pool model.Pool) (model.Metrics, error) {
	addr := strings.TrimSpace(pool.LPAddress)
	if addr == "" || strings.Contains(addr, "0x...") {
		return model.Metrics{}, fmt.Errorf("%s: %w", pool.Symbol, ErrInvalidAddress)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return model.Metrics{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, ChainID(pool.Chain), addr)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return model.Metrics{}, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return model.Metrics{}, fmt.Errorf("%s: %w", pool.Symbol, err)
	}

	pair := result.(Pair)
	return model.Metrics{
		LiquidityUSD: float64(pair.Liquidity.USD),
		MarketCapUSD: pair.MarketCapUSD(),
	}, nil
}

func (c *Client) fetch(ctx context.Context, chainID, pairAddress string) (Pair, error) {
	var payload pairsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"chainId":     chainID,
			"pairAddress": pairAddress,
		}).
		SetResult(&payload).
		Get("/latest/dex/pairs/{chainId}/{pairAddress}")
	if err != nil {
		return Pair{}, fmt.Errorf("request pair: %w", err)
	}
	if resp.IsError() {
		return Pair{}, fmt.Errorf("request pair: http status %d", resp.StatusCode())
	}

	pairs := payload.Pairs
	if len(pairs) == 0 && payload.Pair != nil {
		pairs = []Pair{*payload.Pair}
	}
	if len(pairs) == 0 {
		return Pair{}, fmt.Errorf("%w for %s", ErrNoPairData, pairAddress)
	}

	c.logger.Debug("pair fetched",
		zap.String("chain", chainID),
		zap.String("pair", pairAddress),
		zap.Float64("liquidity_usd", float64(pairs[0].Liquidity.USD)),
	)
	return pairs[0], nil
}

// IsPermanent reports errors that retrying within the same cycle cannot fix.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInvalidAddress) || errors.Is(err, ErrNoPairData) || errors.Is(err, ErrCircuitOpen)
}
