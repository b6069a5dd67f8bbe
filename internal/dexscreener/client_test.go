package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"liquidityGuard/internal/model"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestFetchPairPrefersFDV(t *testing.T) {
	var gotPath string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(w, `{"pairs":[{"chainId":"bsc","liquidity":{"usd":125000.5},"fdv":2500000,"marketCap":1000000}]}`)
	})

	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second}, nil)
	metrics, err := client.FetchPair(context.Background(), model.Pool{
		Symbol:    "ZEC",
		Chain:     "bnb",
		LPAddress: "0x4d1b90273d5b0ea98101154d73a6c7d7a19884db",
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/latest/dex/pairs/bsc/0x4d1b90273d5b0ea98101154d73a6c7d7a19884db" {
		t.Fatalf("path = %s", gotPath)
	}
	if metrics.LiquidityUSD != 125000.5 || metrics.MarketCapUSD != 2500000 {
		t.Fatalf("metrics = %+v", metrics)
	}
}

func TestFetchPairMarketCapFallbackAndStrings(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"pairs":[{"liquidity":{"usd":"42000"},"marketCap":"oops"}]}`)
	})

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	metrics, err := client.FetchPair(context.Background(), model.Pool{Symbol: "MON", Chain: "solana", LPAddress: "GbVFZZ9g71fNioHDfS3aTEYvMGxLcs6yWNdiG9uBLQnn"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if metrics.LiquidityUSD != 42000 || metrics.MarketCapUSD != 0 {
		t.Fatalf("metrics = %+v", metrics)
	}
}

func TestFetchPairNoData(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"schemaVersion":"1.0.0","pairs":null}`)
	})

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	_, err := client.FetchPair(context.Background(), model.Pool{Symbol: "HYPE", Chain: "base", LPAddress: "0xb4585f61fdbeb7182839fd30dff9eb0e36a649cf"})
	if !errors.Is(err, ErrNoPairData) {
		t.Fatalf("expected ErrNoPairData, got %v", err)
	}
}

func TestFetchPairInvalidAddress(t *testing.T) {
	var calls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	client := NewClient(Config{BaseURL: srv.URL}, nil)
	for _, addr := range []string{"", "0x..."} {
		_, err := client.FetchPair(context.Background(), model.Pool{Symbol: "X", Chain: "bsc", LPAddress: addr})
		if !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("address %q: expected ErrInvalidAddress, got %v", addr, err)
		}
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("no request expected for invalid address")
	}
}

func TestFetchPairBreakerOpens(t *testing.T) {
	var calls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	client := NewClient(Config{BaseURL: srv.URL, BreakerFailures: 2, BreakerTimeout: time.Hour}, nil)
	pool := model.Pool{Symbol: "VIRTUAL", Chain: "base", LPAddress: "0xa9991eeaca10af662633913106fe4c18ec06e1f8"}

	for i := 0; i < 2; i++ {
		if _, err := client.FetchPair(context.Background(), pool); err == nil {
			t.Fatalf("attempt %d: expected http error", i)
		}
	}
	_, err := client.FetchPair(context.Background(), pool)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("server calls = %d, want 2", got)
	}
}

func TestNumberUnmarshal(t *testing.T) {
	var payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":1.5,"b":"2.25","c":"n/a","d":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A != 1.5 || payload.B != 2.25 || payload.C != 0 || payload.D != 0 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestChainID(t *testing.T) {
	cases := map[string]string{
		"BNB":      "bsc",
		"eth":      "ethereum",
		"base":     "base",
		"Polygon":  "polygon",
		"arbitrum": "arbitrum",
	}
	for in, want := range cases {
		if got := ChainID(in); got != want {
			t.Fatalf("ChainID(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestIsPermanent(t *testing.T) {
	if !IsPermanent(fmt.Errorf("ZEC: %w", ErrInvalidAddress)) {
		t.Fatalf("invalid address should be permanent")
	}
	if !IsPermanent(fmt.Errorf("%w for 0xabc", ErrNoPairData)) {
		t.Fatalf("no pair data should be permanent")
	}
	if IsPermanent(errors.New("request pair: http status 502")) {
		t.Fatalf("http failure should be retryable")
	}
}
