package model

import (
	"testing"
	"time"
)

func TestFlagMapBlocked(t *testing.T) {
	flags := FlagMap{
		"MON":     {Risk: "critical"},
		"VIRTUAL": {Risk: "rug_detected"},
		"ZEC":     {Risk: "RUG"},
		"HYPE":    {Risk: "risky"},
	}

	cases := map[string]bool{
		"MON":     true,
		"VIRTUAL": true,
		"ZEC":     true,
		"HYPE":    false,
		"UNKNOWN": false,
	}
	for symbol, want := range cases {
		if got := flags.Blocked(symbol); got != want {
			t.Fatalf("Blocked(%s) = %v, want %v", symbol, got, want)
		}
	}
}

func TestNewSnapshotZeroMarketCap(t *testing.T) {
	snap := NewSnapshot(time.Unix(0, 0), Metrics{LiquidityUSD: 1000, MarketCapUSD: 0})
	if snap.LiqMcapRatio != 0 {
		t.Fatalf("ratio = %v, want 0", snap.LiqMcapRatio)
	}

	snap = NewSnapshot(time.Unix(0, 0), Metrics{LiquidityUSD: 1000, MarketCapUSD: -5})
	if snap.LiqMcapRatio != 0 {
		t.Fatalf("ratio = %v, want 0 for negative market cap", snap.LiqMcapRatio)
	}

	snap = NewSnapshot(time.Unix(0, 0), Metrics{LiquidityUSD: 1500, MarketCapUSD: 10000})
	if snap.LiqMcapRatio != 0.15 {
		t.Fatalf("ratio = %v, want 0.15", snap.LiqMcapRatio)
	}
}

func TestLockStatusAt(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	soon := now.Add(3 * 24 * time.Hour)
	later := now.Add(10 * 24 * time.Hour)

	if got := LockStatusAt(nil, now); got != LockNone {
		t.Fatalf("nil expiry = %s", got)
	}
	if got := LockStatusAt(&past, now); got != LockUnlocked {
		t.Fatalf("past expiry = %s", got)
	}
	if got := LockStatusAt(&soon, now); got != LockWarning {
		t.Fatalf("soon expiry = %s", got)
	}
	if got := LockStatusAt(&later, now); got != LockLocked {
		t.Fatalf("later expiry = %s", got)
	}
}

func TestParseRiskLevel(t *testing.T) {
	if r, ok := ParseRiskLevel("RUG"); !ok || r != RiskRugDetected {
		t.Fatalf("RUG parsed as %q %v", r, ok)
	}
	if r, ok := ParseRiskLevel(" Critical "); !ok || r != RiskCritical {
		t.Fatalf("Critical parsed as %q %v", r, ok)
	}
	if _, ok := ParseRiskLevel("unknown"); ok {
		t.Fatalf("unknown should not parse")
	}
	if MaxRisk(RiskCritical, RiskModerate) != RiskCritical {
		t.Fatalf("MaxRisk should keep critical")
	}
}
