package monitor

import (
	"errors"
	"testing"
	"time"

	"liquidityGuard/internal/model"
)

func TestCheckUnlock(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	if _, ok := CheckUnlock(model.Pool{}, now); ok {
		t.Fatalf("expected no signal without expiry")
	}

	signal, ok := CheckUnlock(model.Pool{LockExpiry: at(3 * 24 * time.Hour)}, now)
	if !ok || signal.Status != model.LockWarning || signal.DaysLeft != 3 || signal.Risk != model.RiskRisky {
		t.Fatalf("3 days: %+v %v", signal, ok)
	}

	if _, ok := CheckUnlock(model.Pool{LockExpiry: at(10 * 24 * time.Hour)}, now); ok {
		t.Fatalf("expected no signal 10 days out")
	}

	signal, ok = CheckUnlock(model.Pool{LockExpiry: at(-time.Minute)}, now)
	if !ok || signal.Status != model.LockUnlocked || signal.Risk != model.RiskCritical {
		t.Fatalf("expired: %+v %v", signal, ok)
	}

	signal, ok = CheckUnlock(model.Pool{LockExpiry: at(36 * time.Hour)}, now)
	if !ok || signal.DaysLeft != 1 {
		t.Fatalf("36h: %+v %v", signal, ok)
	}
}

func TestValidatePool(t *testing.T) {
	valid := []model.Pool{
		{Symbol: "MON", Chain: "solana", LPAddress: "GbVFZZ9g71fNioHDfS3aTEYvMGxLcs6yWNdiG9uBLQnn"},
		{Symbol: "VIRTUAL", Chain: "base", LPAddress: "0xa9991eeaca10af662633913106fe4c18ec06e1f8"},
	}
	for _, pool := range valid {
		if err := ValidatePool(pool); err != nil {
			t.Fatalf("%s: unexpected error: %v", pool.Symbol, err)
		}
	}

	invalid := []model.Pool{
		{Symbol: "A", Chain: "bsc", LPAddress: ""},
		{Symbol: "B", Chain: "bsc", LPAddress: "0x..."},
		{Symbol: "C", Chain: "bsc", LPAddress: "0x1234"},
		{Symbol: "D", Chain: "solana", LPAddress: "not-base58-0OIl"},
		{Symbol: "E", Chain: "base", LPAddress: "TODO"},
	}
	for _, pool := range invalid {
		if err := ValidatePool(pool); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("%s: expected ErrInvalidAddress, got %v", pool.Symbol, err)
		}
	}
	if err := ValidatePool(model.Pool{Chain: "bsc", LPAddress: "0xa9991eeaca10af662633913106fe4c18ec06e1f8"}); err == nil {
		t.Fatalf("expected error for missing symbol")
	}
}
