package monitor

import (
	"time"

	"liquidityGuard/internal/model"
)

// MaxWindowTolerance bounds how far a comparison point may be from its target time.
const MaxWindowTolerance = 24 * time.Hour

// FindClosest returns the snapshot nearest to target, scanning in order. The first entry
// with the minimum distance wins. Nothing is returned unless the distance is below the tolerance.
func FindClosest(history []model.Snapshot, target time.Time) (model.Snapshot, bool) {
	var closest model.Snapshot
	found := false
	minDiff := MaxWindowTolerance

	for _, snap := range history {
		diff := absDuration(snap.Timestamp.Sub(target))
		if diff < minDiff {
			minDiff = diff
			closest = snap
			found = true
		}
	}
	return closest, found
}

// ComputeDeltas resolves every window against current.
func ComputeDeltas(history []model.Snapshot, current model.Snapshot) model.WindowDeltas {
	var deltas model.WindowDeltas
	for _, w := range model.Windows {
		past, ok := FindClosest(history, current.Timestamp.Add(-w.Lookback))
		if !ok {
			continue
		}
		deltas.Set(windowDelta(w.Label, current, past))
	}
	return deltas
}

func windowDelta(label string, current, past model.Snapshot) model.WindowDelta {
	var change float64
	if past.LiquidityUSD > 0 {
		change = (current.LiquidityUSD - past.LiquidityUSD) / past.LiquidityUSD
	}
	return model.WindowDelta{
		Label:     label,
		ChangePct: change * 100,
		ChangeUSD: current.LiquidityUSD - past.LiquidityUSD,
		PastAt:    past.Timestamp,
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
