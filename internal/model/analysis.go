package model

import "time"

// Analysis is the classifier verdict for one pool plus the values used to format it.
type Analysis struct {
	Risk             RiskLevel
	CurrentLiquidity float64
	LiqMcapRatio     float64
	Timestamp        time.Time
	Deltas           WindowDeltas
	// Sufficient is false when fewer than two snapshots were available.
	Sufficient bool
}
