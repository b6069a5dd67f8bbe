package monitor

import "liquidityGuard/internal/model"

// Ratio and drop thresholds.
const (
	RatioSafe     = 0.10
	RatioModerate = 0.05
	RatioRisky    = 0.02

	DropWarningPct  = 10.0
	DropCriticalPct = 25.0
	DropRugPct      = 50.0

	MinLiquidityUSD = 50000.0
)

// Classify maps the current snapshot and its window deltas to a risk level.
// A rug-sized drop in any window wins immediately; otherwise the most severe outcome is kept.
func Classify(current model.Snapshot, deltas model.WindowDeltas) model.RiskLevel {
	risk := baseRisk(current.LiqMcapRatio)

	for _, delta := range deltas.Present() {
		drop := -delta.ChangePct
		switch {
		case drop > DropRugPct:
			return model.RiskRugDetected
		case drop > DropCriticalPct:
			risk = model.MaxRisk(risk, model.RiskCritical)
		case drop > DropWarningPct:
			if risk == model.RiskSafe {
				risk = model.RiskModerate
			}
		}
	}

	if current.LiquidityUSD < MinLiquidityUSD && (risk == model.RiskSafe || risk == model.RiskModerate) {
		risk = model.RiskRisky
	}
	return risk
}

func baseRisk(ratio float64) model.RiskLevel {
	switch {
	case ratio < RatioRisky:
		return model.RiskCritical
	case ratio < RatioModerate:
		return model.RiskRisky
	case ratio < RatioSafe:
		return model.RiskModerate
	default:
		return model.RiskSafe
	}
}

// Analyze classifies the newest snapshot of history. Fewer than two snapshots is reported as
// safe with no deltas.
func Analyze(history []model.Snapshot) model.Analysis {
	if len(history) == 0 {
		return model.Analysis{Risk: model.RiskSafe}
	}

	current := history[len(history)-1]
	analysis := model.Analysis{
		Risk:             model.RiskSafe,
		CurrentLiquidity: current.LiquidityUSD,
		LiqMcapRatio:     current.LiqMcapRatio,
		Timestamp:        current.Timestamp,
	}
	if len(history) < 2 {
		return analysis
	}

	analysis.Sufficient = true
	analysis.Deltas = ComputeDeltas(history, current)
	analysis.Risk = Classify(current, analysis.Deltas)
	return analysis
}
