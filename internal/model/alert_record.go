package model

import "time"

// AlertKind distinguishes alert log rows.
type AlertKind string

const (
	AlertKindRisk   AlertKind = "risk"
	AlertKindUnlock AlertKind = "unlock"
)

// AlertRecord is one row of the alert log. Nil fields are written empty.
type AlertRecord struct {
	Timestamp time.Time `json:"ts"`
	Kind      AlertKind `json:"kind"`
	Symbol    string    `json:"symbol"`
	Dex       string    `json:"dex"`
	Chain     string    `json:"chain"`
	Risk      RiskLevel `json:"risk"`
	Liquidity *float64  `json:"liquidity,omitempty"`
	Ratio     *float64  `json:"ratio,omitempty"`
	Change5m  *float64  `json:"change_5m,omitempty"`
	Change1h  *float64  `json:"change_1h,omitempty"`
	Change24h *float64  `json:"change_24h,omitempty"`
}

// RiskAlertRecord builds a risk row from an analysis.
func RiskAlertRecord(ts time.Time, pool Pool, analysis Analysis) AlertRecord {
	liq := analysis.CurrentLiquidity
	ratio := analysis.LiqMcapRatio
	return AlertRecord{
		Timestamp: ts,
		Kind:      AlertKindRisk,
		Symbol:    pool.Symbol,
		Dex:       pool.Dex,
		Chain:     pool.Chain,
		Risk:      analysis.Risk,
		Liquidity: &liq,
		Ratio:     &ratio,
		Change5m:  changePct(analysis.Deltas.FiveMin),
		Change1h:  changePct(analysis.Deltas.OneHour),
		Change24h: changePct(analysis.Deltas.OneDay),
	}
}

// UnlockAlertRecord builds an unlock row; market fields stay empty.
func UnlockAlertRecord(ts time.Time, pool Pool, signal UnlockSignal) AlertRecord {
	return AlertRecord{
		Timestamp: ts,
		Kind:      AlertKindUnlock,
		Symbol:    pool.Symbol,
		Dex:       pool.Dex,
		Chain:     pool.Chain,
		Risk:      signal.Risk,
	}
}

func changePct(delta *WindowDelta) *float64 {
	if delta == nil {
		return nil
	}
	v := delta.ChangePct
	return &v
}
