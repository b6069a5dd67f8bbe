package model

import "time"

// Snapshot is one point-in-time measurement of a pool.
type Snapshot struct {
	Timestamp     time.Time `json:"timestamp"`
	LiquidityUSD  float64   `json:"liquidity_usd"`
	MarketCapUSD  float64   `json:"market_cap_usd"`
	LiqMcapRatio  float64   `json:"liq_mcap_ratio"`
	LPTokenSupply float64   `json:"lp_token_supply"`
	HoldersCount  int       `json:"holders_count"`
}

// Metrics is the raw output of a data fetch, before it is stamped into a Snapshot.
type Metrics struct {
	LiquidityUSD float64
	MarketCapUSD float64
	LPSupply     float64
	Holders      int
}

// NewSnapshot builds a snapshot at ts. The ratio is 0 when market cap is not positive.
func NewSnapshot(ts time.Time, m Metrics) Snapshot {
	var ratio float64
	if m.MarketCapUSD > 0 {
		ratio = m.LiquidityUSD / m.MarketCapUSD
	}
	return Snapshot{
		Timestamp:     ts,
		LiquidityUSD:  m.LiquidityUSD,
		MarketCapUSD:  m.MarketCapUSD,
		LiqMcapRatio:  ratio,
		LPTokenSupply: m.LPSupply,
		HoldersCount:  m.Holders,
	}
}
