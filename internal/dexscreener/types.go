package dexscreener

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type pairsResponse struct {
	Pairs []Pair `json:"pairs"`
	Pair  *Pair  `json:"pair"`
}

// Pair is the subset of a DexScreener pair used for liquidity monitoring.
type Pair struct {
	ChainID     string `json:"chainId"`
	DexID       string `json:"dexId"`
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Address string `json:"address"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	Liquidity struct {
		USD Number `json:"usd"`
	} `json:"liquidity"`
	FDV       *Number `json:"fdv"`
	MarketCap *Number `json:"marketCap"`
}

// MarketCapUSD prefers fully-diluted valuation and falls back to market cap.
func (p Pair) MarketCapUSD() float64 {
	if p.FDV != nil {
		return float64(*p.FDV)
	}
	if p.MarketCap != nil {
		return float64(*p.MarketCap)
	}
	return 0
}

// Number decodes a JSON number or numeric string; anything else decodes to zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		data = []byte(s)
	}

	v, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}
