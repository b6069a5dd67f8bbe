package model

import "time"

// Pool represents a monitored liquidity position.
type Pool struct {
	Symbol          string     `json:"symbol"`
	TokenAddress    string     `json:"token_address,omitempty"`
	LPAddress       string     `json:"lp_address"`
	Dex             string     `json:"dex"`
	Chain           string     `json:"chain"`
	DeployerAddress string     `json:"deployer_address,omitempty"`
	LockExpiry      *time.Time `json:"lock_expiry,omitempty"`
}

// PoolKey identifies a pool in the registry as chain:symbol.
type PoolKey string

func NewPoolKey(chain, symbol string) PoolKey {
	return PoolKey(chain + ":" + symbol)
}

// Key returns the registry key for the pool.
func (p Pool) Key() PoolKey {
	return NewPoolKey(p.Chain, p.Symbol)
}

func (k PoolKey) String() string {
	return string(k)
}
