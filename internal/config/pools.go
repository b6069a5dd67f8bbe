package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"liquidityGuard/internal/model"
)

// PoolConfig is one entry of the `pools` list.
type PoolConfig struct {
	Symbol          string `mapstructure:"symbol"`
	TokenAddress    string `mapstructure:"token_address"`
	LPAddress       string `mapstructure:"lp_address"`
	Dex             string `mapstructure:"dex"`
	Chain           string `mapstructure:"chain"`
	DeployerAddress string `mapstructure:"deployer_address"`
	// LockExpiry is unix seconds or RFC3339; empty means no known lock.
	LockExpiry string `mapstructure:"lock_expiry"`
}

// Pool converts the entry into a model.Pool.
func (p PoolConfig) Pool() (model.Pool, error) {
	pool := model.Pool{
		Symbol:          p.Symbol,
		TokenAddress:    p.TokenAddress,
		LPAddress:       p.LPAddress,
		Dex:             p.Dex,
		Chain:           p.Chain,
		DeployerAddress: p.DeployerAddress,
	}
	expiry, err := ParseTimestamp(p.LockExpiry)
	if err != nil {
		return model.Pool{}, fmt.Errorf("pool %s: parse lock_expiry: %w", p.Symbol, err)
	}
	if !expiry.IsZero() {
		pool.LockExpiry = &expiry
	}
	return pool, nil
}

func decodePools(v *viper.Viper) ([]model.Pool, error) {
	if !v.IsSet("pools") {
		return nil, nil
	}

	var entries []PoolConfig
	hook := mapstructure.DecodeHookFuncType(timeToStringHook)
	if err := v.UnmarshalKey("pools", &entries, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("decode pools: %w", err)
	}

	pools := make([]model.Pool, 0, len(entries))
	for _, entry := range entries {
		pool, err := entry.Pool()
		if err != nil {
			return nil, err
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

// timeToStringHook keeps YAML timestamps usable as lock_expiry strings.
func timeToStringHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if tm, ok := data.(time.Time); ok {
		return tm.UTC().Format(time.RFC3339), nil
	}
	return data, nil
}
