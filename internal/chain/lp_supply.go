package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const erc20SupplyABIJSON = `[
  {"inputs": [], "name": "totalSupply", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "decimals", "outputs": [{"internalType": "uint8", "name": "", "type": "uint8"}], "stateMutability": "view", "type": "function"}
]`

var (
	supplyABI    abi.ABI
	supplyOnce   sync.Once
	supplyABIErr error
)

func getSupplyABI() (abi.ABI, error) {
	supplyOnce.Do(func() {
		supplyABI, supplyABIErr = abi.JSON(strings.NewReader(erc20SupplyABIJSON))
	})
	return supplyABI, supplyABIErr
}

// LPSupply returns the LP token total supply scaled by its decimals. Decimals are read
// through cache when it is non-nil.
func LPSupply(ctx context.Context, caller Caller, lpToken string, cache *DecimalsCache) (float64, error) {
	if caller == nil {
		return 0, fmt.Errorf("chain client is nil")
	}
	if !common.IsHexAddress(lpToken) {
		return 0, fmt.Errorf("invalid lp token address: %s", lpToken)
	}
	token := common.HexToAddress(lpToken)

	supplyValues, err := call(ctx, caller, token, "totalSupply")
	if err != nil {
		return 0, err
	}
	supply, ok := supplyValues[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("totalSupply unexpected type %T", supplyValues[0])
	}

	decimals, err := tokenDecimals(ctx, caller, token, cache)
	if err != nil {
		return 0, err
	}
	return scaleAmount(supply, decimals), nil
}

func tokenDecimals(ctx context.Context, caller Caller, token common.Address, cache *DecimalsCache) (uint8, error) {
	if decimals, ok := cache.Get(token); ok {
		return decimals, nil
	}

	values, err := call(ctx, caller, token, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals unexpected type %T", values[0])
	}
	cache.Set(token, decimals)
	return decimals, nil
}

func call(ctx context.Context, caller Caller, token common.Address, method string) ([]interface{}, error) {
	parsed, err := getSupplyABI()
	if err != nil {
		return nil, err
	}

	data, err := parsed.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	resp, err := caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("%s return size %d", method, len(values))
	}
	return values, nil
}

func scaleAmount(value *big.Int, decimals uint8) float64 {
	if value == nil {
		return 0
	}
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	out, _ := new(big.Float).Quo(new(big.Float).SetInt(value), new(big.Float).SetInt(denom)).Float64()
	return out
}
