package monitor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"

	"liquidityGuard/internal/model"
)

// ErrInvalidAddress marks a pool whose LP address cannot be monitored.
var ErrInvalidAddress = errors.New("invalid lp address")

var placeholderMarkers = []string{"0x...", "TODO", "_IF_NEEDED"}

// ValidatePool checks that pool has an identity and a usable LP address for its chain.
func ValidatePool(pool model.Pool) error {
	if strings.TrimSpace(pool.Symbol) == "" {
		return fmt.Errorf("pool symbol is required")
	}
	if strings.TrimSpace(pool.Chain) == "" {
		return fmt.Errorf("pool %s: chain is required", pool.Symbol)
	}
	addr := strings.TrimSpace(pool.LPAddress)
	if addr == "" {
		return fmt.Errorf("pool %s: %w: empty", pool.Symbol, ErrInvalidAddress)
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(addr, marker) {
			return fmt.Errorf("pool %s: %w: placeholder %q", pool.Symbol, ErrInvalidAddress, addr)
		}
	}

	if strings.EqualFold(pool.Chain, "solana") {
		if _, err := solana.PublicKeyFromBase58(addr); err != nil {
			return fmt.Errorf("pool %s: %w: %v", pool.Symbol, ErrInvalidAddress, err)
		}
		return nil
	}
	if strings.HasPrefix(addr, "0x") && !common.IsHexAddress(addr) {
		return fmt.Errorf("pool %s: %w: %s", pool.Symbol, ErrInvalidAddress, addr)
	}
	return nil
}

// IsEVMAddress reports whether addr is a hex EVM address.
func IsEVMAddress(addr string) bool {
	return strings.HasPrefix(addr, "0x") && common.IsHexAddress(addr)
}
