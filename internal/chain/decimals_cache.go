package chain

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// DecimalsCache caches token decimals by address.
type DecimalsCache struct {
	mu   sync.RWMutex
	data map[common.Address]uint8
}

func NewDecimalsCache() *DecimalsCache {
	return &DecimalsCache{data: make(map[common.Address]uint8)}
}

func (c *DecimalsCache) Get(address common.Address) (uint8, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.RLock()
	decimals, ok := c.data[address]
	c.mu.RUnlock()
	return decimals, ok
}

func (c *DecimalsCache) Set(address common.Address, decimals uint8) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.data[address] = decimals
	c.mu.Unlock()
}
