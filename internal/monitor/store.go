package monitor

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"liquidityGuard/internal/model"
)

// ErrUnknownPool is returned for keys that were never registered.
var ErrUnknownPool = errors.New("unknown pool")

// Store owns the pool registry and the per-pool snapshot histories.
type Store struct {
	mu        sync.RWMutex
	pools     map[model.PoolKey]model.Pool
	histories map[model.PoolKey]*poolHistory
	capacity  int
	now       func() time.Time
}

type poolHistory struct {
	mu      sync.Mutex
	history *History
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &Store{
		pools:     make(map[model.PoolKey]model.Pool),
		histories: make(map[model.PoolKey]*poolHistory),
		capacity:  capacity,
		now:       time.Now,
	}
}

// Register stores pool under chain:symbol, overwriting any previous entry.
// History is created for new keys only.
func (s *Store) Register(pool model.Pool) model.PoolKey {
	key := pool.Key()
	s.mu.Lock()
	s.pools[key] = pool
	if _, ok := s.histories[key]; !ok {
		s.histories[key] = &poolHistory{history: NewHistory(s.capacity)}
	}
	s.mu.Unlock()
	return key
}

// Pool returns the registered pool for key.
func (s *Store) Pool(key model.PoolKey) (model.Pool, bool) {
	s.mu.RLock()
	pool, ok := s.pools[key]
	s.mu.RUnlock()
	return pool, ok
}

// SetLockExpiry back-fills the lock expiry of a registered pool.
func (s *Store) SetLockExpiry(key model.PoolKey, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool, ok := s.pools[key]
	if !ok {
		return fmt.Errorf("set lock expiry %s: %w", key, ErrUnknownPool)
	}
	pool.LockExpiry = &expiry
	s.pools[key] = pool
	return nil
}

// PoolEntry pairs a registry key with its pool.
type PoolEntry struct {
	Key  model.PoolKey
	Pool model.Pool
}

// ListAll returns every registered pool sorted by key.
func (s *Store) ListAll() []PoolEntry {
	s.mu.RLock()
	out := make([]PoolEntry, 0, len(s.pools))
	for key, pool := range s.pools {
		out = append(out, PoolEntry{Key: key, Pool: pool})
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Record stamps a snapshot with the current time and appends it to the pool history.
// Inputs are not validated.
func (s *Store) Record(key model.PoolKey, liquidityUSD, marketCapUSD, lpSupply float64, holders int) model.Snapshot {
	snap := model.NewSnapshot(s.now(), model.Metrics{
		LiquidityUSD: liquidityUSD,
		MarketCapUSD: marketCapUSD,
		LPSupply:     lpSupply,
		Holders:      holders,
	})

	ph := s.historyFor(key)
	ph.mu.Lock()
	ph.history.Append(snap)
	ph.mu.Unlock()
	return snap
}

// History returns a copy of the pool history in insertion order.
func (s *Store) History(key model.PoolKey) []model.Snapshot {
	s.mu.RLock()
	ph, ok := s.histories[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	ph.mu.Lock()
	defer ph.mu.Unlock()
	return ph.history.Snapshots()
}

// Analyze classifies the pool's current state from its history.
func (s *Store) Analyze(key model.PoolKey) model.Analysis {
	return Analyze(s.History(key))
}

func (s *Store) historyFor(key model.PoolKey) *poolHistory {
	s.mu.RLock()
	ph, ok := s.histories[key]
	s.mu.RUnlock()
	if ok {
		return ph
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ph, ok := s.histories[key]; ok {
		return ph
	}
	ph = &poolHistory{history: NewHistory(s.capacity)}
	s.histories[key] = ph
	return ph
}
