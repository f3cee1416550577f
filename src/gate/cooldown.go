package gate

import (
	"sync"
	"time"
)

// CooldownStore remembers when the engine last submitted an order for a
// (wallet, symbol) pair. Injected so deployments can swap in a shared store.
type CooldownStore interface {
	LastOrderAt(walletID, symbol string) (time.Time, bool)
	RecordOrder(walletID, symbol string, at time.Time)
}

// MemoryCooldownStore is the default process-local store. Restarting the
// engine resets all cooldowns.
type MemoryCooldownStore struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{last: make(map[string]time.Time)}
}

func cooldownKey(walletID, symbol string) string {
	return walletID + "_" + symbol
}

func (s *MemoryCooldownStore) LastOrderAt(walletID, symbol string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.last[cooldownKey(walletID, symbol)]
	return at, ok
}

func (s *MemoryCooldownStore) RecordOrder(walletID, symbol string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[cooldownKey(walletID, symbol)] = at
}
