package store

import (
	"sync"

	"github.com/efreitasn/stocksim/internal/domain"
)

// TradeStore is a thread-safe in-memory store for the append-only trade
// audit log. Trades are never mutated; Clear exists only for the session
// reset.
type TradeStore struct {
	mu     sync.RWMutex
	trades []*domain.Trade // chronological
}

// NewTradeStore creates an empty TradeStore.
func NewTradeStore() *TradeStore {
	return &TradeStore{
		trades: make([]*domain.Trade, 0),
	}
}

// Append adds a trade to the log.
func (s *TradeStore) Append(t *domain.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = append(s.trades, t)
}

// All returns the trade log in reverse chronological order (newest first).
func (s *TradeStore) All() []*domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Trade, len(s.trades))
	for i, t := range s.trades {
		out[len(s.trades)-1-i] = t
	}
	return out
}

// Count returns the number of recorded trades.
func (s *TradeStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}

// Clear removes all trades. Only the session reset calls this.
func (s *TradeStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = s.trades[:0]
}
