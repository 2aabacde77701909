package store

import (
	"sync"

	"github.com/efreitasn/stocksim/internal/domain"
)

// DealerStore is a thread-safe in-memory registry of dealer identities.
// Dealers exist so trades can carry an audit identity; the registry is
// seeded at startup.
type DealerStore struct {
	mu      sync.RWMutex
	dealers map[string]domain.Dealer
}

// NewDealerStore creates an empty DealerStore.
func NewDealerStore() *DealerStore {
	return &DealerStore{
		dealers: make(map[string]domain.Dealer),
	}
}

// Put inserts or replaces a dealer.
func (s *DealerStore) Put(d domain.Dealer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dealers[d.Username] = d
}

// Get retrieves a dealer by username. It returns
// domain.ErrDealerNotFound if the dealer does not exist.
func (s *DealerStore) Get(username string) (domain.Dealer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dealers[username]
	if !ok {
		return domain.Dealer{}, domain.ErrDealerNotFound
	}
	return d, nil
}

// Exists returns true if a dealer with the given username exists.
func (s *DealerStore) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.dealers[username]
	return ok
}
