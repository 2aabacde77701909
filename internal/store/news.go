package store

import (
	"sync"

	"github.com/efreitasn/stocksim/internal/domain"
)

// NewsStore is a thread-safe append-only store for published news flashes.
type NewsStore struct {
	mu      sync.RWMutex
	flashes []domain.NewsFlash // chronological
}

// NewNewsStore creates an empty NewsStore.
func NewNewsStore() *NewsStore {
	return &NewsStore{
		flashes: make([]domain.NewsFlash, 0),
	}
}

// Append adds a flash to the feed.
func (s *NewsStore) Append(f domain.NewsFlash) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flashes = append(s.flashes, f)
}

// Recent returns up to limit flashes, newest first.
func (s *NewsStore) Recent(limit int) []domain.NewsFlash {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.flashes)
	if limit > n {
		limit = n
	}
	out := make([]domain.NewsFlash, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.flashes[i])
	}
	return out
}
