package store

import (
	"sync"

	"github.com/google/btree"

	"github.com/efreitasn/stocksim/internal/domain"
)

// InstrumentStore is a thread-safe in-memory store for instruments, keyed
// by ticker, with a sorted ticker index for ordered listings.
//
// Every record carries a version counter. Readers take a snapshot copy plus
// its version; writers go through either CompareAndUpdate (optimistic
// concurrency, used by the trade coordinator) or Update (atomic
// read-modify-write, used by drift, shock, rollback, and reset). Both bump
// the version, so a conditional writer always detects an interleaved drift
// tick, shock, or competing trade — a blind overwrite of a stale read is
// impossible.
type InstrumentStore struct {
	mu      sync.RWMutex
	records map[string]*instrumentRecord
	index   *btree.BTreeG[string]
}

type instrumentRecord struct {
	inst    domain.Instrument
	version uint64
}

// NewInstrumentStore creates an empty InstrumentStore.
func NewInstrumentStore() *InstrumentStore {
	const degree = 32
	return &InstrumentStore{
		records: make(map[string]*instrumentRecord),
		index:   btree.NewG[string](degree, func(a, b string) bool { return a < b }),
	}
}

// Create adds an instrument to the store. It returns
// domain.ErrTickerAlreadyExists if the ticker is already present.
func (s *InstrumentStore) Create(inst domain.Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[inst.Ticker]; exists {
		return domain.ErrTickerAlreadyExists
	}
	s.records[inst.Ticker] = &instrumentRecord{inst: inst, version: 1}
	s.index.ReplaceOrInsert(inst.Ticker)
	return nil
}

// Get returns a snapshot copy of the instrument and its current version.
// It returns domain.ErrTickerNotFound if the ticker does not exist.
func (s *InstrumentStore) Get(ticker string) (domain.Instrument, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[ticker]
	if !ok {
		return domain.Instrument{}, 0, domain.ErrTickerNotFound
	}
	return r.inst, r.version, nil
}

// List returns snapshot copies of all instruments in ascending ticker order.
func (s *InstrumentStore) List() []domain.Instrument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Instrument, 0, len(s.records))
	s.index.Ascend(func(ticker string) bool {
		out = append(out, s.records[ticker].inst)
		return true
	})
	return out
}

// Tickers returns all tickers in ascending order.
func (s *InstrumentStore) Tickers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.records))
	s.index.Ascend(func(ticker string) bool {
		out = append(out, ticker)
		return true
	})
	return out
}

// CompareAndUpdate replaces the stored instrument if the version still
// matches the one the caller read. It returns domain.ErrVersionConflict
// when another writer got there first, and domain.ErrTickerNotFound if the
// ticker does not exist.
func (s *InstrumentStore) CompareAndUpdate(ticker string, version uint64, inst domain.Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[ticker]
	if !ok {
		return domain.ErrTickerNotFound
	}
	if r.version != version {
		return domain.ErrVersionConflict
	}
	r.inst = inst
	r.version++
	return nil
}

// Update applies fn to the stored instrument as a single atomic
// read-modify-write and returns the resulting snapshot. No other writer can
// interleave between fn's read and its write.
func (s *InstrumentStore) Update(ticker string, fn func(*domain.Instrument)) (domain.Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[ticker]
	if !ok {
		return domain.Instrument{}, domain.ErrTickerNotFound
	}
	fn(&r.inst)
	r.version++
	return r.inst, nil
}
