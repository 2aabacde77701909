package store

import (
	"sort"
	"sync"

	"github.com/efreitasn/stocksim/internal/domain"
)

// TeamStore is a thread-safe in-memory store for team ledgers, keyed by
// team_id, with the same versioned snapshot/conditional-update discipline
// as InstrumentStore. Get returns a deep copy so a coordinator working on
// its snapshot can never mutate shared state before its commit lands.
type TeamStore struct {
	mu      sync.RWMutex
	records map[string]*teamRecord
}

type teamRecord struct {
	team    *domain.Team
	version uint64
}

// NewTeamStore creates an empty TeamStore.
func NewTeamStore() *TeamStore {
	return &TeamStore{
		records: make(map[string]*teamRecord),
	}
}

// Create adds a team to the store. It returns
// domain.ErrTeamAlreadyExists if a team with the same ID already exists.
func (s *TeamStore) Create(team *domain.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[team.TeamID]; exists {
		return domain.ErrTeamAlreadyExists
	}
	s.records[team.TeamID] = &teamRecord{team: team.Clone(), version: 1}
	return nil
}

// Get returns a deep copy of the team and its current version. It returns
// domain.ErrTeamNotFound if the team does not exist.
func (s *TeamStore) Get(teamID string) (*domain.Team, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[teamID]
	if !ok {
		return nil, 0, domain.ErrTeamNotFound
	}
	return r.team.Clone(), r.version, nil
}

// Exists returns true if a team with the given ID exists.
func (s *TeamStore) Exists(teamID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[teamID]
	return ok
}

// List returns deep copies of all teams in ascending team_id order.
func (s *TeamStore) List() []*domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Team, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.team.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}

// CompareAndUpdate replaces the stored team if the version still matches
// the one the caller read. It returns domain.ErrVersionConflict when
// another writer got there first. The input is cloned, so the caller's
// copy stays private.
func (s *TeamStore) CompareAndUpdate(teamID string, version uint64, team *domain.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	if r.version != version {
		return domain.ErrVersionConflict
	}
	r.team = team.Clone()
	r.version++
	return nil
}

// Update applies fn to the stored team as a single atomic read-modify-write.
func (s *TeamStore) Update(teamID string, fn func(*domain.Team)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	fn(r.team)
	r.version++
	return nil
}
