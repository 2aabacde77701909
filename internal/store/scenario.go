package store

import (
	"sort"
	"sync"

	"github.com/efreitasn/stocksim/internal/domain"
)

// ScenarioStore is a thread-safe in-memory store for pre-scripted news
// scenarios, keyed by scenario_id.
type ScenarioStore struct {
	mu        sync.RWMutex
	scenarios map[string]domain.Scenario
}

// NewScenarioStore creates an empty ScenarioStore.
func NewScenarioStore() *ScenarioStore {
	return &ScenarioStore{
		scenarios: make(map[string]domain.Scenario),
	}
}

// Put inserts or replaces a scenario.
func (s *ScenarioStore) Put(sc domain.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenarios[sc.ScenarioID] = sc
}

// Get retrieves a scenario by ID. It returns
// domain.ErrScenarioNotFound if the scenario does not exist.
func (s *ScenarioStore) Get(scenarioID string) (domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scenarios[scenarioID]
	if !ok {
		return domain.Scenario{}, domain.ErrScenarioNotFound
	}
	return sc, nil
}

// List returns all scenarios in ascending scenario_id order.
func (s *ScenarioStore) List() []domain.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Scenario, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScenarioID < out[j].ScenarioID })
	return out
}
