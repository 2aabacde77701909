package store

import (
	"sync"

	"github.com/efreitasn/stocksim/internal/domain"
)

// WebhookStore is a thread-safe in-memory store for webhooks.
// Primary index: webhook_id → webhook.
// Secondary index: team_id → event → webhook.
type WebhookStore struct {
	mu       sync.RWMutex
	webhooks map[string]*domain.Webhook            // webhook_id → webhook
	byTeam   map[string]map[string]*domain.Webhook // team_id → event → webhook
}

// NewWebhookStore creates an empty WebhookStore.
func NewWebhookStore() *WebhookStore {
	return &WebhookStore{
		webhooks: make(map[string]*domain.Webhook),
		byTeam:   make(map[string]map[string]*domain.Webhook),
	}
}

// cloneWebhook returns a private copy. Readers get copies so a concurrent
// Upsert can never mutate a webhook a dispatch goroutine is reading.
func cloneWebhook(w *domain.Webhook) *domain.Webhook {
	c := *w
	return &c
}

// Upsert inserts or updates a webhook subscription keyed by (team_id, event).
// If a subscription already exists for that team+event pair, the URL and
// UpdatedAt are updated (the webhook_id remains stable). If the existing URL
// matches, it is a no-op. Returns true if a new subscription was created.
// The input is cloned, so the caller's copy stays private.
func (s *WebhookStore) Upsert(w *domain.Webhook) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if events, ok := s.byTeam[w.TeamID]; ok {
		if existing, ok := events[w.Event]; ok {
			if existing.URL != w.URL {
				existing.URL = w.URL
				existing.UpdatedAt = w.UpdatedAt
			}
			return false
		}
	}

	// New subscription — add to both indexes.
	stored := cloneWebhook(w)
	s.webhooks[stored.WebhookID] = stored

	if s.byTeam[stored.TeamID] == nil {
		s.byTeam[stored.TeamID] = make(map[string]*domain.Webhook)
	}
	s.byTeam[stored.TeamID][stored.Event] = stored

	return true
}

// Get retrieves a webhook by ID. It returns
// domain.ErrWebhookNotFound if the webhook does not exist.
func (s *WebhookStore) Get(id string) (*domain.Webhook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.webhooks[id]
	if !ok {
		return nil, domain.ErrWebhookNotFound
	}
	return cloneWebhook(w), nil
}

// ListByTeam returns all webhooks for a team.
// Returns an empty slice if the team has no subscriptions.
func (s *WebhookStore) ListByTeam(teamID string) []*domain.Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.byTeam[teamID]
	if len(events) == 0 {
		return []*domain.Webhook{}
	}

	result := make([]*domain.Webhook, 0, len(events))
	for _, w := range events {
		result = append(result, cloneWebhook(w))
	}
	return result
}

// Delete removes a webhook by ID. It returns
// domain.ErrWebhookNotFound if the webhook does not exist.
// Both the primary and secondary indexes are cleaned up.
func (s *WebhookStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.webhooks[id]
	if !ok {
		return domain.ErrWebhookNotFound
	}

	delete(s.webhooks, id)

	if events, ok := s.byTeam[w.TeamID]; ok {
		delete(events, w.Event)
		if len(events) == 0 {
			delete(s.byTeam, w.TeamID)
		}
	}

	return nil
}

// ListByEvent returns every subscription to the given event across all
// teams. Used to fan out market-wide events.
func (s *WebhookStore) ListByEvent(event string) []*domain.Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Webhook, 0)
	for _, events := range s.byTeam {
		if w, ok := events[event]; ok {
			result = append(result, cloneWebhook(w))
		}
	}
	return result
}

// GetByTeamEvent returns the webhook for a specific team+event pair,
// or nil if no subscription exists.
func (s *WebhookStore) GetByTeamEvent(teamID, event string) *domain.Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.byTeam[teamID]
	if events == nil {
		return nil
	}
	w, ok := events[event]
	if !ok {
		return nil
	}
	return cloneWebhook(w)
}
