package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/store"
)

// Valid webhook event types.
var validWebhookEvents = map[string]bool{
	"trade.executed": true,
	"news.published": true,
}

// UpsertWebhookRequest represents the input for webhook registration.
type UpsertWebhookRequest struct {
	TeamID string
	URL    string
	Events []string
}

// WebhookService handles webhook CRUD and event dispatch.
type WebhookService struct {
	store     *store.WebhookStore
	teamStore *store.TeamStore
	client    *http.Client
}

// NewWebhookService creates a new WebhookService with the given dependencies.
func NewWebhookService(
	webhookStore *store.WebhookStore,
	teamStore *store.TeamStore,
	webhookTimeout time.Duration,
) *WebhookService {
	return &WebhookService{
		store:     webhookStore,
		teamStore: teamStore,
		client: &http.Client{
			Timeout: webhookTimeout,
		},
	}
}

// Upsert validates the request and creates or updates webhook subscriptions.
// Returns the resulting webhooks, whether any new subscriptions were created, and any error.
func (s *WebhookService) Upsert(req UpsertWebhookRequest) ([]*domain.Webhook, bool, error) {
	// Validate team exists.
	if !s.teamStore.Exists(req.TeamID) {
		return nil, false, domain.ErrTeamNotFound
	}

	// Validate URL.
	if req.URL == "" {
		return nil, false, &domain.ValidationError{Message: "url is required"}
	}
	if len(req.URL) > 2048 {
		return nil, false, &domain.ValidationError{Message: "url must be at most 2048 characters"}
	}
	parsed, err := url.ParseRequestURI(req.URL)
	if err != nil || !parsed.IsAbs() {
		return nil, false, &domain.ValidationError{Message: "url must be a valid absolute URL"}
	}
	if parsed.Scheme != "https" {
		return nil, false, &domain.ValidationError{Message: "url must use https scheme"}
	}

	// Validate events.
	if len(req.Events) == 0 {
		return nil, false, &domain.ValidationError{Message: "events must be a non-empty array"}
	}

	// Deduplicate events while preserving order and validating.
	seen := make(map[string]bool, len(req.Events))
	dedupedEvents := make([]string, 0, len(req.Events))
	for _, event := range req.Events {
		if !validWebhookEvents[event] {
			return nil, false, &domain.ValidationError{
				Message: "Unknown event type: " + event + ". Must be one of: trade.executed, news.published",
			}
		}
		if !seen[event] {
			seen[event] = true
			dedupedEvents = append(dedupedEvents, event)
		}
	}

	// Upsert each (team_id, event) pair.
	now := time.Now().UTC().Truncate(time.Second)
	anyCreated := false
	webhooks := make([]*domain.Webhook, 0, len(dedupedEvents))

	for _, event := range dedupedEvents {
		w := &domain.Webhook{
			WebhookID: uuid.New().String(),
			TeamID:    req.TeamID,
			Event:     event,
			URL:       req.URL,
			CreatedAt: now,
			UpdatedAt: now,
		}

		created := s.store.Upsert(w)
		if created {
			anyCreated = true
			webhooks = append(webhooks, w)
		} else {
			// Fetch the existing webhook to return it.
			existing := s.store.GetByTeamEvent(req.TeamID, event)
			if existing != nil {
				webhooks = append(webhooks, existing)
			}
		}
	}

	return webhooks, anyCreated, nil
}

// List validates the team exists and returns all its webhook subscriptions.
func (s *WebhookService) List(teamID string) ([]*domain.Webhook, error) {
	if !s.teamStore.Exists(teamID) {
		return nil, domain.ErrTeamNotFound
	}
	return s.store.ListByTeam(teamID), nil
}

// Delete removes a webhook subscription by ID.
func (s *WebhookService) Delete(webhookID string) error {
	return s.store.Delete(webhookID)
}

// tradeExecutedPayload is the JSON payload for trade.executed webhooks.
type tradeExecutedPayload struct {
	Event     string            `json:"event"`
	Timestamp string            `json:"timestamp"`
	Data      tradeExecutedData `json:"data"`
}

type tradeExecutedData struct {
	TradeID        string  `json:"trade_id"`
	TeamID         string  `json:"team_id"`
	Ticker         string  `json:"ticker"`
	Side           string  `json:"side"`
	Quantity       int64   `json:"quantity"`
	ExecutionPrice float64 `json:"execution_price"`
	Total          float64 `json:"total"`
	NewQuote       float64 `json:"new_quote"`
}

// newsPublishedPayload is the JSON payload for news.published webhooks.
type newsPublishedPayload struct {
	Event     string            `json:"event"`
	Timestamp string            `json:"timestamp"`
	Data      newsPublishedData `json:"data"`
}

type newsPublishedData struct {
	Headline string `json:"headline"`
	Impact   string `json:"impact"`
	Ticker   string `json:"ticker"`
}

// DispatchTradeExecuted dispatches a trade.executed webhook notification to
// the team that traded. Fire-and-forget — errors are silently ignored.
func (s *WebhookService) DispatchTradeExecuted(trade *domain.Trade, newQuote float64) {
	wh := s.store.GetByTeamEvent(trade.TeamID, "trade.executed")
	if wh == nil {
		return
	}

	payload := tradeExecutedPayload{
		Event:     "trade.executed",
		Timestamp: trade.ExecutedAt.UTC().Truncate(time.Second).Format(time.RFC3339),
		Data: tradeExecutedData{
			TradeID:        trade.TradeID,
			TeamID:         trade.TeamID,
			Ticker:         trade.Ticker,
			Side:           string(trade.Side),
			Quantity:       trade.Quantity,
			ExecutionPrice: trade.Price,
			Total:          trade.Total,
			NewQuote:       newQuote,
		},
	}

	go s.deliver(wh, "trade.executed", payload)
}

// DispatchNewsPublished fans a news.published notification out to every team
// subscribed to the event. Fire-and-forget.
func (s *WebhookService) DispatchNewsPublished(flash domain.NewsFlash) {
	subs := s.store.ListByEvent("news.published")
	if len(subs) == 0 {
		return
	}

	payload := newsPublishedPayload{
		Event:     "news.published",
		Timestamp: flash.CreatedAt.UTC().Truncate(time.Second).Format(time.RFC3339),
		Data: newsPublishedData{
			Headline: flash.Headline,
			Impact:   string(flash.Impact),
			Ticker:   flash.Ticker,
		},
	}

	for _, wh := range subs {
		go s.deliver(wh, "news.published", payload)
	}
}

// deliver sends the webhook payload via HTTP POST with the required headers.
// Errors are silently ignored (fire-and-forget).
func (s *WebhookService) deliver(wh *domain.Webhook, eventType string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.New().String())
	req.Header.Set("X-Webhook-Id", wh.WebhookID)
	req.Header.Set("X-Event-Type", eventType)

	resp, err := s.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
