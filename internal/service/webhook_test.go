package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/store"
)

func newTestWebhookService() (*WebhookService, *store.TeamStore, *store.WebhookStore) {
	teams := store.NewTeamStore()
	webhooks := store.NewWebhookStore()
	svc := NewWebhookService(webhooks, teams, 5*time.Second)
	return svc, teams, webhooks
}

func seedTeam(t *testing.T, teams *store.TeamStore, id string) {
	t.Helper()
	err := teams.Create(&domain.Team{
		TeamID:      id,
		Name:        id,
		CashBalance: 100000,
		Positions:   make(map[string]domain.Position),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}
}

// --- Upsert tests ---

func TestWebhookUpsert_NewSubscriptions(t *testing.T) {
	svc, teams, _ := newTestWebhookService()
	seedTeam(t, teams, "alpha")

	webhooks, created, err := svc.Upsert(UpsertWebhookRequest{
		TeamID: "alpha",
		URL:    "https://example.com/hook",
		Events: []string{"trade.executed", "news.published"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected new subscriptions to be created")
	}
	if len(webhooks) != 2 {
		t.Fatalf("expected 2 webhooks, got %d", len(webhooks))
	}
}

func TestWebhookUpsert_ExistingKeepsID(t *testing.T) {
	svc, teams, _ := newTestWebhookService()
	seedTeam(t, teams, "alpha")

	first, _, err := svc.Upsert(UpsertWebhookRequest{
		TeamID: "alpha",
		URL:    "https://example.com/hook",
		Events: []string{"trade.executed"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, created, err := svc.Upsert(UpsertWebhookRequest{
		TeamID: "alpha",
		URL:    "https://example.com/hook-v2",
		Events: []string{"trade.executed"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected update, not create")
	}
	if second[0].WebhookID != first[0].WebhookID {
		t.Fatal("expected webhook_id to remain stable across URL updates")
	}
	if second[0].URL != "https://example.com/hook-v2" {
		t.Fatalf("expected updated URL, got %q", second[0].URL)
	}
}

func TestWebhookUpsert_Validation(t *testing.T) {
	svc, teams, _ := newTestWebhookService()
	seedTeam(t, teams, "alpha")

	tests := []struct {
		name string
		req  UpsertWebhookRequest
	}{
		{"empty url", UpsertWebhookRequest{TeamID: "alpha", URL: "", Events: []string{"trade.executed"}}},
		{"http scheme", UpsertWebhookRequest{TeamID: "alpha", URL: "http://example.com", Events: []string{"trade.executed"}}},
		{"relative url", UpsertWebhookRequest{TeamID: "alpha", URL: "/hook", Events: []string{"trade.executed"}}},
		{"no events", UpsertWebhookRequest{TeamID: "alpha", URL: "https://example.com", Events: nil}},
		{"unknown event", UpsertWebhookRequest{TeamID: "alpha", URL: "https://example.com", Events: []string{"order.filled"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Upsert(tt.req)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestWebhookUpsert_TeamNotFound(t *testing.T) {
	svc, _, _ := newTestWebhookService()

	_, _, err := svc.Upsert(UpsertWebhookRequest{
		TeamID: "ghost",
		URL:    "https://example.com",
		Events: []string{"trade.executed"},
	})
	if !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

// --- List / Delete tests ---

func TestWebhookListAndDelete(t *testing.T) {
	svc, teams, _ := newTestWebhookService()
	seedTeam(t, teams, "alpha")

	created, _, err := svc.Upsert(UpsertWebhookRequest{
		TeamID: "alpha",
		URL:    "https://example.com/hook",
		Events: []string{"trade.executed"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listed, err := svc.List("alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 webhook, got %d", len(listed))
	}

	if err := svc.Delete(created[0].WebhookID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(created[0].WebhookID); !errors.Is(err, domain.ErrWebhookNotFound) {
		t.Fatalf("expected ErrWebhookNotFound on second delete, got %v", err)
	}

	listed, err = svc.List("alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(listed))
	}
}

// --- Dispatch tests ---

func TestDispatchTradeExecuted_DeliversPayload(t *testing.T) {
	svc, teams, webhooks := newTestWebhookService()
	seedTeam(t, teams, "alpha")

	var mu sync.Mutex
	var received map[string]any
	done := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(body, &received)
		mu.Unlock()
		if r.Header.Get("X-Event-Type") != "trade.executed" {
			t.Errorf("expected X-Event-Type trade.executed, got %q", r.Header.Get("X-Event-Type"))
		}
		close(done)
	}))
	defer server.Close()

	// Insert directly so the test server's http URL bypasses the https-only
	// registration check.
	webhooks.Upsert(&domain.Webhook{
		WebhookID: "wh-1",
		TeamID:    "alpha",
		Event:     "trade.executed",
		URL:       server.URL,
	})

	svc.DispatchTradeExecuted(&domain.Trade{
		TradeID:    "t1",
		TeamID:     "alpha",
		Ticker:     "VOLT",
		Side:       domain.SideBuy,
		Quantity:   100,
		Price:      150.25,
		Total:      15025,
		ExecutedAt: time.Now(),
	}, 150.5)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook delivery timed out")
	}

	mu.Lock()
	defer mu.Unlock()
	if received["event"] != "trade.executed" {
		t.Fatalf("expected event trade.executed, got %v", received["event"])
	}
	data := received["data"].(map[string]any)
	if data["ticker"] != "VOLT" {
		t.Fatalf("expected ticker VOLT, got %v", data["ticker"])
	}
	if data["new_quote"] != 150.5 {
		t.Fatalf("expected new_quote 150.5, got %v", data["new_quote"])
	}
}

func TestDispatchNewsPublished_FansOutToAllSubscribers(t *testing.T) {
	svc, teams, webhooks := newTestWebhookService()
	seedTeam(t, teams, "alpha")
	seedTeam(t, teams, "beta")

	var mu sync.Mutex
	deliveries := 0
	var wg sync.WaitGroup
	wg.Add(2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		deliveries++
		mu.Unlock()
		wg.Done()
	}))
	defer server.Close()

	for i, team := range []string{"alpha", "beta"} {
		webhooks.Upsert(&domain.Webhook{
			WebhookID: string(rune('a' + i)),
			TeamID:    team,
			Event:     "news.published",
			URL:       server.URL,
		})
	}

	svc.DispatchNewsPublished(domain.NewsFlash{
		Headline:  "Volt Energy recalls flagship battery",
		Impact:    domain.ImpactNegative,
		Ticker:    "VOLT",
		CreatedAt: time.Now(),
	})

	waitDone := make(chan struct{})
	go func() { wg.Wait(); close(waitDone) }()
	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook fan-out timed out")
	}

	mu.Lock()
	defer mu.Unlock()
	if deliveries != 2 {
		t.Fatalf("expected 2 deliveries, got %d", deliveries)
	}
}

func TestDispatch_NoSubscriptionIsNoOp(t *testing.T) {
	svc, teams, _ := newTestWebhookService()
	seedTeam(t, teams, "alpha")

	// Must not panic or block with no subscription registered.
	svc.DispatchTradeExecuted(&domain.Trade{TeamID: "alpha", ExecutedAt: time.Now()}, 100)
	svc.DispatchNewsPublished(domain.NewsFlash{CreatedAt: time.Now()})
}
