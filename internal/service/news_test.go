package service

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/engine"
	"github.com/efreitasn/stocksim/internal/store"
)

func newTestNewsService() (*NewsService, *store.ScenarioStore, *store.InstrumentStore) {
	scenarios := store.NewScenarioStore()
	news := store.NewNewsStore()
	instruments := store.NewInstrumentStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	shock := engine.NewShockApplier(instruments, logger)
	svc := NewNewsService(scenarios, news, shock, nil, logger)
	return svc, scenarios, instruments
}

func TestPublish_AppliesShockAndFlash(t *testing.T) {
	svc, scenarios, instruments := newTestNewsService()

	if err := instruments.Create(domain.Instrument{Ticker: "VOLT", Quote: 100.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scenarios.Put(domain.Scenario{
		ScenarioID: "volt-recall",
		Headline:   "Volt Energy recalls flagship battery",
		Ticker:     "VOLT",
		Sentiment:  -0.30,
	})

	result, err := svc.Publish("volt-recall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ShockApplied {
		t.Fatal("expected shock to be applied")
	}
	if result.NewQuote != 70.0 {
		t.Fatalf("expected new quote 70.0, got %v", result.NewQuote)
	}
	if result.Flash.Impact != domain.ImpactNegative {
		t.Fatalf("expected NEGATIVE impact, got %s", result.Flash.Impact)
	}

	inst, _, err := instruments.Get("VOLT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Quote != 70.0 {
		t.Fatalf("expected stored quote 70.0, got %v", inst.Quote)
	}

	feed := svc.Feed(0)
	if len(feed) != 1 {
		t.Fatalf("expected 1 flash on the feed, got %d", len(feed))
	}
	if feed[0].Headline != "Volt Energy recalls flagship battery" {
		t.Fatalf("unexpected headline %q", feed[0].Headline)
	}
}

func TestPublish_UnknownTickerStillPublishes(t *testing.T) {
	svc, scenarios, _ := newTestNewsService()

	scenarios.Put(domain.Scenario{
		ScenarioID: "retired-stock",
		Headline:   "Rumors swirl around delisted company",
		Ticker:     "GONE",
		Sentiment:  0.10,
	})

	result, err := svc.Publish("retired-stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ShockApplied {
		t.Fatal("expected shock to be skipped for unknown ticker")
	}
	if len(svc.Feed(0)) != 1 {
		t.Fatal("expected flash to be published anyway")
	}
}

func TestPublish_ScenarioNotFound(t *testing.T) {
	svc, _, _ := newTestNewsService()

	_, err := svc.Publish("nope")
	if !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestPublish_ZeroSentimentIsNeutral(t *testing.T) {
	svc, scenarios, instruments := newTestNewsService()

	if err := instruments.Create(domain.Instrument{Ticker: "BLUE", Quote: 42.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scenarios.Put(domain.Scenario{
		ScenarioID: "blue-agm",
		Headline:   "Blue Chip holds uneventful annual meeting",
		Ticker:     "BLUE",
		Sentiment:  0,
	})

	result, err := svc.Publish("blue-agm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Flash.Impact != domain.ImpactNeutral {
		t.Fatalf("expected NEUTRAL impact, got %s", result.Flash.Impact)
	}
	if result.NewQuote != 42.0 {
		t.Fatalf("expected unchanged quote 42.0, got %v", result.NewQuote)
	}
}

func TestFeed_DefaultLimit(t *testing.T) {
	svc, scenarios, instruments := newTestNewsService()

	if err := instruments.Create(domain.Instrument{Ticker: "VOLT", Quote: 100.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scenarios.Put(domain.Scenario{ScenarioID: "s", Headline: "h", Ticker: "VOLT", Sentiment: 0.01})

	for i := 0; i < 15; i++ {
		if _, err := svc.Publish("s"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := len(svc.Feed(0)); got != defaultFeedLimit {
		t.Fatalf("expected default limit %d, got %d", defaultFeedLimit, got)
	}
	if got := len(svc.Feed(3)); got != 3 {
		t.Fatalf("expected 3 flashes, got %d", got)
	}
}
