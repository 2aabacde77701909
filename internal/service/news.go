package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/engine"
	"github.com/efreitasn/stocksim/internal/store"
)

const defaultFeedLimit = 10

// PublishResult reports the outcome of publishing a scenario: the flash that
// went onto the feed, and whether the price shock actually landed.
type PublishResult struct {
	Flash        domain.NewsFlash
	ShockApplied bool
	NewQuote     float64
}

// NewsService publishes pre-scripted scenarios to the market feed and
// applies their price shocks.
type NewsService struct {
	scenarios  *store.ScenarioStore
	news       *store.NewsStore
	shock      *engine.ShockApplier
	webhookSvc *WebhookService
	logger     *slog.Logger
}

// NewNewsService creates a new NewsService with the given dependencies.
func NewNewsService(
	scenarios *store.ScenarioStore,
	news *store.NewsStore,
	shock *engine.ShockApplier,
	webhookSvc *WebhookService,
	logger *slog.Logger,
) *NewsService {
	return &NewsService{
		scenarios:  scenarios,
		news:       news,
		shock:      shock,
		webhookSvc: webhookSvc,
		logger:     logger,
	}
}

// Publish looks up the scenario, appends its flash to the feed, and applies
// the price shock to the referenced ticker. A scenario pointing at a ticker
// that is not in the market still publishes its flash; the shock is skipped
// and the skip is reported in the result rather than failing the publish.
func (s *NewsService) Publish(scenarioID string) (*PublishResult, error) {
	sc, err := s.scenarios.Get(scenarioID)
	if err != nil {
		return nil, err
	}

	flash := domain.NewsFlash{
		Headline:  sc.Headline,
		Impact:    domain.ImpactFromSentiment(sc.Sentiment),
		Ticker:    sc.Ticker,
		CreatedAt: time.Now(),
	}
	s.news.Append(flash)

	result := &PublishResult{Flash: flash}

	newQuote, err := s.shock.Apply(sc.Ticker, sc.Sentiment)
	switch {
	case err == nil:
		result.ShockApplied = true
		result.NewQuote = newQuote
	case errors.Is(err, domain.ErrTickerNotFound):
		s.logger.Warn("news shock skipped, ticker not in market",
			slog.String("scenario_id", sc.ScenarioID),
			slog.String("ticker", sc.Ticker),
		)
	default:
		return nil, err
	}

	if s.webhookSvc != nil {
		s.webhookSvc.DispatchNewsPublished(flash)
	}

	return result, nil
}

// Feed returns up to limit flashes, newest first. A non-positive limit
// falls back to the default.
func (s *NewsService) Feed(limit int) []domain.NewsFlash {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return s.news.Recent(limit)
}

// Scenarios lists the loaded scenarios in ascending scenario_id order.
func (s *NewsService) Scenarios() []domain.Scenario {
	return s.scenarios.List()
}
