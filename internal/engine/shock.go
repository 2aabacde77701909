package engine

import (
	"log/slog"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/store"
)

// ShockApplier folds a discrete news sentiment into one instrument's
// quote: newQuote = quote · (1 + sentiment), floored.
type ShockApplier struct {
	instruments *store.InstrumentStore
	logger      *slog.Logger
}

// NewShockApplier creates a ShockApplier over the given store.
func NewShockApplier(instruments *store.InstrumentStore, logger *slog.Logger) *ShockApplier {
	return &ShockApplier{
		instruments: instruments,
		logger:      logger,
	}
}

// Apply multiplies the quote by (1 + sentiment) as a single atomic record
// update — a concurrent drift tick or trade can never overwrite it from a
// stale read — and returns the new quote. Unknown tickers return
// domain.ErrTickerNotFound; callers treat that as a reported no-op since
// news can reference retired tickers.
func (a *ShockApplier) Apply(ticker string, sentiment float64) (float64, error) {
	inst, err := a.instruments.Update(ticker, func(inst *domain.Instrument) {
		inst.PreviousQuote = inst.Quote
		inst.Quote = domain.ClampFloor(inst.Quote * (1 + sentiment))
	})
	if err != nil {
		return 0, err
	}

	a.logger.Info("shock applied",
		slog.String("ticker", ticker),
		slog.Float64("sentiment", sentiment),
		slog.Float64("quote", inst.Quote),
	)
	return inst.Quote, nil
}
