package engine

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/store"
)

// Drifter applies ambient random-walk motion to every instrument's quote
// at a fixed interval: newQuote = quote · e^shock with shock drawn from
// Normal(0, DriftVolatility), floored at domain.FloorPrice.
//
// There is exactly one Drifter per process. It keeps running while the
// market is closed but performs no writes, and it has no cancellation
// point other than ctx.
type Drifter struct {
	interval    time.Duration
	instruments *store.InstrumentStore
	gate        Gate
	rng         *rand.Rand
	logger      *slog.Logger
	wasOpen     bool
}

// NewDrifter creates a Drifter ticking at the given interval.
func NewDrifter(interval time.Duration, instruments *store.InstrumentStore, gate Gate, logger *slog.Logger) *Drifter {
	return &Drifter{
		interval:    interval,
		instruments: instruments,
		gate:        gate,
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:      logger,
		wasOpen:     gate.IsOpen(),
	}
}

// Start launches a background goroutine that ticks at the configured
// interval. It stops when ctx is cancelled.
func (d *Drifter) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.tick()
			}
		}
	}()
}

// tick applies one independent shock to every instrument. A closed gate
// makes the tick a no-op; the loop keeps sleeping on the ticker rather
// than busy-polling, and the transition is logged once.
func (d *Drifter) tick() {
	open := d.gate.IsOpen()
	if open != d.wasOpen {
		d.logger.Info("market gate changed", slog.Bool("open", open))
		d.wasOpen = open
	}
	if !open {
		return
	}

	tickers := d.instruments.Tickers()
	if len(tickers) == 0 {
		// Transient: the session may not be seeded yet. Keep polling.
		d.logger.Warn("no instruments to drift")
		return
	}

	for _, ticker := range tickers {
		shock := d.rng.NormFloat64()
		_, err := d.instruments.Update(ticker, func(inst *domain.Instrument) {
			inst.PreviousQuote = inst.Quote
			inst.Quote = domain.ClampFloor(inst.Quote * math.Exp(shock*inst.DriftVolatility))
		})
		if err != nil {
			// Ticker disappeared between listing and update.
			continue
		}
	}

	d.logger.Debug("drift applied", slog.Int("instruments", len(tickers)))
}
