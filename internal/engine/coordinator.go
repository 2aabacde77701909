package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/store"
)

// OrderResult is returned to the caller after a successful commit.
type OrderResult struct {
	Trade          *domain.Trade
	ExecutionPrice float64
	NewCashBalance float64
	NewQuote       float64
}

// Coordinator executes orders: it validates them against live market state,
// prices them, and commits the instrument-side and ledger-side updates as
// one atomic unit.
//
// Commit protocol: both records are read as versioned snapshots, the new
// states are computed off those snapshots, and each record is written
// conditionally on its version. If the instrument write loses to a
// concurrent drift tick, shock, or competing trade, the whole commit
// retries from the read step. If the team write loses after the instrument
// write already landed, the instrument write is reversed with a
// compensating delta before retrying — a half-applied order is never
// observable. Validation failures are terminal and never retried; only
// version conflicts are, up to the retry budget, after which the caller
// gets domain.ErrConflict.
type Coordinator struct {
	instruments *store.InstrumentStore
	teams       *store.TeamStore
	trades      *store.TradeStore
	gate        Gate
	positionCap int64
	retries     int
}

// NewCoordinator creates a Coordinator. positionCap is the maximum share
// count a team may hold in one ticker; retries is the number of commit
// re-attempts after a version conflict (at least 1 is applied).
func NewCoordinator(
	instruments *store.InstrumentStore,
	teams *store.TeamStore,
	trades *store.TradeStore,
	gate Gate,
	positionCap int64,
	retries int,
) *Coordinator {
	if retries < 1 {
		retries = 1
	}
	return &Coordinator{
		instruments: instruments,
		teams:       teams,
		trades:      trades,
		gate:        gate,
		positionCap: positionCap,
		retries:     retries,
	}
}

// MarketOpen reports the gate state. The service layer checks it before any
// request validation so a closed market wins over malformed parameters.
func (c *Coordinator) MarketOpen() bool {
	return c.gate.IsOpen()
}

// Execute runs an order through validation, pricing, and commit.
func (c *Coordinator) Execute(order domain.Order) (*OrderResult, error) {
	if !c.gate.IsOpen() {
		return nil, domain.ErrMarketClosed
	}
	if order.Quantity <= 0 {
		return nil, &domain.ValidationError{Message: "quantity must be a positive integer"}
	}
	if order.Side != domain.SideBuy && order.Side != domain.SideSell {
		return nil, &domain.ValidationError{Message: "side must be 'BUY' or 'SELL'"}
	}

	for attempt := 0; attempt <= c.retries; attempt++ {
		result, err := c.tryCommit(order)
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		return result, err
	}
	return nil, domain.ErrConflict
}

// tryCommit performs one read-validate-price-commit pass.
func (c *Coordinator) tryCommit(order domain.Order) (*OrderResult, error) {
	inst, instVersion, err := c.instruments.Get(order.Ticker)
	if err != nil {
		return nil, err
	}
	team, teamVersion, err := c.teams.Get(order.TeamID)
	if err != nil {
		return nil, err
	}

	holding := team.Holding(order.Ticker)

	// Circuit breaker: no selling into a floored market.
	if order.Side == domain.SideSell && inst.Quote <= domain.FloorPrice {
		return nil, domain.ErrCircuitBreaker
	}
	// Anti-concentration cap on the post-trade holding.
	if order.Side == domain.SideBuy && holding+order.Quantity > c.positionCap {
		return nil, domain.ErrPositionLimit
	}

	exec := PriceOrder(inst.Quote, inst.ImpactSensitivity, order.Side, order.Quantity)

	switch order.Side {
	case domain.SideBuy:
		if team.CashBalance < exec.Total {
			return nil, domain.ErrInsufficientFunds
		}
		team.CashBalance -= exec.Total

		pos := team.Positions[order.Ticker]
		newQty := pos.Quantity + order.Quantity
		pos.AverageCost = (float64(pos.Quantity)*pos.AverageCost + exec.Total) / float64(newQty)
		pos.Quantity = newQty
		team.Positions[order.Ticker] = pos

	case domain.SideSell:
		if holding < order.Quantity {
			return nil, domain.ErrInsufficientHoldings
		}
		pos := team.Positions[order.Ticker]
		pos.Quantity -= order.Quantity
		if pos.Quantity == 0 {
			// A zero position keeps no stale average cost.
			delete(team.Positions, order.Ticker)
		} else {
			team.Positions[order.Ticker] = pos
		}
		team.CashBalance += exec.Total
	}

	invDelta := InventoryDelta(order.Side, order.Quantity)
	quoteDelta := exec.EndPrice - inst.Quote

	updated := inst
	updated.PreviousQuote = inst.Quote
	updated.Quote = exec.EndPrice
	updated.DealerInventory += invDelta

	if err := c.instruments.CompareAndUpdate(order.Ticker, instVersion, updated); err != nil {
		return nil, err
	}
	if err := c.teams.CompareAndUpdate(order.TeamID, teamVersion, team); err != nil {
		// Compensating rollback of the instrument write. Deltas rather
		// than absolutes: a drift tick that landed in between keeps its
		// effect.
		_, _ = c.instruments.Update(order.Ticker, func(i *domain.Instrument) {
			i.DealerInventory -= invDelta
			i.Quote = domain.ClampFloor(i.Quote - quoteDelta)
		})
		return nil, err
	}

	trade := &domain.Trade{
		TradeID:    uuid.New().String(),
		TeamID:     order.TeamID,
		Ticker:     order.Ticker,
		Side:       order.Side,
		Quantity:   order.Quantity,
		Price:      exec.Price,
		Total:      exec.Total,
		DealerID:   order.DealerID,
		ExecutedAt: time.Now(),
	}
	c.trades.Append(trade)

	return &OrderResult{
		Trade:          trade,
		ExecutionPrice: exec.Price,
		NewCashBalance: team.CashBalance,
		NewQuote:       updated.Quote,
	}, nil
}
