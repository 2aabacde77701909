package service

import (
	"log/slog"
	"time"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/engine"
	"github.com/efreitasn/stocksim/internal/store"
)

// TradeView is a trade log entry enriched with the team's display name.
type TradeView struct {
	TradeID    string
	TeamID     string
	TeamName   string
	Ticker     string
	Side       domain.Side
	Quantity   int64
	Price      float64
	Total      float64
	DealerID   string
	ExecutedAt time.Time
}

// AdminService drives the session controls: the trade log, the market gate,
// and the session reset.
type AdminService struct {
	instruments *store.InstrumentStore
	teams       *store.TeamStore
	trades      *store.TradeStore
	gate        *engine.MarketGate
	logger      *slog.Logger
}

// NewAdminService creates a new AdminService with the given dependencies.
func NewAdminService(
	instruments *store.InstrumentStore,
	teams *store.TeamStore,
	trades *store.TradeStore,
	gate *engine.MarketGate,
	logger *slog.Logger,
) *AdminService {
	return &AdminService{
		instruments: instruments,
		teams:       teams,
		trades:      trades,
		gate:        gate,
		logger:      logger,
	}
}

// Trades returns the full trade log, newest first, with team names resolved.
func (s *AdminService) Trades() []TradeView {
	names := make(map[string]string)
	for _, team := range s.teams.List() {
		names[team.TeamID] = team.Name
	}

	trades := s.trades.All()
	out := make([]TradeView, len(trades))
	for i, t := range trades {
		out[i] = TradeView{
			TradeID:    t.TradeID,
			TeamID:     t.TeamID,
			TeamName:   names[t.TeamID],
			Ticker:     t.Ticker,
			Side:       t.Side,
			Quantity:   t.Quantity,
			Price:      t.Price,
			Total:      t.Total,
			DealerID:   t.DealerID,
			ExecutedAt: t.ExecutedAt,
		}
	}
	return out
}

// MarketOpen reports whether the market gate is open.
func (s *AdminService) MarketOpen() bool {
	return s.gate.IsOpen()
}

// OpenMarket opens the market gate.
func (s *AdminService) OpenMarket() {
	s.gate.SetOpen(true)
	s.logger.Info("market opened")
}

// CloseMarket closes the market gate. In-flight orders that already passed
// the gate check complete; new ones are rejected.
func (s *AdminService) CloseMarket() {
	s.gate.SetOpen(false)
	s.logger.Info("market closed")
}

// ResetSession restores the session to its opening state: the trade log is
// cleared, every instrument returns to its day-open price with zero dealer
// inventory, and every team returns to its starting cash with no positions.
// Running it twice is the same as running it once.
func (s *AdminService) ResetSession() {
	s.trades.Clear()

	for _, ticker := range s.instruments.Tickers() {
		_, _ = s.instruments.Update(ticker, func(inst *domain.Instrument) {
			inst.Quote = inst.DayOpenPrice
			inst.PreviousQuote = inst.DayOpenPrice
			inst.DealerInventory = 0
		})
	}

	for _, team := range s.teams.List() {
		_ = s.teams.Update(team.TeamID, func(tm *domain.Team) {
			tm.CashBalance = tm.StartingCash
			tm.Positions = make(map[string]domain.Position)
		})
	}

	s.logger.Info("session reset")
}
