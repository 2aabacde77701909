package service

import (
	"sort"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/store"
)

// QuoteView is a single instrument's market snapshot for display.
type QuoteView struct {
	Ticker        string
	CompanyName   string
	Quote         float64
	PreviousQuote float64
	DayOpenPrice  float64
	Trend         domain.Trend
}

// LeaderboardEntry is one team's ranked standing. Net worth values
// positions at the live quote at the moment of the snapshot.
type LeaderboardEntry struct {
	Rank      int
	TeamID    string
	Name      string
	Cash      float64
	NetWorth  float64
	GainPct   float64
	Positions int
}

// MarketService answers read-only market queries: quote listings and the
// leaderboard.
type MarketService struct {
	instruments *store.InstrumentStore
	teams       *store.TeamStore
}

// NewMarketService creates a new MarketService.
func NewMarketService(instruments *store.InstrumentStore, teams *store.TeamStore) *MarketService {
	return &MarketService{
		instruments: instruments,
		teams:       teams,
	}
}

// Quotes returns a snapshot of every instrument in ascending ticker order.
func (s *MarketService) Quotes() []QuoteView {
	insts := s.instruments.List()
	out := make([]QuoteView, len(insts))
	for i, inst := range insts {
		out[i] = quoteView(inst)
	}
	return out
}

// GetQuote returns the snapshot for a single ticker.
func (s *MarketService) GetQuote(ticker string) (QuoteView, error) {
	inst, _, err := s.instruments.Get(ticker)
	if err != nil {
		return QuoteView{}, err
	}
	return quoteView(inst), nil
}

func quoteView(inst domain.Instrument) QuoteView {
	return QuoteView{
		Ticker:        inst.Ticker,
		CompanyName:   inst.CompanyName,
		Quote:         inst.Quote,
		PreviousQuote: inst.PreviousQuote,
		DayOpenPrice:  inst.DayOpenPrice,
		Trend:         inst.Trend(),
	}
}

// Leaderboard ranks all teams by net worth, descending. Ties keep team_id
// order so the ranking is stable across refreshes.
func (s *MarketService) Leaderboard() []LeaderboardEntry {
	teams := s.teams.List()

	entries := make([]LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		net := team.CashBalance
		for ticker, pos := range team.Positions {
			inst, _, err := s.instruments.Get(ticker)
			if err != nil {
				// A position in a ticker that left the market keeps its
				// last known cost as its value.
				net += float64(pos.Quantity) * pos.AverageCost
				continue
			}
			net += float64(pos.Quantity) * inst.Quote
		}

		gain := 0.0
		if team.StartingCash > 0 {
			gain = (net - team.StartingCash) / team.StartingCash * 100
		}

		entries = append(entries, LeaderboardEntry{
			TeamID:    team.TeamID,
			Name:      team.Name,
			Cash:      team.CashBalance,
			NetWorth:  net,
			GainPct:   gain,
			Positions: len(team.Positions),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].NetWorth > entries[j].NetWorth
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
