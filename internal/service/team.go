package service

import (
	"time"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/store"
)

// RegisterTeamRequest represents the input for team registration.
type RegisterTeamRequest struct {
	TeamID   string
	Name     string
	Password string
}

// PositionBalance is a single position in the balance response, valued at
// the live quote.
type PositionBalance struct {
	Ticker      string
	Quantity    int64
	AverageCost float64
	LastQuote   float64
	MarketValue float64
}

// BalanceResponse represents the response for the team balance endpoint.
type BalanceResponse struct {
	TeamID      string
	Name        string
	CashBalance float64
	Positions   []PositionBalance
	NetWorth    float64
}

// TeamService handles team registration, login, and balance queries.
type TeamService struct {
	store        *store.TeamStore
	instruments  *store.InstrumentStore
	startingCash float64
}

// NewTeamService creates a new TeamService. startingCash is the cash balance
// given to every newly registered team.
func NewTeamService(teamStore *store.TeamStore, instruments *store.InstrumentStore, startingCash float64) *TeamService {
	return &TeamService{
		store:        teamStore,
		instruments:  instruments,
		startingCash: startingCash,
	}
}

// Register validates the request and creates a team with the default
// starting cash and no positions.
func (s *TeamService) Register(req RegisterTeamRequest) (*domain.Team, error) {
	if !teamIDRegex.MatchString(req.TeamID) {
		return nil, &domain.ValidationError{
			Message: "team_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if req.Name == "" {
		return nil, &domain.ValidationError{
			Message: "name is required",
		}
	}
	if req.Password == "" {
		return nil, &domain.ValidationError{
			Message: "password is required",
		}
	}

	team := &domain.Team{
		TeamID:       req.TeamID,
		Name:         req.Name,
		Password:     req.Password,
		CashBalance:  s.startingCash,
		StartingCash: s.startingCash,
		Positions:    make(map[string]domain.Position),
		CreatedAt:    time.Now(),
	}

	if err := s.store.Create(team); err != nil {
		return nil, err
	}
	return team, nil
}

// Login checks the team's advisory password. It returns the team on a
// match, domain.ErrInvalidCredentials on a mismatch.
func (s *TeamService) Login(teamID, password string) (*domain.Team, error) {
	team, _, err := s.store.Get(teamID)
	if err != nil {
		return nil, err
	}
	if team.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	return team, nil
}

// Balance returns the team's cash and positions, each valued at the live
// quote. Positions are listed in ascending ticker order.
func (s *TeamService) Balance(teamID string) (*BalanceResponse, error) {
	team, _, err := s.store.Get(teamID)
	if err != nil {
		return nil, err
	}

	resp := &BalanceResponse{
		TeamID:      team.TeamID,
		Name:        team.Name,
		CashBalance: team.CashBalance,
		Positions:   make([]PositionBalance, 0, len(team.Positions)),
		NetWorth:    team.CashBalance,
	}

	for _, ticker := range s.instruments.Tickers() {
		pos, held := team.Positions[ticker]
		if !held {
			continue
		}
		inst, _, err := s.instruments.Get(ticker)
		if err != nil {
			continue
		}
		value := float64(pos.Quantity) * inst.Quote
		resp.Positions = append(resp.Positions, PositionBalance{
			Ticker:      ticker,
			Quantity:    pos.Quantity,
			AverageCost: pos.AverageCost,
			LastQuote:   inst.Quote,
			MarketValue: value,
		})
		resp.NetWorth += value
	}

	return resp, nil
}
