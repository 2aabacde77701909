package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/stocksim/internal/service"
)

// TeamHandler handles HTTP requests for team endpoints.
type TeamHandler struct {
	teamSvc *service.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamSvc *service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// registerTeamRequest is the JSON request body for POST /teams.
type registerTeamRequest struct {
	TeamID   string `json:"team_id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// teamResponse is the JSON response for registration and login.
type teamResponse struct {
	TeamID      string  `json:"team_id"`
	Name        string  `json:"name"`
	CashBalance float64 `json:"cash_balance"`
	CreatedAt   string  `json:"created_at"`
}

// loginRequest is the JSON request body for POST /teams/login.
type loginRequest struct {
	TeamID   string `json:"team_id"`
	Password string `json:"password"`
}

// positionResponse is a single position in the balance response.
type positionResponse struct {
	Ticker      string  `json:"ticker"`
	Quantity    int64   `json:"quantity"`
	AverageCost float64 `json:"average_cost"`
	LastQuote   float64 `json:"last_quote"`
	MarketValue float64 `json:"market_value"`
}

// balanceResponse is the JSON response for GET /teams/{team_id}/balance.
type balanceResponse struct {
	TeamID      string             `json:"team_id"`
	Name        string             `json:"name"`
	CashBalance float64            `json:"cash_balance"`
	Positions   []positionResponse `json:"positions"`
	NetWorth    float64            `json:"net_worth"`
}

// Register handles POST /teams.
func (h *TeamHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerTeamRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	team, err := h.teamSvc.Register(service.RegisterTeamRequest{
		TeamID:   req.TeamID,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, teamResponse{
		TeamID:      team.TeamID,
		Name:        team.Name,
		CashBalance: Round2(team.CashBalance),
		CreatedAt:   team.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// Login handles POST /teams/login.
func (h *TeamHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	team, err := h.teamSvc.Login(req.TeamID, req.Password)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, teamResponse{
		TeamID:      team.TeamID,
		Name:        team.Name,
		CashBalance: Round2(team.CashBalance),
		CreatedAt:   team.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// GetBalance handles GET /teams/{team_id}/balance.
func (h *TeamHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "team_id")

	balance, err := h.teamSvc.Balance(teamID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	positions := make([]positionResponse, len(balance.Positions))
	for i, p := range balance.Positions {
		positions[i] = positionResponse{
			Ticker:      p.Ticker,
			Quantity:    p.Quantity,
			AverageCost: Round2(p.AverageCost),
			LastQuote:   Round2(p.LastQuote),
			MarketValue: Round2(p.MarketValue),
		}
	}

	WriteJSON(w, http.StatusOK, balanceResponse{
		TeamID:      balance.TeamID,
		Name:        balance.Name,
		CashBalance: Round2(balance.CashBalance),
		Positions:   positions,
		NetWorth:    Round2(balance.NetWorth),
	})
}
