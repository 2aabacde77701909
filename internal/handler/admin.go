package handler

import (
	"net/http"

	"github.com/efreitasn/stocksim/internal/service"
)

// AdminHandler handles HTTP requests for the session control endpoints.
type AdminHandler struct {
	adminSvc *service.AdminService
	newsSvc  *service.NewsService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminSvc *service.AdminService, newsSvc *service.NewsService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, newsSvc: newsSvc}
}

// adminTradeResponse is a single trade in the admin trade log.
type adminTradeResponse struct {
	TradeID        string  `json:"trade_id"`
	TeamID         string  `json:"team_id"`
	TeamName       string  `json:"team_name"`
	Ticker         string  `json:"ticker"`
	Side           string  `json:"side"`
	Quantity       int64   `json:"quantity"`
	ExecutionPrice float64 `json:"execution_price"`
	Total          float64 `json:"total"`
	DealerID       string  `json:"dealer_id"`
	ExecutedAt     string  `json:"executed_at"`
}

// scenarioResponse is a single scenario in the admin scenarios listing.
type scenarioResponse struct {
	ScenarioID string  `json:"scenario_id"`
	Headline   string  `json:"headline"`
	Ticker     string  `json:"ticker"`
	Sentiment  float64 `json:"sentiment"`
}

// Trades handles GET /admin/trades.
func (h *AdminHandler) Trades(w http.ResponseWriter, r *http.Request) {
	trades := h.adminSvc.Trades()

	out := make([]adminTradeResponse, len(trades))
	for i, t := range trades {
		out[i] = adminTradeResponse{
			TradeID:        t.TradeID,
			TeamID:         t.TeamID,
			TeamName:       t.TeamName,
			Ticker:         t.Ticker,
			Side:           string(t.Side),
			Quantity:       t.Quantity,
			ExecutionPrice: Round2(t.Price),
			Total:          Round2(t.Total),
			DealerID:       t.DealerID,
			ExecutedAt:     t.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"trades": out})
}

// MarketStatus handles GET /admin/market/status.
func (h *AdminHandler) MarketStatus(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]bool{"open": h.adminSvc.MarketOpen()})
}

// OpenMarket handles POST /admin/market/open.
func (h *AdminHandler) OpenMarket(w http.ResponseWriter, r *http.Request) {
	h.adminSvc.OpenMarket()
	WriteJSON(w, http.StatusOK, map[string]bool{"open": true})
}

// CloseMarket handles POST /admin/market/close.
func (h *AdminHandler) CloseMarket(w http.ResponseWriter, r *http.Request) {
	h.adminSvc.CloseMarket()
	WriteJSON(w, http.StatusOK, map[string]bool{"open": false})
}

// ResetSession handles POST /admin/market/reset.
func (h *AdminHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	h.adminSvc.ResetSession()
	WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// Scenarios handles GET /admin/scenarios.
func (h *AdminHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := h.newsSvc.Scenarios()

	out := make([]scenarioResponse, len(scenarios))
	for i, sc := range scenarios {
		out[i] = scenarioResponse{
			ScenarioID: sc.ScenarioID,
			Headline:   sc.Headline,
			Ticker:     sc.Ticker,
			Sentiment:  sc.Sentiment,
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"scenarios": out})
}
