package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/stocksim/internal/service"
)

// MarketHandler handles HTTP requests for market data endpoints.
type MarketHandler struct {
	marketSvc *service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketSvc *service.MarketService) *MarketHandler {
	return &MarketHandler{marketSvc: marketSvc}
}

// quoteResponse is a single instrument in the prices responses.
type quoteResponse struct {
	Ticker        string  `json:"ticker"`
	CompanyName   string  `json:"company_name"`
	Quote         float64 `json:"quote"`
	PreviousQuote float64 `json:"previous_quote"`
	DayOpenPrice  float64 `json:"day_open_price"`
	Trend         string  `json:"trend"`
}

// leaderboardEntryResponse is a single ranked team.
type leaderboardEntryResponse struct {
	Rank      int     `json:"rank"`
	TeamID    string  `json:"team_id"`
	Name      string  `json:"name"`
	Cash      float64 `json:"cash"`
	NetWorth  float64 `json:"net_worth"`
	GainPct   float64 `json:"gain_pct"`
	Positions int     `json:"positions"`
}

// ListPrices handles GET /market/prices.
func (h *MarketHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	quotes := h.marketSvc.Quotes()

	out := make([]quoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = buildQuoteResponse(q)
	}
	WriteJSON(w, http.StatusOK, map[string]any{"prices": out})
}

// GetPrice handles GET /market/prices/{ticker}.
func (h *MarketHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	quote, err := h.marketSvc.GetQuote(ticker)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildQuoteResponse(quote))
}

// Leaderboard handles GET /leaderboard.
func (h *MarketHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries := h.marketSvc.Leaderboard()

	out := make([]leaderboardEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = leaderboardEntryResponse{
			Rank:      e.Rank,
			TeamID:    e.TeamID,
			Name:      e.Name,
			Cash:      Round2(e.Cash),
			NetWorth:  Round2(e.NetWorth),
			GainPct:   Round2(e.GainPct),
			Positions: e.Positions,
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"leaderboard": out})
}

func buildQuoteResponse(q service.QuoteView) quoteResponse {
	return quoteResponse{
		Ticker:        q.Ticker,
		CompanyName:   q.CompanyName,
		Quote:         Round2(q.Quote),
		PreviousQuote: Round2(q.PreviousQuote),
		DayOpenPrice:  Round2(q.DayOpenPrice),
		Trend:         string(q.Trend),
	}
}
