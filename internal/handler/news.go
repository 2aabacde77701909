package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/stocksim/internal/service"
)

// NewsHandler handles HTTP requests for the news feed and scenario publishing.
type NewsHandler struct {
	newsSvc *service.NewsService
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsSvc *service.NewsService) *NewsHandler {
	return &NewsHandler{newsSvc: newsSvc}
}

// flashResponse is a single news flash in the feed response.
type flashResponse struct {
	Headline  string `json:"headline"`
	Impact    string `json:"impact"`
	Ticker    string `json:"ticker"`
	CreatedAt string `json:"created_at"`
}

// publishResponse is the JSON response for POST /news/publish/{scenario_id}.
type publishResponse struct {
	Flash        flashResponse `json:"flash"`
	ShockApplied bool          `json:"shock_applied"`
	NewQuote     *float64      `json:"new_quote"`
}

// Feed handles GET /news. Accepts an optional ?limit= query parameter.
func (h *NewsHandler) Feed(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return
		}
		limit = n
	}

	flashes := h.newsSvc.Feed(limit)
	out := make([]flashResponse, len(flashes))
	for i, f := range flashes {
		out[i] = flashResponse{
			Headline:  f.Headline,
			Impact:    string(f.Impact),
			Ticker:    f.Ticker,
			CreatedAt: f.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"news": out})
}

// Publish handles POST /news/publish/{scenario_id}.
func (h *NewsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	scenarioID := chi.URLParam(r, "scenario_id")

	result, err := h.newsSvc.Publish(scenarioID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	resp := publishResponse{
		Flash: flashResponse{
			Headline:  result.Flash.Headline,
			Impact:    string(result.Flash.Impact),
			Ticker:    result.Flash.Ticker,
			CreatedAt: result.Flash.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		},
		ShockApplied: result.ShockApplied,
	}
	if result.ShockApplied {
		q := Round2(result.NewQuote)
		resp.NewQuote = &q
	}
	WriteJSON(w, http.StatusOK, resp)
}
