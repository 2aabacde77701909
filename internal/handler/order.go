package handler

import (
	"net/http"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/service"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// submitOrderRequest is the JSON request body for POST /orders.
type submitOrderRequest struct {
	TeamID   string `json:"team_id"`
	DealerID string `json:"dealer_id"`
	Ticker   string `json:"ticker"`
	Side     string `json:"side"`
	Quantity int64  `json:"quantity"`
}

// submitOrderResponse is the JSON response for POST /orders.
type submitOrderResponse struct {
	TradeID        string  `json:"trade_id"`
	TeamID         string  `json:"team_id"`
	Ticker         string  `json:"ticker"`
	Side           string  `json:"side"`
	Quantity       int64   `json:"quantity"`
	ExecutionPrice float64 `json:"execution_price"`
	Total          float64 `json:"total"`
	NewCashBalance float64 `json:"new_cash_balance"`
	NewQuote       float64 `json:"new_quote"`
	ExecutedAt     string  `json:"executed_at"`
}

// SubmitOrder handles POST /orders.
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.orderSvc.SubmitOrder(service.SubmitOrderRequest{
		TeamID:   req.TeamID,
		DealerID: req.DealerID,
		Ticker:   req.Ticker,
		Side:     domain.Side(req.Side),
		Quantity: req.Quantity,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	trade := result.Trade
	WriteJSON(w, http.StatusCreated, submitOrderResponse{
		TradeID:        trade.TradeID,
		TeamID:         trade.TeamID,
		Ticker:         trade.Ticker,
		Side:           string(trade.Side),
		Quantity:       trade.Quantity,
		ExecutionPrice: Round2(result.ExecutionPrice),
		Total:          Round2(trade.Total),
		NewCashBalance: Round2(result.NewCashBalance),
		NewQuote:       Round2(result.NewQuote),
		ExecutedAt:     trade.ExecutedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}
