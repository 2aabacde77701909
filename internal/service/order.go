package service

import (
	"regexp"

	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/engine"
	"github.com/efreitasn/stocksim/internal/store"
)

var (
	teamIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	tickerRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)
)

// SubmitOrderRequest represents the input for order submission.
type SubmitOrderRequest struct {
	TeamID   string
	DealerID string
	Ticker   string
	Side     domain.Side
	Quantity int64
}

// OrderService handles order submission. It validates the request's shape,
// resolves the dealer audit identity, and delegates pricing and commit to
// the coordinator.
type OrderService struct {
	coordinator *engine.Coordinator
	dealerStore *store.DealerStore
	webhookSvc  *WebhookService
}

// NewOrderService creates a new OrderService with the given dependencies.
func NewOrderService(
	coordinator *engine.Coordinator,
	dealerStore *store.DealerStore,
	webhookSvc *WebhookService,
) *OrderService {
	return &OrderService{
		coordinator: coordinator,
		dealerStore: dealerStore,
		webhookSvc:  webhookSvc,
	}
}

// SubmitOrder validates the request, executes the order through the
// coordinator, and dispatches a trade.executed webhook on success.
func (s *OrderService) SubmitOrder(req SubmitOrderRequest) (*engine.OrderResult, error) {
	// A closed market rejects every order, no matter how malformed; the
	// gate check comes before any validation. Side and quantity are
	// validated by the coordinator.
	if !s.coordinator.MarketOpen() {
		return nil, domain.ErrMarketClosed
	}

	if !teamIDRegex.MatchString(req.TeamID) {
		return nil, &domain.ValidationError{
			Message: "team_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if !tickerRegex.MatchString(req.Ticker) {
		return nil, &domain.ValidationError{
			Message: "ticker must match ^[A-Z]{1,10}$",
		}
	}

	// The dealer is an audit identity stamped onto the trade record, not an
	// authorization boundary, but it must at least exist.
	if !s.dealerStore.Exists(req.DealerID) {
		return nil, domain.ErrDealerNotFound
	}

	result, err := s.coordinator.Execute(domain.Order{
		TeamID:   req.TeamID,
		DealerID: req.DealerID,
		Ticker:   req.Ticker,
		Side:     req.Side,
		Quantity: req.Quantity,
	})
	if err != nil {
		return nil, err
	}

	if s.webhookSvc != nil {
		s.webhookSvc.DispatchTradeExecuted(result.Trade, result.NewQuote)
	}

	return result, nil
}
