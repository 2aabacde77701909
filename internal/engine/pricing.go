package engine

import "github.com/efreitasn/stocksim/internal/domain"

// Execution is the result of pricing one order against the current quote.
// StartPrice and EndPrice are both floor-clamped; Price is their mean, the
// volume-weighted average of walking the quote linearly from start to end.
type Execution struct {
	StartPrice float64
	EndPrice   float64
	Price      float64 // execution price
	Total      float64 // Price × quantity
}

// PriceOrder computes the impact-adjusted execution for an order against
// the current quote. The impact is linear in order size: a BUY of q shares
// pushes the quote up by sensitivity·q, a SELL pushes it down by the same
// amount. Pure computation — callers validate quantity and the sell-side
// circuit breaker first, and full float64 precision is preserved; rounding
// happens only at the presentation boundary.
func PriceOrder(quote, sensitivity float64, side domain.Side, quantity int64) Execution {
	impact := sensitivity * float64(quantity)

	start := domain.ClampFloor(quote)
	var end float64
	if side == domain.SideBuy {
		end = start + impact
	} else {
		end = start - impact
	}
	end = domain.ClampFloor(end)

	price := (start + end) / 2
	return Execution{
		StartPrice: start,
		EndPrice:   end,
		Price:      price,
		Total:      price * float64(quantity),
	}
}

// InventoryDelta is the signed change to dealer inventory for an order:
// the dealer sells to the team on BUY and absorbs shares on SELL.
func InventoryDelta(side domain.Side, quantity int64) int64 {
	if side == domain.SideBuy {
		return -quantity
	}
	return quantity
}
