package engine

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/efreitasn/stocksim/internal/domain"
)

func TestProperty_ExecutionPriceIsMidpointOfClampedBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		quote := rapid.Float64Range(0.01, 10000).Draw(t, "quote")
		sensitivity := rapid.Float64Range(0, 1).Draw(t, "sensitivity")
		quantity := rapid.Int64Range(1, 100000).Draw(t, "quantity")
		side := domain.SideBuy
		if rapid.Bool().Draw(t, "sell") {
			side = domain.SideSell
		}

		exec := PriceOrder(quote, sensitivity, side, quantity)

		if exec.StartPrice < domain.FloorPrice {
			t.Fatalf("start price %v below floor", exec.StartPrice)
		}
		if exec.EndPrice < domain.FloorPrice {
			t.Fatalf("end price %v below floor", exec.EndPrice)
		}

		wantPrice := (exec.StartPrice + exec.EndPrice) / 2
		if exec.Price != wantPrice {
			t.Fatalf("execution price %v, want midpoint %v", exec.Price, wantPrice)
		}
		if exec.Total != exec.Price*float64(quantity) {
			t.Fatalf("total %v, want %v", exec.Total, exec.Price*float64(quantity))
		}

		// The execution price can never beat the floor.
		if exec.Price < domain.FloorPrice {
			t.Fatalf("execution price %v below floor", exec.Price)
		}
	})
}

func TestProperty_BuyImpactIsSymmetricToSell(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Far from the floor, a BUY moves the end price up by exactly as
		// much as the same-size SELL moves it down.
		quote := rapid.Float64Range(1000, 100000).Draw(t, "quote")
		sensitivity := rapid.Float64Range(0, 0.01).Draw(t, "sensitivity")
		quantity := rapid.Int64Range(1, 1000).Draw(t, "quantity")

		buy := PriceOrder(quote, sensitivity, domain.SideBuy, quantity)
		sell := PriceOrder(quote, sensitivity, domain.SideSell, quantity)

		up := buy.EndPrice - quote
		down := quote - sell.EndPrice
		if math.Abs(up-down) > 1e-9 {
			t.Fatalf("asymmetric impact: up %v, down %v", up, down)
		}
	})
}
